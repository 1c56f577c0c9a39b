package prompts

import (
	"net/http"
	"strconv"

	"github.com/bracken1022/prompt-museum/internal/middleware"
	"github.com/bracken1022/prompt-museum/internal/services"
	"github.com/bracken1022/prompt-museum/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	prompts *services.PromptService
}

func NewHandler(prompts *services.PromptService) *Handler {
	return &Handler{prompts: prompts}
}

// List godoc
// @Summary List public prompts
// @Description Newest first. "all" or an empty value disables a filter.
// @Tags prompts
// @Produce  json
// @Param   agent     query  string  false  "Agent name"
// @Param   category  query  string  false  "Category name"
// @Param   search    query  string  false  "Substring of title, description or tags"
// @Success 200 {array} models.Prompt
// @Failure 500 {object} utils.Response
// @Router /prompts [get]
func (h *Handler) List(c *gin.Context) {
	prompts, err := h.prompts.ListPublicPrompts(c.Request.Context(), services.PromptFilter{
		Agent:    c.Query("agent"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// Categories godoc
// @Summary List categories
// @Description Distinct categories of public prompts, sorted
// @Tags prompts
// @Produce  json
// @Success 200 {array} string
// @Failure 500 {object} utils.Response
// @Router /prompts/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.prompts.GetCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Agents godoc
// @Summary List agents
// @Description Distinct agents of public prompts, sorted
// @Tags prompts
// @Produce  json
// @Success 200 {array} string
// @Failure 500 {object} utils.Response
// @Router /prompts/agents [get]
func (h *Handler) Agents(c *gin.Context) {
	agents, err := h.prompts.GetAgents(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

// MyPrompts godoc
// @Summary List my prompts
// @Description Every prompt of the signed-in user, public or private
// @Tags prompts
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Prompt
// @Failure 401 {object} utils.Response
// @Router /prompts/my-prompts [get]
func (h *Handler) MyPrompts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	prompts, err := h.prompts.ListUserPrompts(c.Request.Context(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// Get godoc
// @Summary Get a prompt
// @Tags prompts
// @Produce  json
// @Param   id  path  int  true  "Prompt ID"
// @Success 200 {object} models.Prompt
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	prompt, err := h.prompts.GetPrompt(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// Create godoc
// @Summary Create a prompt
// @Description is_public defaults to true
// @Tags prompts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   input  body  CreatePromptRequest  true  "Prompt"
// @Success 201 {object} models.Prompt
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /prompts [post]
func (h *Handler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var input CreatePromptRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	prompt, err := h.prompts.CreatePrompt(c.Request.Context(), input.input(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prompt)
}

// Update godoc
// @Summary Update a prompt
// @Description Only the owner may update. Omitted fields are unchanged.
// @Tags prompts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id     path  int                  true  "Prompt ID"
// @Param   input  body  UpdatePromptRequest  false "Fields to change"
// @Success 200 {object} models.Prompt
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}
	var input UpdatePromptRequest
	if !utils.BindAndValidateOptional(c, &input) {
		return
	}

	prompt, err := h.prompts.UpdatePrompt(c.Request.Context(), id, input.patch(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// Delete godoc
// @Summary Delete a prompt
// @Description Only the owner may delete
// @Tags prompts
// @Security BearerAuth
// @Param   id  path  int  true  "Prompt ID"
// @Success 204
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	if err := h.prompts.DeletePrompt(c.Request.Context(), id, user); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Like godoc
// @Summary Like a prompt
// @Description Adds one like. Anonymous callers may like; repeats count.
// @Tags prompts
// @Produce  json
// @Param   id  path  int  true  "Prompt ID"
// @Success 200 {object} models.Prompt
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/like [post]
func (h *Handler) Like(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	prompt, err := h.prompts.LikePrompt(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func promptID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt ID"))
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
		return 0, false
	}
	return user.ID, true
}

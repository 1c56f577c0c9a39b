package auth

import (
	"errors"
	"net/http"

	"github.com/bracken1022/prompt-museum/internal/middleware"
	"github.com/bracken1022/prompt-museum/internal/services"
	"github.com/bracken1022/prompt-museum/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth *services.AuthService
}

func NewHandler(auth *services.AuthService) *Handler {
	return &Handler{auth: auth}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and return a session token. Business failures answer 200 with success=false.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input  body  RegisterRequest  true  "Register Input"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.Response
// @Failure 500 {object} services.AuthResult
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input RegisterRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	result, err := h.auth.RegisterUser(c.Request.Context(), input.Name, input.Email, input.Password)
	respondAuth(c, result, err, "Registration failed")
}

// Login godoc
// @Summary Log in a user
// @Description Exchange email and password for a session token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input  body  LoginRequest  true  "Login Input"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.Response
// @Failure 500 {object} services.AuthResult
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	result, err := h.auth.LoginUser(c.Request.Context(), input.Email, input.Password)
	respondAuth(c, result, err, "Login failed")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Confirms the account exists. No email is sent.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input  body  ForgotPasswordRequest  true  "Forgot Password Input"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.Response
// @Failure 500 {object} services.AuthResult
// @Router /auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	result, err := h.auth.ForgotPassword(c.Request.Context(), input.Email)
	respondAuth(c, result, err, "Password reset failed")
}

// Logout godoc
// @Summary Log out a user
// @Description Revoke the current token until it expires
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} LogoutResponse
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LogoutResponse{Success: true, Message: "Logged out successfully"})
}

// Me godoc
// @Summary Current user
// @Description Return the signed-in user
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} utils.Response
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// respondAuth keeps the auth surface's convention: business failures are a
// 200 with success=false, internal failures a 500 with a generic message.
func respondAuth(c *gin.Context, result *services.AuthResult, err error, failure string) {
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}

	var se *services.Error
	if errors.As(err, &se) && se.Kind != services.KindInternal {
		c.JSON(http.StatusOK, services.AuthResult{Success: false, Message: se.Message})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, services.AuthResult{Success: false, Message: failure})
}

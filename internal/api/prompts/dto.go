package prompts

import "github.com/bracken1022/prompt-museum/internal/services"

type CreatePromptRequest struct {
	Title       string   `json:"title" binding:"required,max=255" example:"Essay outline"`
	Description string   `json:"description" example:"Outlines an essay from a thesis"`
	Content     string   `json:"content" binding:"required" example:"Write an outline for..."`
	Category    string   `json:"category" binding:"required,max=100" example:"Writing"`
	Agent       string   `json:"agent" binding:"required,max=100" example:"ChatGPT"`
	Tags        []string `json:"tags" example:"essay,outline"`
	IsPublic    *bool    `json:"is_public" example:"true"`
}

func (r CreatePromptRequest) input() services.PromptInput {
	return services.PromptInput{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Category:    r.Category,
		Agent:       r.Agent,
		Tags:        r.Tags,
		IsPublic:    r.IsPublic,
	}
}

// UpdatePromptRequest is a partial update; omitted fields keep their value.
type UpdatePromptRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string   `json:"description"`
	Content     *string   `json:"content" binding:"omitempty,min=1"`
	Category    *string   `json:"category" binding:"omitempty,min=1,max=100"`
	Agent       *string   `json:"agent" binding:"omitempty,min=1,max=100"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"is_public"`
}

func (r UpdatePromptRequest) patch() services.PromptPatch {
	return services.PromptPatch{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Category:    r.Category,
		Agent:       r.Agent,
		Tags:        r.Tags,
		IsPublic:    r.IsPublic,
	}
}

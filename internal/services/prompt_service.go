package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bracken1022/prompt-museum/internal/models"
	"github.com/bracken1022/prompt-museum/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	CategoriesCacheKey  = "prompts:categories"
	AgentsCacheKey      = "prompts:agents"
	FacetsCacheDuration = 10 * time.Minute

	// FilterAll disables the agent or category filter.
	FilterAll = "all"
)

// PromptInput carries the fields of a new prompt. IsPublic defaults to true
// when nil.
type PromptInput struct {
	Title       string
	Description string
	Content     string
	Category    string
	Agent       string
	Tags        []string
	IsPublic    *bool
}

// PromptPatch is a partial update; nil fields are left untouched.
type PromptPatch struct {
	Title       *string
	Description *string
	Content     *string
	Category    *string
	Agent       *string
	Tags        *[]string
	IsPublic    *bool
}

// PromptFilter narrows the public listing. Empty or "all" values are ignored.
type PromptFilter struct {
	Agent    string
	Category string
	Search   string
}

// PromptService manages prompts and authorizes mutations by ownership.
type PromptService struct {
	db    *gorm.DB
	users *UserService
	cache jsonCache
}

func NewPromptService(db *gorm.DB, users *UserService, rdb *redis.Client) *PromptService {
	return &PromptService{db: db, users: users, cache: jsonCache{rdb: rdb}}
}

// CreatePrompt stores a prompt owned by ownerID.
func (s *PromptService) CreatePrompt(ctx context.Context, input PromptInput, ownerID uint) (*models.Prompt, error) {
	if _, err := s.users.FindUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	prompt := &models.Prompt{
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		Category:    input.Category,
		Agent:       input.Agent,
		Tags:        models.NewTags(input.Tags),
		IsPublic:    isPublic,
		UserID:      ownerID,
	}
	if err := s.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	s.invalidateFacets(ctx)
	return s.GetPrompt(ctx, prompt.ID)
}

// ListPublicPrompts returns public prompts, newest first. Search matches
// title, description or tags case-insensitively.
func (s *PromptService) ListPublicPrompts(ctx context.Context, filter PromptFilter) ([]models.Prompt, error) {
	db := s.db.WithContext(ctx).Preload("User").Where("is_public = ?", true)

	if filter.Agent != "" && filter.Agent != FilterAll {
		db = db.Where("agent = ?", filter.Agent)
	}
	if filter.Category != "" && filter.Category != FilterAll {
		db = db.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		dialect := s.db.Dialector.Name()
		escape := likeEscapeClause(dialect)
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		db = db.Where(
			"(LOWER(title) LIKE ?"+escape+" OR LOWER(description) LIKE ?"+escape+" OR "+tagMatch(dialect)+")",
			pattern, pattern, pattern,
		)
	}

	prompts := []models.Prompt{}
	if err := db.Order("created_at desc").Order("id desc").Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return prompts, nil
}

// GetPrompt returns a prompt by ID whatever its visibility.
func (s *PromptService) GetPrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.db.WithContext(ctx).Preload("User").First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "Prompt with ID %d not found", id)
		}
		return nil, fmt.Errorf("get prompt %d: %w", id, err)
	}
	return &prompt, nil
}

// ListUserPrompts returns every prompt owned by ownerID, public or not,
// newest first.
func (s *PromptService) ListUserPrompts(ctx context.Context, ownerID uint) ([]models.Prompt, error) {
	prompts := []models.Prompt{}
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", ownerID).
		Order("created_at desc").Order("id desc").
		Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("list prompts of user %d: %w", ownerID, err)
	}
	return prompts, nil
}

// UpdatePrompt applies patch when callerID owns the prompt.
func (s *PromptService) UpdatePrompt(ctx context.Context, id uint, patch PromptPatch, callerID uint) (*models.Prompt, error) {
	if err := s.checkOwner(ctx, id, callerID, "update"); err != nil {
		return nil, err
	}

	updates := patch.updates()
	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Prompt{}).
			Where("id = ? AND user_id = ?", id, callerID).
			Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("update prompt %d: %w", id, err)
		}
		s.invalidateFacets(ctx)
	}

	return s.GetPrompt(ctx, id)
}

// DeletePrompt removes a prompt when callerID owns it.
func (s *PromptService) DeletePrompt(ctx context.Context, id uint, callerID uint) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, callerID).Delete(&models.Prompt{})
	if result.Error != nil {
		return fmt.Errorf("delete prompt %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ownershipError(id, "delete")
	}

	s.invalidateFacets(ctx)
	logger.Log.Info("prompt deleted", zap.Uint("prompt_id", id), zap.Uint("user_id", callerID))
	return nil
}

// LikePrompt adds one like. There is no per-user tracking: every call counts.
// The increment is a single UPDATE so concurrent likes are not lost.
func (s *PromptService) LikePrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	result := s.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count + 1 < 0 THEN 0 ELSE likes_count + 1 END"))
	if result.Error != nil {
		return nil, fmt.Errorf("like prompt %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, newError(KindNotFound, "Prompt with ID %d not found", id)
	}
	return s.GetPrompt(ctx, id)
}

// GetCategories returns the distinct categories of public prompts.
func (s *PromptService) GetCategories(ctx context.Context) ([]string, error) {
	return s.distinctPublic(ctx, "category", CategoriesCacheKey)
}

// GetAgents returns the distinct agents of public prompts.
func (s *PromptService) GetAgents(ctx context.Context) ([]string, error) {
	return s.distinctPublic(ctx, "agent", AgentsCacheKey)
}

func (s *PromptService) distinctPublic(ctx context.Context, column, cacheKey string) ([]string, error) {
	values := []string{}
	if s.cache.get(ctx, cacheKey, &values) {
		return values, nil
	}

	err := s.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("is_public = ?", true).
		Distinct().
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("list distinct %s: %w", column, err)
	}

	s.cache.set(ctx, cacheKey, values, FacetsCacheDuration)
	return values, nil
}

func (s *PromptService) checkOwner(ctx context.Context, id, callerID uint, action string) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("id = ? AND user_id = ?", id, callerID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check prompt owner: %w", err)
	}
	if count == 0 {
		return ownershipError(id, action)
	}
	return nil
}

func (s *PromptService) invalidateFacets(ctx context.Context) {
	s.cache.del(ctx, CategoriesCacheKey, AgentsCacheKey)
}

func ownershipError(id uint, action string) *Error {
	return newError(KindNotFound, "Prompt with ID %d not found or you don't have permission to %s it", id, action)
}

func (p PromptPatch) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Content != nil {
		updates["content"] = *p.Content
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Agent != nil {
		updates["agent"] = *p.Agent
	}
	if p.Tags != nil {
		updates["tags"] = models.NewTags(*p.Tags)
	}
	if p.IsPublic != nil {
		updates["is_public"] = *p.IsPublic
	}
	return updates
}

// tagMatch is a predicate that holds when any single tag matches the LIKE
// pattern bound to its placeholder. Tags are matched element by element,
// never against the serialized JSON.
func tagMatch(dialect string) string {
	switch dialect {
	case "postgres":
		return `EXISTS (SELECT 1 FROM jsonb_array_elements_text(prompts.tags) AS t(tag) WHERE LOWER(t.tag) LIKE ? ESCAPE '\')`
	case "mysql":
		// JSON_SEARCH takes LIKE wildcards and escapes with a backslash.
		return "JSON_SEARCH(LOWER(prompts.tags), 'one', ?) IS NOT NULL"
	default:
		return `EXISTS (SELECT 1 FROM json_each(prompts.tags) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\')`
	}
}

// likeEscapeClause names the backslash as LIKE escape where it is not the
// default.
func likeEscapeClause(dialect string) string {
	if dialect == "mysql" {
		return ""
	}
	return ` ESCAPE '\'`
}

// escapeLike makes % and _ in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

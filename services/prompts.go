package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kendall-kelly/lightwork-auth-api/events"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

// PromptService manages assistant prompts. Messages are stored per user or
// per company category, and a pointer record per owner names the current one.
type PromptService struct {
	store       *repository.Store
	views       *ViewBuilder
	llm         LLM
	fetcher     Fetcher
	publisher   events.Publisher
	templateURL string
	logger      *zap.Logger
}

func NewPromptService(store *repository.Store, views *ViewBuilder, llm LLM, fetcher Fetcher, pub events.Publisher, templateURL string, logger *zap.Logger) *PromptService {
	return &PromptService{
		store:       store,
		views:       views,
		llm:         llm,
		fetcher:     fetcher,
		publisher:   pub,
		templateURL: templateURL,
		logger:      logger,
	}
}

// PromptAccepted is returned when a prompt file was queued for upload.
type PromptAccepted struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// CreateCategoryPrompt queues message as the markdown template of a
// category. The stored URL arrives later through StoreCategoryPromptURL.
func (s *PromptService) CreateCategoryPrompt(ctx context.Context, categoryID, message string) (*PromptAccepted, error) {
	if categoryID == "" {
		return nil, utils.BadRequest("categoryId is required")
	}
	body := utils.TextToMarkdown(message)
	if body == nil {
		return nil, utils.BadRequest("message is required")
	}
	err := s.publisher.Publish(ctx, events.TopicCategoryPromptUpload, events.CategoryPromptUpload{FileBuffer: body, CategoryID: categoryID})
	if err != nil {
		return nil, utils.Wrap(err, "Create category prompt failed")
	}
	return &PromptAccepted{Message: "Category Prompt queued for upload", Status: 202}, nil
}

// GenerateUserPrompt asks the LLM to tailor the user's company category
// template to the user and queues the result for upload.
func (s *PromptService) GenerateUserPrompt(ctx context.Context, userID string) (*PromptAccepted, error) {
	view, err := s.views.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if view.CompanyInfo == nil || view.CompanyInfo.CategoryID == "" {
		return nil, utils.BadRequest("Company info or category ID not found.")
	}
	category, err := s.GetCategoryPrompt(ctx, view.CompanyInfo.CategoryID)
	if err != nil {
		return nil, err
	}
	msg, ok := category.MessageDetails.(*models.CategoryPromptMessage)
	if !ok || msg.Message == "" {
		return nil, utils.NotFound("Category prompt not found.")
	}

	categoryTemplate, err := s.fetcher.FetchText(ctx, msg.Message)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to load markdown file from URL")
	}
	systemTemplate, err := s.fetcher.FetchText(ctx, s.templateURL)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to load markdown file from URL")
	}

	reply, err := s.llm.Complete(ctx, systemTemplate, userPromptBrief(view, categoryTemplate))
	if err != nil {
		return nil, utils.Wrap(err, "Design prompt failed")
	}
	body := utils.TextToMarkdown(utils.MarkdownToText(reply))
	if body == nil {
		return nil, utils.Internal("Design prompt failed: empty completion")
	}
	if err := s.publisher.Publish(ctx, events.TopicUserPromptUpload, events.UserPromptUpload{FileBuffer: body, UserID: userID}); err != nil {
		return nil, utils.Wrap(err, "Create user prompt failed")
	}
	s.logger.Info("User prompt generated", zap.String("user_id", userID), zap.Int("bytes", len(body)))
	return &PromptAccepted{Message: "User Prompt created Successfully", Status: 201}, nil
}

// userPromptBrief describes the user to the LLM, followed by the category
// template it should personalize.
func userPromptBrief(v *models.CurrentUserView, template string) string {
	var qualification, bio string
	var skills []string
	if v.UserProfile != nil {
		qualification = v.UserProfile.QualificationName
		bio = v.UserProfile.Bio
		skills = v.UserProfile.Skills
	}
	var location string
	if v.AddressInfo != nil {
		location = v.AddressInfo.MainStreet
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a(an) %s %s with specialization in: %s.\n", v.FirstName, qualification, strings.ToLower(string(v.UserType)), strings.Join(skills, ", "))
	fmt.Fprintf(&b, "Their location is at %s.\n\n", location)
	fmt.Fprintf(&b, "Here is %s's bio:\n%s\n\n", v.FirstName, bio)
	b.WriteString("Using the template below, create a personalized prompt for an assistant to take care of calls from potential clients.\n\n---\n")
	b.WriteString(template)
	return b.String()
}

// StoreUserPromptURL records an uploaded user prompt as the user's current
// message.
func (s *PromptService) StoreUserPromptURL(ctx context.Context, userID, url string) error {
	if userID == "" || url == "" {
		return fmt.Errorf("userId and url are required")
	}
	_, err := s.store.CreateUserPromptMessage(ctx, userID, url)
	return err
}

// StoreCategoryPromptURL records an uploaded category template.
func (s *PromptService) StoreCategoryPromptURL(ctx context.Context, categoryID, url string) error {
	if categoryID == "" || url == "" {
		return fmt.Errorf("categoryId and url are required")
	}
	_, err := s.store.CreateCategoryPromptMessage(ctx, categoryID, url)
	return err
}

func (s *PromptService) CreateUserMessage(ctx context.Context, userID, message string) (*models.UserPromptMessage, error) {
	if userID == "" {
		return nil, utils.BadRequest("userId is required")
	}
	m, err := s.store.CreateUserPromptMessage(ctx, userID, message)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to create prompt")
	}
	return m, nil
}

func (s *PromptService) ListUserMessages(ctx context.Context, userID string) ([]models.UserPromptMessage, error) {
	rows, err := s.store.ListUserPromptMessages(ctx, userID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get prompts")
	}
	return rows, nil
}

func (s *PromptService) GetUserMessage(ctx context.Context, id string) (*models.UserPromptMessage, error) {
	m, err := s.store.FindUserPromptMessage(ctx, id)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get prompt")
	}
	return m, nil
}

func (s *PromptService) UpdateUserMessage(ctx context.Context, id, message string) (*models.UserPromptMessage, error) {
	m, err := s.store.UpdateUserPromptMessage(ctx, id, message)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to update prompt")
	}
	return m, nil
}

func (s *PromptService) DeleteUserMessage(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeleteUserPromptMessage(ctx, id), "Failed to delete prompt")
}

func (s *PromptService) DeleteUserMessages(ctx context.Context, userID string) error {
	return utils.Wrap(s.store.DeleteUserPromptMessages(ctx, userID), "Failed to delete all prompts for user")
}

func (s *PromptService) ListUserPrompts(ctx context.Context) ([]models.UserPrompt, error) {
	rows, err := s.store.ListUserPrompts(ctx)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get user prompts")
	}
	return rows, nil
}

// GetUserPrompt returns the user's pointer record joined with its message.
func (s *PromptService) GetUserPrompt(ctx context.Context, userID string) (*models.PromptWithMessage, error) {
	p, err := s.store.FindUserPrompt(ctx, userID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get user prompt")
	}
	m, err := s.store.FindUserPromptMessage(ctx, p.MessageID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get user prompt")
	}
	return &models.PromptWithMessage{
		ID: p.ID, OwnerID: p.UserID, MessageID: p.MessageID,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt, MessageDetails: m,
	}, nil
}

func (s *PromptService) SetUserPrompt(ctx context.Context, userID, messageID string) (*models.UserPrompt, error) {
	p, err := s.store.SetUserPromptMessage(ctx, userID, messageID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to update user prompt")
	}
	return p, nil
}

func (s *PromptService) DeleteUserPrompt(ctx context.Context, userID string) error {
	return utils.Wrap(s.store.DeleteUserPrompt(ctx, userID), "Failed to delete user prompt")
}

func (s *PromptService) CreateCategoryMessage(ctx context.Context, categoryID, message string) (*models.CategoryPromptMessage, error) {
	if categoryID == "" {
		return nil, utils.BadRequest("categoryId is required")
	}
	m, err := s.store.CreateCategoryPromptMessage(ctx, categoryID, message)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to create category prompt")
	}
	return m, nil
}

func (s *PromptService) ListCategoryMessages(ctx context.Context, categoryID string) ([]models.CategoryPromptMessage, error) {
	rows, err := s.store.ListCategoryPromptMessages(ctx, categoryID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get category prompts")
	}
	return rows, nil
}

func (s *PromptService) GetCategoryMessage(ctx context.Context, id string) (*models.CategoryPromptMessage, error) {
	m, err := s.store.FindCategoryPromptMessage(ctx, id)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get category prompt")
	}
	return m, nil
}

func (s *PromptService) UpdateCategoryMessage(ctx context.Context, id, message string) (*models.CategoryPromptMessage, error) {
	m, err := s.store.UpdateCategoryPromptMessage(ctx, id, message)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to update category prompt")
	}
	return m, nil
}

func (s *PromptService) DeleteCategoryMessage(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeleteCategoryPromptMessage(ctx, id), "Failed to delete category prompt")
}

func (s *PromptService) DeleteCategoryMessages(ctx context.Context, categoryID string) error {
	return utils.Wrap(s.store.DeleteCategoryPromptMessages(ctx, categoryID), "Failed to delete all category prompts")
}

func (s *PromptService) ListCategoryPrompts(ctx context.Context) ([]models.CategoryPrompt, error) {
	rows, err := s.store.ListCategoryPrompts(ctx)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get category prompts")
	}
	return rows, nil
}

// GetCategoryPrompt returns the category's pointer joined with its message.
func (s *PromptService) GetCategoryPrompt(ctx context.Context, categoryID string) (*models.PromptWithMessage, error) {
	p, err := s.store.FindCategoryPrompt(ctx, categoryID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get category prompt")
	}
	m, err := s.store.FindCategoryPromptMessage(ctx, p.MessageID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get category prompt")
	}
	return &models.PromptWithMessage{
		ID: p.ID, OwnerID: p.CategoryID, MessageID: p.MessageID,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt, MessageDetails: m,
	}, nil
}

func (s *PromptService) SetCategoryPrompt(ctx context.Context, categoryID, messageID string) (*models.CategoryPrompt, error) {
	p, err := s.store.SetCategoryPromptMessage(ctx, categoryID, messageID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to update category prompt")
	}
	return p, nil
}

func (s *PromptService) DeleteCategoryPrompt(ctx context.Context, categoryID string) error {
	return utils.Wrap(s.store.DeleteCategoryPrompt(ctx, categoryID), "Failed to delete category prompt")
}

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"go.uber.org/zap"
)

// AccountEvents is the account side of the consumed topics.
type AccountEvents interface {
	ProvisionAssistantNumber(ctx context.Context, userID string) error
	SetStripeConnectID(ctx context.Context, userID, connectID string) error
	SetStripeCustomerID(ctx context.Context, userID, customerID string) error
	MarkStripeConnectVerified(ctx context.Context, connectID string) error
	EditUsersProfile(ctx context.Context, userID string, in models.EditProfileInput) (*models.CurrentUserView, error)
}

// PromptEvents stores the URLs the upload worker reports back.
type PromptEvents interface {
	StoreCategoryPromptURL(ctx context.Context, categoryID, url string) error
	StoreUserPromptURL(ctx context.Context, userID, url string) error
}

// Mailer sends email requested by other services.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

type assistantInfo struct {
	UserID string `json:"user_id"`
	models.EditProfileInput
}

// Handlers registers a handler for every consumed topic.
func Handlers(accounts AccountEvents, prompts PromptEvents, mailer Mailer, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := NewRouter()

	r.On(TopicProvisionPhoneNumber, decode(func(ctx context.Context, p ProvisionPhoneNumber) error {
		if p.UserID == "" {
			return fmt.Errorf("user_id is required")
		}
		return accounts.ProvisionAssistantNumber(ctx, p.UserID)
	}))

	r.On(TopicDeadLetter, func(ctx context.Context, data json.RawMessage) error {
		logger.Warn("Dead letter received", zap.ByteString("payload", data))
		return nil
	})

	r.On(TopicStripePaymentID, decode(func(ctx context.Context, p StripeIDUpdate) error {
		return accounts.SetStripeConnectID(ctx, p.UserID, p.ID)
	}))

	r.On(TopicStripeCustomerID, decode(func(ctx context.Context, p StripeIDUpdate) error {
		return accounts.SetStripeCustomerID(ctx, p.UserID, p.ID)
	}))

	r.On(TopicStripeConnectVerified, decode(func(ctx context.Context, p StripeConnectVerified) error {
		return accounts.MarkStripeConnectVerified(ctx, p.ID)
	}))

	r.On(TopicUpdateAssistantInfo, decode(func(ctx context.Context, p assistantInfo) error {
		if p.UserID == "" {
			return fmt.Errorf("user_id is required")
		}
		_, err := accounts.EditUsersProfile(ctx, p.UserID, p.EditProfileInput)
		return err
	}))

	r.On(TopicSendEmail, decode(func(ctx context.Context, msg models.EmailMessage) error {
		return mailer.Send(ctx, msg)
	}))

	r.On(TopicCategoryPromptFileStored, decode(func(ctx context.Context, p CategoryPromptStored) error {
		return prompts.StoreCategoryPromptURL(ctx, p.CategoryID, p.URL)
	}))

	r.On(TopicUserPromptFileStored, decode(func(ctx context.Context, p UserPromptStored) error {
		return prompts.StoreUserPromptURL(ctx, p.UserID, p.URL)
	}))

	return r
}

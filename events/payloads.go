package events

import "encoding/json"

type ProvisionPhoneNumber struct {
	UserID string `json:"user_id"`
}

// StripeIDUpdate carries a Stripe account id for a user.
type StripeIDUpdate struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

// StripeConnectVerified names the verified connect account.
type StripeConnectVerified struct {
	ID string `json:"id"`
}

// DeadLetter wraps a message whose handler failed.
type DeadLetter struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
}

// CategoryPromptUpload asks the upload worker to store a category template.
// FileBuffer is base64 encoded on the wire.
type CategoryPromptUpload struct {
	FileBuffer []byte `json:"fileBuffer"`
	CategoryID string `json:"categoryId"`
}

type UserPromptUpload struct {
	FileBuffer []byte `json:"fileBuffer"`
	UserID     string `json:"userId"`
}

// CategoryPromptStored reports where a category template was stored.
type CategoryPromptStored struct {
	URL        string `json:"url"`
	CategoryID string `json:"categoryId"`
}

type UserPromptStored struct {
	URL    string `json:"url"`
	UserID string `json:"userId"`
}

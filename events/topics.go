// Package events moves messages between this service and its neighbours
// over Redis Streams. Each topic is one stream.
package events

// Consumed topics.
const (
	TopicProvisionPhoneNumber     = "buy-and-provision-number-update-assistant-phonenumber"
	TopicDeadLetter               = "dead-letter-queue"
	TopicStripePaymentID          = "auth-update-stripe-payment-id"
	TopicStripeCustomerID         = "auth-update-stripe-customer-id"
	TopicStripeConnectVerified    = "auth-update-stripe-connect-verification"
	TopicUpdateAssistantInfo      = "update-assistant-info"
	TopicSendEmail                = "email-client-provider"
	TopicCategoryPromptFileStored = "markdown-prompt-category-file-upload"
	TopicUserPromptFileStored     = "markdown-prompt-user-file-upload"
)

// Produced topics, consumed by the file upload worker.
const (
	TopicCategoryPromptUpload = "markdown-file-category-upload"
	TopicUserPromptUpload     = "markdown-file-user-upload"
)

// ConsumedTopics lists every topic the API process subscribes to.
var ConsumedTopics = []string{
	TopicProvisionPhoneNumber,
	TopicDeadLetter,
	TopicStripePaymentID,
	TopicStripeCustomerID,
	TopicStripeConnectVerified,
	TopicUpdateAssistantInfo,
	TopicSendEmail,
	TopicCategoryPromptFileStored,
	TopicUserPromptFileStored,
}

// UploadTopics are handled by the optional file upload worker.
var UploadTopics = []string{TopicCategoryPromptUpload, TopicUserPromptUpload}

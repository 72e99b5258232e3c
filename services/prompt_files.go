package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

const markdownContentType = "text/markdown; charset=utf-8"

// PromptFileService stores generated prompt markdown and hands back a URL
// the assistant runtime can fetch.
type PromptFileService struct {
	store ObjectStore
	now   func() time.Time
}

func NewPromptFileService(store ObjectStore) *PromptFileService {
	return &PromptFileService{store: store, now: time.Now}
}

// StorePrompt validates and uploads content for the given owner, returning
// a presigned URL to it.
func (s *PromptFileService) StorePrompt(ctx context.Context, kind, ownerID string, content []byte) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("prompt owner id is required")
	}
	key := utils.PromptObjectKey(kind, ownerID, s.now())
	if err := utils.ValidatePromptFile(key, len(content)); err != nil {
		return "", err
	}
	if err := s.store.Upload(ctx, key, content, markdownContentType); err != nil {
		return "", fmt.Errorf("failed to store prompt: %w", err)
	}
	url, err := s.store.PresignedURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to generate prompt URL: %w", err)
	}
	return url, nil
}

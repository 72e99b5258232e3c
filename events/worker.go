package events

import (
	"context"
	"fmt"
)

// PromptFileStore persists a prompt document and returns a URL to it.
type PromptFileStore interface {
	StorePrompt(ctx context.Context, kind, ownerID string, content []byte) (string, error)
}

const (
	PromptKindCategory = "category"
	PromptKindUser     = "user"
)

// UploadWorker stores uploaded prompt files and publishes where they went.
func UploadWorker(store PromptFileStore, pub Publisher) *Router {
	r := NewRouter()

	r.On(TopicCategoryPromptUpload, decode(func(ctx context.Context, p CategoryPromptUpload) error {
		if p.CategoryID == "" {
			return fmt.Errorf("categoryId is required")
		}
		url, err := store.StorePrompt(ctx, PromptKindCategory, p.CategoryID, p.FileBuffer)
		if err != nil {
			return err
		}
		return pub.Publish(ctx, TopicCategoryPromptFileStored, CategoryPromptStored{URL: url, CategoryID: p.CategoryID})
	}))

	r.On(TopicUserPromptUpload, decode(func(ctx context.Context, p UserPromptUpload) error {
		if p.UserID == "" {
			return fmt.Errorf("userId is required")
		}
		url, err := store.StorePrompt(ctx, PromptKindUser, p.UserID, p.FileBuffer)
		if err != nil {
			return err
		}
		return pub.Publish(ctx, TopicUserPromptFileStored, UserPromptStored{URL: url, UserID: p.UserID})
	}))

	return r
}

// Merge returns a router with the handlers of every router given.
func Merge(routers ...*Router) *Router {
	out := NewRouter()
	for _, r := range routers {
		for topic, h := range r.handlers {
			out.On(topic, h)
		}
	}
	return out
}

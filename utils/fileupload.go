package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
	// AllowedPromptFormat is markdown
	AllowedPromptFormat = ".md"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidatePromptFile validates a prompt file's name and size before upload.
func ValidatePromptFile(filename string, size int) error {
	if size == 0 {
		return &FileUploadError{Code: "EMPTY_FILE", Message: "File is empty"}
	}

	if size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != AllowedPromptFormat {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", AllowedPromptFormat),
		}
	}

	return nil
}

// PromptObjectKey builds the storage key for a prompt file, e.g.
// "prompts/category/<id>/1700000000000.md".
func PromptObjectKey(kind, ownerID string, at time.Time) string {
	return fmt.Sprintf("prompts/%s/%s/%d%s", kind, ownerID, at.UnixMilli(), AllowedPromptFormat)
}

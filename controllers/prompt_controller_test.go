package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kendall-kelly/lightwork-auth-api/events"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryPromptQueuesUpload(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/category-prompt", map[string]string{"categoryId": "cat-1"})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	assert.Empty(t, api.pub.Messages())

	w = api.do(http.MethodPost, "/category-prompt", map[string]string{"categoryId": "cat-1", "message": "Answer calls politely."})
	requireStatus(t, w, http.StatusAccepted)
	env := testutil.DecodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Category Prompt queued for upload", env.Message)

	queued := api.pub.OnTopic(events.TopicCategoryPromptUpload)
	require.Len(t, queued, 1)
	var payload events.CategoryPromptUpload
	require.NoError(t, json.Unmarshal(queued[0].Payload, &payload))
	assert.Equal(t, "cat-1", payload.CategoryID)
	assert.Contains(t, string(payload.FileBuffer), "Answer calls politely.")
}

func TestGenerateUserPrompt(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	w := api.do(http.MethodPost, "/user-prompt", nil)
	requireStatus(t, w, http.StatusBadRequest)

	co := api.seedCompany(t, models.Company{Name: "Pipes Ltd", CategoryID: "cat-plumbing"})
	u := api.seedUser(t, models.User{Email: "plumber@test.com", FirstName: "Pat", CompanyID: co.ID}, "")

	w = api.do(http.MethodPost, "/user-prompt", map[string]string{"userId": u.ID})
	requireStatus(t, w, http.StatusNotFound)

	const categoryURL = "https://files.test/categories/plumbing.md"
	api.fetcher.Pages[categoryURL] = "Greet callers and book a visit."
	_, err := api.store.CreateCategoryPromptMessage(ctx, co.CategoryID, categoryURL)
	require.NoError(t, err)

	w = api.do(http.MethodPost, "/user-prompt", map[string]string{"userId": u.ID})
	requireStatus(t, w, http.StatusCreated)
	assert.Equal(t, "User Prompt created Successfully", testutil.DecodeEnvelope(t, w).Message)

	calls := api.llm.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "You design prompts.", calls[0].System)
	assert.Contains(t, calls[0].User, "Pat")
	assert.Contains(t, calls[0].User, "Greet callers and book a visit.")

	queued := api.pub.OnTopic(events.TopicUserPromptUpload)
	require.Len(t, queued, 1)
	var payload events.UserPromptUpload
	require.NoError(t, json.Unmarshal(queued[0].Payload, &payload))
	assert.Equal(t, u.ID, payload.UserID)
	assert.Contains(t, string(payload.FileBuffer), "Be helpful.")
}

func TestUserPromptMessages(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	first, err := api.store.CreateUserPromptMessage(ctx, "user-1", "https://files.test/u1-a.md")
	require.NoError(t, err)
	second, err := api.store.CreateUserPromptMessage(ctx, "user-1", "https://files.test/u1-b.md")
	require.NoError(t, err)

	w := api.do(http.MethodGet, "/user-prompt/all/user-1", nil)
	requireStatus(t, w, http.StatusOK)
	var rows []models.UserPromptMessage
	testutil.DecodeData(t, w, &rows)
	assert.Len(t, rows, 2)

	w = api.do(http.MethodGet, "/user-prompt/user/user-1", nil)
	requireStatus(t, w, http.StatusOK)
	var current models.PromptWithMessage
	testutil.DecodeData(t, w, &current)
	assert.Equal(t, second.ID, current.MessageID)

	w = api.do(http.MethodPut, "/user-prompt/user/user-1", map[string]string{"messageId": first.ID})
	requireStatus(t, w, http.StatusOK)
	var pointer models.UserPrompt
	testutil.DecodeData(t, w, &pointer)
	assert.Equal(t, first.ID, pointer.MessageID)

	w = api.do(http.MethodPut, "/user-prompt/"+first.ID, map[string]string{"message": "Inline prompt"})
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodGet, "/user-prompt/prompt/"+first.ID, nil)
	var edited models.UserPromptMessage
	testutil.DecodeData(t, w, &edited)
	assert.Equal(t, "Inline prompt", edited.Message)

	w = api.do(http.MethodGet, "/user-prompt/all", nil)
	var pointers []models.UserPrompt
	testutil.DecodeData(t, w, &pointers)
	assert.Len(t, pointers, 1)

	w = api.do(http.MethodDelete, "/user-prompt/"+second.ID, nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodDelete, "/user-prompt/user/me/user-1", nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodGet, "/user-prompt/user/user-1", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = api.do(http.MethodDelete, "/user-prompt/all/user-1", nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodGet, "/user-prompt/all/user-1", nil)
	testutil.DecodeData(t, w, &rows)
	assert.Empty(t, rows)
}

func TestCategoryPromptMessages(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	msg, err := api.store.CreateCategoryPromptMessage(ctx, "cat-1", "https://files.test/cat-1.md")
	require.NoError(t, err)

	w := api.do(http.MethodGet, "/category-prompt/category/cat-1", nil)
	requireStatus(t, w, http.StatusOK)
	var current models.PromptWithMessage
	testutil.DecodeData(t, w, &current)
	assert.Equal(t, msg.ID, current.MessageID)
	assert.Equal(t, "cat-1", current.OwnerID)

	w = api.do(http.MethodGet, "/category-prompt/prompt/all", nil)
	var pointers []models.CategoryPrompt
	testutil.DecodeData(t, w, &pointers)
	require.Len(t, pointers, 1)

	w = api.do(http.MethodPut, "/category-prompt/"+msg.ID, map[string]string{"message": "https://files.test/cat-1-v2.md"})
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodGet, "/category-prompt/"+msg.ID, nil)
	var edited models.CategoryPromptMessage
	testutil.DecodeData(t, w, &edited)
	assert.Equal(t, "https://files.test/cat-1-v2.md", edited.Message)

	w = api.do(http.MethodPut, "/category-prompt/category/cat-1", map[string]string{})
	requireStatus(t, w, http.StatusBadRequest)

	w = api.do(http.MethodDelete, "/category-prompt/category/cat-1", nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodDelete, "/category-prompt/category/cat-1", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = api.do(http.MethodDelete, "/category-prompt/"+msg.ID, nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodGet, "/category-prompt/all/cat-1", nil)
	var rows []models.CategoryPromptMessage
	testutil.DecodeData(t, w, &rows)
	assert.Empty(t, rows)
}

package controllers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/config"
	"github.com/kendall-kelly/lightwork-auth-api/events"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"github.com/kendall-kelly/lightwork-auth-api/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const templateURL = "https://templates.test/create_user_prompt.md"

var testKeys = config.SigningKeys{
	Keys: map[string]string{
		config.KeyTenant:         "tenant-secret",
		config.KeyForgotPassword: "forgot-secret",
	},
	Default: "default-secret",
}

type testAPI struct {
	router  *gin.Engine
	store   *repository.Store
	tokens  *services.TokenIssuer
	mailer  *services.MockEmailSender
	llm     *services.MockLLM
	fetcher *services.MockFetcher
	pub     *events.MockPublisher
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	testutil.RequireTestEnvironment(t)

	store := repository.New(testutil.NewTestDB(t))
	logger := zap.NewNop()
	api := &testAPI{
		store:   store,
		tokens:  services.NewTokenIssuer(testKeys, time.Hour),
		mailer:  services.NewMockEmailSender(),
		llm:     services.NewMockLLM("# Prompt\n\nBe helpful."),
		fetcher: services.NewMockFetcher(map[string]string{templateURL: "You design prompts."}),
		pub:     events.NewMockPublisher(),
	}

	roles := services.NewRoleService(store, logger)
	views := services.NewViewBuilder(store, roles)
	accounts := services.NewAccountService(services.AccountDeps{
		Store:       store,
		Views:       views,
		Tokens:      api.tokens,
		Mailer:      api.mailer,
		Phones:      services.NewMockTelephony(),
		LLM:         api.llm,
		Fetcher:     api.fetcher,
		Publisher:   api.pub,
		FrontendURL: "https://app.test",
		Logger:      logger,
	})

	api.router = testutil.NewRouter()
	RegisterRoutes(api.router, Controllers{
		Auth:      NewAuthController(accounts, services.NewProfileService(store, logger)),
		Roles:     NewRoleController(roles),
		Companies: NewCompanyController(services.NewCompanyService(store, logger)),
		Records: NewRecordsController(
			services.NewAddressService(store),
			services.NewTaxService(store),
			services.NewTenantService(store),
			services.NewActivityService(store),
		),
		Prompts: NewPromptController(services.NewPromptService(store, views, api.llm, api.fetcher, api.pub, templateURL, logger)),
	}, api.tokens)
	return api
}

func (a *testAPI) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	return testutil.PerformRequest(a.router, method, path, body, headers...)
}

// bearer returns the Authorization header pair for a session of userID.
func (a *testAPI) bearer(t *testing.T, userID string, code int) []string {
	t.Helper()
	token, err := a.tokens.Issue(userID, code, "", "")
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

func (a *testAPI) seedUser(t *testing.T, u models.User, password string) *models.User {
	t.Helper()
	if password != "" {
		hash, err := services.HashPassword(password)
		require.NoError(t, err)
		u.Password = &hash
	}
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	if u.UserType == "" {
		u.UserType = models.UserTypeContractor
	}
	require.NoError(t, a.store.CreateUser(context.Background(), &u))
	return &u
}

func (a *testAPI) seedCompany(t *testing.T, co models.Company) *models.Company {
	t.Helper()
	require.NoError(t, a.store.CreateCompany(context.Background(), &co))
	return &co
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := testutil.DecodeEnvelope(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, w.Code, env.Error.StatusCode)
	return env.Error.Code
}

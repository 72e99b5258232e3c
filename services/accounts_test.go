package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kendall-kelly/lightwork-auth-api/events"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	store   *repository.Store
	svc     *AccountService
	tokens  *TokenIssuer
	mailer  *MockEmailSender
	phones  *MockTelephony
	llm     *MockLLM
	fetcher *MockFetcher
	pub     *events.MockPublisher
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	store := newTestStore(t)
	roles := NewRoleService(store, nopLogger())
	f := &accountFixture{
		store:   store,
		tokens:  NewTokenIssuer(testKeys, time.Hour),
		mailer:  NewMockEmailSender(),
		phones:  NewMockTelephony(),
		llm:     NewMockLLM(""),
		fetcher: NewMockFetcher(nil),
		pub:     events.NewMockPublisher(),
	}
	f.svc = NewAccountService(AccountDeps{
		Store:       store,
		Views:       NewViewBuilder(store, roles),
		Tokens:      f.tokens,
		Mailer:      f.mailer,
		Phones:      f.phones,
		LLM:         f.llm,
		Fetcher:     f.fetcher,
		Publisher:   f.pub,
		FrontendURL: "https://app.test/",
		Logger:      nopLogger(),
	})
	return f
}

func withPassword(t *testing.T, plain string) *string {
	t.Helper()
	hash, err := HashPassword(plain)
	require.NoError(t, err)
	return &hash
}

func TestSignUp(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	res, err := f.svc.SignUp(ctx, models.NewUser{Email: "new@test.com", Password: "pw123", UserType: models.UserTypeTenant})
	require.NoError(t, err)
	assert.Nil(t, res.Data.Password)
	assert.Equal(t, models.UserStatusActive, res.Data.Status)

	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Data.ID, claims.Name)
	assert.Equal(t, "7", claims.Subject)

	stored, err := f.store.FindUser(ctx, res.Data.ID)
	require.NoError(t, err)
	assert.True(t, CheckPassword(stored.Password, "pw123"))

	_, err = f.svc.SignUp(ctx, models.NewUser{Email: "NEW@test.com", UserType: models.UserTypeTenant})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
	assert.Equal(t, "This email already exist", err.Error())
}

func TestCreateUserByInvoker(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	admin := createUser(t, f.store, models.User{Email: "admin@test.com", CompanyID: "co-1"})

	res, err := f.svc.CreateUser(ctx, admin.ID, models.NewUser{Email: "staff@test.com", UserType: models.UserTypeStaffTechnicians})
	require.NoError(t, err)
	assert.Equal(t, 201, res.StatusCode)
	require.True(t, strings.HasPrefix(res.SignupLink, "https://app.test/signup/?token="))

	token := strings.TrimPrefix(res.SignupLink, "https://app.test/signup/?token=")
	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "500", claims.Subject)

	created, err := f.store.FindUser(ctx, claims.Name)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusInvited, created.Status)
	assert.Equal(t, "co-1", created.CompanyID)
	assert.Equal(t, admin.ID, created.CreatedBy)
	assert.NotNil(t, created.Password)

	_, err = f.svc.CreateUser(ctx, admin.ID, models.NewUser{Email: "staff@test.com", UserType: models.UserTypeStaffTechnicians})
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))

	_, err = f.svc.CreateUser(ctx, "missing", models.NewUser{Email: "x@test.com", UserType: models.UserTypeTenant})
	assert.True(t, utils.IsNotFound(err))
}

func TestInviteUser(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	res, err := f.svc.InviteUser(ctx, models.NewUser{
		Email:                      "guest@test.com",
		UserType:                   models.UserTypeContractor,
		PhoneNumber:                "447700900123",
		IsContractorCompanyManaged: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "+447700900123", res.NewUser.Phone)
	assert.Equal(t, models.UserStatusInvited, res.NewUser.Status)

	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "guest@test.com", claims.Email)
	assert.Equal(t, "Invite", claims.Type)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "https://app.test/set-password/?token="+res.Token)

	_, err = f.store.FindProfileByUserID(ctx, res.NewUser.ID)
	require.NoError(t, err)

	published := f.pub.OnTopic(events.TopicProvisionPhoneNumber)
	require.Len(t, published, 1)
	var payload events.ProvisionPhoneNumber
	require.NoError(t, json.Unmarshal(published[0].Payload, &payload))
	assert.Equal(t, res.NewUser.ID, payload.UserID)

	_, err = f.svc.InviteUser(ctx, models.NewUser{Email: "guest@test.com", UserType: models.UserTypeContractor})
	require.Error(t, err)
	assert.Equal(t, "User already exists.", err.Error())
}

func TestInviteUserWithoutManagedCompany(t *testing.T) {
	f := newAccountFixture(t)

	res, err := f.svc.InviteUser(context.Background(), models.NewUser{Email: "plain@test.com", UserType: models.UserTypeTenant})
	require.NoError(t, err)
	assert.Empty(t, f.pub.Messages())
	_, err = f.store.FindProfileByUserID(context.Background(), res.NewUser.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestLogin(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	active := createUser(t, f.store, models.User{Email: "a@test.com", Password: withPassword(t, "right")})
	createUser(t, f.store, models.User{Email: "i@test.com", Password: withPassword(t, "right"), Status: models.UserStatusInvited})

	res, err := f.svc.Login(ctx, "A@test.com", "right")
	require.NoError(t, err)
	assert.Equal(t, active.ID, res.Data.ID)
	assert.Nil(t, res.Data.Password)
	assert.NotEmpty(t, res.Token)

	tests := []struct {
		name, email, password, message string
	}{
		{"wrong password", "a@test.com", "wrong", "Invalid user credentials"},
		{"unknown email", "nobody@test.com", "right", "Invalid user credentials"},
		{"invited account", "i@test.com", "right", "You need to use the signup link sent to your email to activate your account"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestLoginWithProvider(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	createUser(t, f.store, models.User{Email: "fed@test.com", FirebaseUID: "uid-1"})
	createUser(t, f.store, models.User{Email: "nouid@test.com"})

	_, err := f.svc.LoginWithProvider(ctx, "fed@test.com", "uid-1")
	require.NoError(t, err)

	_, err = f.svc.LoginWithProvider(ctx, "fed@test.com", "uid-2")
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
	_, err = f.svc.LoginWithProvider(ctx, "nouid@test.com", "")
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
}

func TestPasswordFlows(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	invited := createUser(t, f.store, models.User{Email: "p@test.com", Status: models.UserStatusInvited})

	require.NoError(t, f.svc.SetPassword(ctx, invited.ID, "first"))
	u, err := f.store.FindUser(ctx, invited.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, u.Status)
	assert.True(t, CheckPassword(u.Password, "first"))

	err = f.svc.SetPassword(ctx, "missing", "x")
	require.Error(t, err)
	assert.Equal(t, "Oops! User not found!", err.Error())

	err = f.svc.ResetPassword(ctx, invited.ID, "wrong", "second")
	require.Error(t, err)
	assert.Equal(t, "Oops! The entered password is wrong", err.Error())
	require.NoError(t, f.svc.ResetPassword(ctx, invited.ID, "first", "second"))

	require.NoError(t, f.svc.CreateNewPassword(ctx, invited.ID, "third"))
	u, err = f.store.FindUser(ctx, invited.ID)
	require.NoError(t, err)
	assert.True(t, CheckPassword(u.Password, "third"))
}

func TestForgotPassword(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	active := createUser(t, f.store, models.User{Email: "f@test.com"})
	createUser(t, f.store, models.User{Email: "inactive@test.com", Status: models.UserStatusInactive})

	msg, err := f.svc.ForgotPassword(ctx, "f@test.com")
	require.NoError(t, err)
	assert.Contains(t, msg, "f@test.com")

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "f@test.com", sent[0].To)
	idx := strings.Index(sent[0].Text, "https://app.test/create-new-password/?token=")
	require.GreaterOrEqual(t, idx, 0)
	token := strings.Fields(sent[0].Text[idx+len("https://app.test/create-new-password/?token="):])[0]
	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "10000", claims.Subject)
	assert.Equal(t, active.ID, claims.Name)

	for _, email := range []string{"inactive@test.com", "none@test.com"} {
		_, err := f.svc.ForgotPassword(ctx, email)
		assert.True(t, utils.IsNotFound(err), email)
	}
}

func TestUpdateUser(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	u := createUser(t, f.store, models.User{Email: "u@test.com", Skills: models.StringList{"tiling"}, Password: withPassword(t, "pw")})

	_, err := f.svc.UpdateUser(ctx, "", models.UserPatch{})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	updated, err := f.svc.UpdateUser(ctx, u.ID, models.UserPatch{
		FirstName:          models.Some("Ada"),
		StripeConnectVerif: models.Some(false),
		Skills:             models.AppendList("plumbing"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Password)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, models.StringList{"tiling", "plumbing"}, updated.Skills)
}

func TestContractorsProfile(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	plumber := createUser(t, f.store, models.User{Email: "pl@test.com"})
	sparky := createUser(t, f.store, models.User{Email: "el@test.com"})
	tenant := createUser(t, f.store, models.User{Email: "t@test.com", UserType: models.UserTypeTenant})
	require.NoError(t, f.store.CreateProfile(ctx, &models.UserProfile{UserID: plumber.ID, Skills: models.StringList{"plumbing"}}))
	require.NoError(t, f.store.CreateProfile(ctx, &models.UserProfile{UserID: sparky.ID, Skills: models.StringList{"wiring"}}))
	require.NoError(t, f.store.CreateProfile(ctx, &models.UserProfile{UserID: tenant.ID, Skills: models.StringList{"plumbing"}}))

	out, err := f.svc.ContractorsProfile(ctx, []string{"plumbing", "roofing"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, plumber.ID, out[0].ID)
	assert.Equal(t, plumber.ID, out[0].UserProfile.UserID)

	_, err = f.svc.ContractorsProfile(ctx, []string{"gardening"})
	require.Error(t, err)
	assert.Equal(t, "Contractors Profile not found", err.Error())
}

func TestTenantsForcesUserType(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	manager := createUser(t, f.store, models.User{Email: "m@test.com", CompanyID: "co-1", UserType: models.UserTypePropertyManager})
	createUser(t, f.store, models.User{Email: "t1@test.com", CompanyID: "co-1", UserType: models.UserTypeTenant})
	createUser(t, f.store, models.User{Email: "c1@test.com", CompanyID: "co-1"})

	page, err := f.svc.Tenants(ctx, manager.ID, models.UserFilter{UserType: models.UserTypeContractor})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.TotalDocs)

	page, err = f.svc.CompanyUsers(ctx, manager.ID, models.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.TotalDocs)

	loner := createUser(t, f.store, models.User{Email: "l@test.com"})
	_, err = f.svc.CompanyUsers(ctx, loner.ID, models.UserFilter{})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestAssistantMe(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	owner := createUser(t, f.store, models.User{Email: "owner@test.com"})
	require.NoError(t, f.store.CreateProfile(ctx, &models.UserProfile{
		UserID:           owner.ID,
		AssistantPhoneNo: "+447000000001",
		AssistantEmail:   "bot@assist.test",
	}))

	byPhone, err := f.svc.AssistantMe(ctx, "447000000001")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, byPhone.ID)

	byEmail, err := f.svc.AssistantMe(ctx, "BOT@assist.test")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, byEmail.ID)

	_, err = f.svc.AssistantMe(ctx, "+440000000000")
	assert.True(t, utils.IsNotFound(err))
}

func TestEditUsersProfile(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	company := &models.Company{Name: "Old Ltd"}
	require.NoError(t, f.store.CreateCompany(ctx, company))
	u := createUser(t, f.store, models.User{Email: "e@test.com", CompanyID: company.ID})

	in := models.EditProfileInput{
		FirstName:   models.Some("Grace"),
		CompanyName: models.Some("New Ltd"),
		Address:     &models.Address{MainStreet: "1 High St", City: "London"},
	}
	in.Bio = models.Some("Twenty years of pipes")

	view, err := f.svc.EditUsersProfile(ctx, u.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Grace", view.FirstName)
	require.NotNil(t, view.UserProfile)
	assert.Equal(t, "Twenty years of pipes", view.UserProfile.Bio)
	assert.Equal(t, "1 High St", view.UserProfile.FormattedAddress)
	require.NotNil(t, view.AddressInfo)
	assert.Equal(t, u.ID, view.AddressInfo.RefID)
	assert.Equal(t, view.AddressInfo.ID, view.AddressID)
	require.NotNil(t, view.CompanyInfo)
	assert.Equal(t, "New Ltd", view.CompanyInfo.Name)
}

func TestEditUsersProfileRollsBack(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	u := createUser(t, f.store, models.User{Email: "nc@test.com", FirstName: "Before"})

	_, err := f.svc.EditUsersProfile(ctx, u.ID, models.EditProfileInput{
		FirstName:   models.Some("After"),
		CompanyName: models.Some("Nowhere Ltd"),
	})
	require.Error(t, err)
	assert.Equal(t, "Company not found", err.Error())

	reloaded, err := f.store.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Before", reloaded.FirstName)
	_, err = f.store.FindProfileByUserID(ctx, u.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestStripeUpdates(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	u := createUser(t, f.store, models.User{Email: "s@test.com"})

	require.NoError(t, f.svc.SetStripeConnectID(ctx, u.ID, "acct_1"))
	require.NoError(t, f.svc.SetStripeCustomerID(ctx, u.ID, "cus_1"))
	require.NoError(t, f.svc.MarkStripeConnectVerified(ctx, "acct_1"))

	reloaded, err := f.store.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "acct_1", reloaded.StripeConnectID)
	assert.Equal(t, "cus_1", reloaded.StripeCustomerID)
	assert.True(t, reloaded.StripeConnectVerif)

	assert.True(t, utils.IsNotFound(f.svc.MarkStripeConnectVerified(ctx, "acct_missing")))
}

func TestProvisionAssistantNumber(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	uk := createUser(t, f.store, models.User{Email: "uk@test.com", FirstName: "Ann", Phone: "447700900123"})
	abroad := createUser(t, f.store, models.User{Email: "us@test.com", Phone: "+15550100"})
	require.NoError(t, f.store.CreateProfile(ctx, &models.UserProfile{UserID: uk.ID}))

	require.NoError(t, f.svc.ProvisionAssistantNumber(ctx, uk.ID))
	profile, err := f.store.FindProfileByUserID(ctx, uk.ID)
	require.NoError(t, err)
	assert.Equal(t, "+447000000001", profile.AssistantPhoneNo)

	sms := f.phones.Messages()
	require.Len(t, sms, 1)
	assert.Equal(t, "+447700900123", sms[0].To)
	assert.Contains(t, sms[0].Body, "+447000000001")

	require.NoError(t, f.svc.ProvisionAssistantNumber(ctx, abroad.ID))
	created, err := f.store.FindProfileByUserID(ctx, abroad.ID)
	require.NoError(t, err)
	assert.Equal(t, "+447000000002", created.AssistantPhoneNo)
	assert.Len(t, f.phones.Messages(), 1)
	assert.Len(t, f.mailer.Sent(), 2)
}

func TestScrapeProfile(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	f.fetcher.Pages["https://plumber.test"] = `{"title": "Joe   Plumbing",
		"about": "Boilers and drains"}`
	f.llm.Reply = "```json\n{\"companyName\":\"Joe Plumbing\",\"skills\":[\"boilers\"],\"address\":{\"city\":\"Leeds\"}}\n```"

	profile, err := f.svc.ScrapeProfile(ctx, "https://plumber.test")
	require.NoError(t, err)
	assert.Equal(t, "Joe Plumbing", profile.CompanyName)
	assert.Equal(t, []string{"boilers"}, profile.Skills)
	assert.Equal(t, "Leeds", profile.Address.City)

	calls := f.llm.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].System, `{"title":"JoePlumbing","about":"Boilersanddrains"}`)

	_, err = f.svc.ScrapeProfile(ctx, "")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	f.llm.Reply = "not json"
	_, err = f.svc.ScrapeProfile(ctx, "https://plumber.test")
	assert.Equal(t, http.StatusInternalServerError, utils.StatusOf(err))
}

func TestCompactPageTruncates(t *testing.T) {
	page := strings.Repeat("ab c", 20000)
	out := compactPage([]byte(page))
	assert.Len(t, out, scrapeLimit)
	assert.NotContains(t, out, " ")
}

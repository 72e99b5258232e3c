package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/services"
)

// AuthController serves /auth: registration, credentials, user reads and
// the caller's profile.
type AuthController struct {
	accounts *services.AccountService
	profiles *services.ProfileService
}

func NewAuthController(accounts *services.AccountService, profiles *services.ProfileService) *AuthController {
	return &AuthController{accounts: accounts, profiles: profiles}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProviderLoginRequest is the body of POST /auth/login-provider.
type ProviderLoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FirebaseUID string `json:"firebaseUid" binding:"required"`
}

type setPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

type resetPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type newPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

func respondSession(c *gin.Context, status int, res *services.AuthResult) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    res.Data,
		"token":   res.Token,
	})
}

// SignUp handles POST /auth/signup.
func (a *AuthController) SignUp(c *gin.Context) {
	var req models.NewUser
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.accounts.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusCreated, res)
}

// CreateUser handles POST /auth/create-user. The caller becomes the creator
// and lends the new user their company.
func (a *AuthController) CreateUser(c *gin.Context) {
	invoker, ok := requireCaller(c)
	if !ok {
		return
	}
	var req models.NewUser
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.accounts.CreateUser(c.Request.Context(), invoker, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, res)
}

// InviteUser handles POST /auth/invite.
func (a *AuthController) InviteUser(c *gin.Context) {
	var req models.NewUser
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.accounts.InviteUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    res.NewUser,
		"token":   res.Token,
	})
}

// Login handles POST /auth/login.
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, res)
}

// LoginWithProvider handles POST /auth/login-provider.
func (a *AuthController) LoginWithProvider(c *gin.Context) {
	var req ProviderLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.accounts.LoginWithProvider(c.Request.Context(), req.Email, req.FirebaseUID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, res)
}

// SetPassword handles PUT /auth/set-password for invited users.
func (a *AuthController) SetPassword(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req setPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := a.accounts.SetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Successfully set password", nil)
}

// ResetPassword handles PUT /auth/reset-password.
func (a *AuthController) ResetPassword(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := a.accounts.ResetPassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Successfully reset password", nil)
}

// ForgotPassword handles POST /auth/forgot-password.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	message, err := a.accounts.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusAccepted, message, nil)
}

// CreateNewPassword handles POST /auth/create-new-password with a
// forgot-password token.
func (a *AuthController) CreateNewPassword(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req newPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := a.accounts.CreateNewPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password successfully changed", nil)
}

// UpdateUser handles PUT /auth/edit and PUT /auth/user.
func (a *AuthController) UpdateUser(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var patch models.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	user, err := a.accounts.UpdateUser(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func userFilter(c *gin.Context) models.UserFilter {
	return models.UserFilter{
		Skip:           queryInt(c, "skip", 0),
		Limit:          queryInt(c, "limit", 0),
		Search:         c.Query("search"),
		SortBy:         c.Query("sortBy"),
		SortOrder:      c.Query("sortOrder"),
		UserType:       models.UserType(c.Query("userType")),
		IncludeDeleted: queryBool(c, "include_deleted"),
	}
}

// GetUsers handles GET /auth/users: one user by id, otherwise the caller's
// company page.
func (a *AuthController) GetUsers(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		user, err := a.accounts.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, user)
		return
	}
	a.CompanyUsers(c)
}

// CompanyUsers handles GET /auth/companies.
func (a *AuthController) CompanyUsers(c *gin.Context) {
	requester, ok := requireCaller(c)
	if !ok {
		return
	}
	page, err := a.accounts.CompanyUsers(c.Request.Context(), requester, userFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}

// Tenants handles GET /auth/tenants.
func (a *AuthController) Tenants(c *gin.Context) {
	requester, ok := requireCaller(c)
	if !ok {
		return
	}
	page, err := a.accounts.Tenants(c.Request.Context(), requester, userFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}

// UsersBySpecialization handles GET /auth/all/specialization.
func (a *AuthController) UsersBySpecialization(c *gin.Context) {
	requester, ok := requireCaller(c)
	if !ok {
		return
	}
	users, err := a.accounts.UsersBySpecialization(c.Request.Context(), requester,
		c.Query("specialization"), models.UserType(c.Query("userType")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, users)
}

// Me handles GET /auth/me.
func (a *AuthController) Me(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	view, err := a.accounts.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// AssistantMe handles GET /auth/ai/me/:assistantPhoneNo.
func (a *AuthController) AssistantMe(c *gin.Context) {
	view, err := a.accounts.AssistantMe(c.Request.Context(), c.Param("assistantPhoneNo"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// ContractorsProfile handles GET /auth/contractor-profile?skills=.
func (a *AuthController) ContractorsProfile(c *gin.Context) {
	rows, err := a.accounts.ContractorsProfile(c.Request.Context(), queryList(c, "skills"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

// ScrapeProfile handles GET /auth/scrape-data?website_url=.
func (a *AuthController) ScrapeProfile(c *gin.Context) {
	profile, err := a.accounts.ScrapeProfile(c.Request.Context(), c.Query("website_url"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// CreateProfile handles POST /auth/users-profile.
func (a *AuthController) CreateProfile(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req models.UserProfile
	if !bindJSON(c, &req) {
		return
	}
	p, err := a.profiles.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}

// EditProfile handles PUT /auth/users-profile: user names, profile fields,
// a new address and the company name in one transaction.
func (a *AuthController) EditProfile(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req models.EditProfileInput
	if !bindJSON(c, &req) {
		return
	}
	view, err := a.accounts.EditUsersProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// GetProfile handles GET /auth/users-profile?id=&user_id=.
func (a *AuthController) GetProfile(c *gin.Context) {
	p, err := a.profiles.Get(c.Request.Context(), callerID(c), c.Query("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// DeleteProfile handles DELETE /auth/users-profile.
func (a *AuthController) DeleteProfile(c *gin.Context) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := a.profiles.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User profile deleted", nil)
}

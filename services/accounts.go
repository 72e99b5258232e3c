package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kendall-kelly/lightwork-auth-api/events"
	"github.com/kendall-kelly/lightwork-auth-api/metrics"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

const (
	invitedPasswordLength = 6
	assistantCountry      = "GB"
)

// AccountDeps wires an AccountService.
type AccountDeps struct {
	Store       *repository.Store
	Views       *ViewBuilder
	Tokens      *TokenIssuer
	Mailer      EmailSender
	Phones      Telephony
	LLM         LLM
	Fetcher     Fetcher
	Publisher   events.Publisher
	FrontendURL string
	Logger      *zap.Logger
}

// AccountService owns the user lifecycle: registration, credentials,
// profile edits and the account side of the consumed events.
type AccountService struct {
	AccountDeps
}

func NewAccountService(d AccountDeps) *AccountService {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{Logger: d.Logger}
	}
	return &AccountService{AccountDeps: d}
}

// AuthResult is returned by sign-up and login.
type AuthResult struct {
	Data  models.User `json:"data"`
	Token string      `json:"token"`
}

// InviteResult is returned by inviteUser.
type InviteResult struct {
	NewUser models.User `json:"newUser"`
	Token   string      `json:"token"`
}

// CreateUserResult carries the sign-up link for an admin-created user.
type CreateUserResult struct {
	SignupLink string `json:"signup_link"`
	StatusCode int    `json:"status_code"`
}

func (s *AccountService) logActivity(_ context.Context, action, userID string, fields ...zap.Field) {
	s.Logger.Info("activity", append([]zap.Field{zap.String("action", action), zap.String("user_id", userID)}, fields...)...)
}

func (s *AccountService) link(path, token string) string {
	return fmt.Sprintf("%s/%s/?token=%s", strings.TrimRight(s.FrontendURL, "/"), path, token)
}

// SignUp registers an active user and opens a session.
func (s *AccountService) SignUp(ctx context.Context, in models.NewUser) (*AuthResult, error) {
	s.logActivity(ctx, "signUp", "", zap.String("user_email", in.Email), zap.String("user_type", string(in.UserType)))

	exists, err := s.Store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, utils.Wrap(err, "SignUp failed")
	}
	if exists {
		return nil, utils.Forbidden("This email already exist")
	}

	user := in.User()
	user.Status = models.UserStatusActive
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, utils.Wrap(err, "SignUp failed")
		}
		user.Password = &hash
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return nil, utils.Wrap(err, "SignUp failed")
	}
	return s.session(user, "SignUp failed")
}

func (s *AccountService) session(user *models.User, prefix string) (*AuthResult, error) {
	token, err := s.Tokens.IssueForUser(user)
	if err != nil {
		return nil, utils.Wrap(err, prefix)
	}
	return &AuthResult{Data: user.Sanitized(), Token: token}, nil
}

// CreateUser registers an invited user in the invoker's company and returns
// the link that completes sign-up.
func (s *AccountService) CreateUser(ctx context.Context, invokerID string, in models.NewUser) (*CreateUserResult, error) {
	s.logActivity(ctx, "createUser", invokerID, zap.String("user_email", in.Email))

	invoker, err := s.Store.FindUser(ctx, invokerID)
	if err != nil {
		return nil, utils.Wrap(err, "Create user failed")
	}
	exists, err := s.Store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, utils.Wrap(err, "Create user failed")
	}
	if exists {
		return nil, utils.Conflict("User already exists.")
	}

	plain, err := RandomPassword(invitedPasswordLength)
	if err != nil {
		return nil, utils.Wrap(err, "Create user failed")
	}
	hash, err := HashPassword(plain)
	if err != nil {
		return nil, utils.Wrap(err, "Create user failed")
	}

	user := in.User()
	user.Status = models.UserStatusInvited
	user.CompanyID = invoker.CompanyID
	user.CreatedBy = invoker.ID
	user.Password = &hash
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return nil, utils.Wrap(err, "Create user failed")
	}

	token, err := s.Tokens.Issue(user.ID, CodeCreateUser, "", "")
	if err != nil {
		return nil, utils.Wrap(err, "Create user failed")
	}
	return &CreateUserResult{SignupLink: s.link("signup", token), StatusCode: 201}, nil
}

// InviteUser registers an invited user and emails a set-password link.
// Contractor-company managed users also get a profile and an assistant
// number, provisioned asynchronously.
func (s *AccountService) InviteUser(ctx context.Context, in models.NewUser) (*InviteResult, error) {
	s.logActivity(ctx, "inviteUser", "", zap.String("user_email", in.Email))

	exists, err := s.Store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, utils.Wrap(err, "Invitation failed")
	}
	if exists {
		return nil, utils.Conflict("User already exists.")
	}

	user := in.User()
	user.Phone = utils.NormalizePhone(user.Phone)
	user.Status = models.UserStatusInvited
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return nil, utils.Wrap(err, "Invitation failed")
	}

	token, err := s.Tokens.Issue(user.ID, SubjectCode(user.UserType), user.Email, "Invite")
	if err != nil {
		return nil, utils.Wrap(err, "Invitation failed")
	}
	if err := s.Mailer.Send(ctx, InviteEmail(user.Email, s.link("set-password", token))); err != nil {
		return nil, utils.Wrap(err, "Invitation failed")
	}

	if in.IsContractorCompanyManaged {
		profile := &models.UserProfile{
			UserID:    user.ID,
			AddressID: user.AddressID,
			CompanyID: user.CompanyID,
		}
		if err := s.Store.CreateProfile(ctx, profile); err != nil {
			return nil, utils.Wrap(err, "Invitation failed")
		}
		if err := s.Publisher.Publish(ctx, events.TopicProvisionPhoneNumber, events.ProvisionPhoneNumber{UserID: user.ID}); err != nil {
			return nil, utils.Wrap(err, "Invitation failed")
		}
	}
	return &InviteResult{NewUser: user.Sanitized(), Token: token}, nil
}

var (
	errInvalidCredentials = utils.Forbidden("Invalid user credentials")
	errNotActivated       = utils.Forbidden("You need to use the signup link sent to your email to activate your account")
)

// Login checks an email and password and opens a session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	s.logActivity(ctx, "login", "", zap.String("user_email", email))

	user, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil && !utils.IsNotFound(err) {
		return nil, utils.Wrap(err, "Login failed")
	}
	if user == nil || user.DeletedAt != nil || !CheckPassword(user.Password, password) {
		metrics.RecordLogin("password", false)
		return nil, errInvalidCredentials
	}
	if !user.Status.CanLogin() {
		metrics.RecordLogin("password", false)
		return nil, errNotActivated
	}
	metrics.RecordLogin("password", true)
	return s.session(user, "Login failed")
}

// LoginWithProvider opens a session for a user whose federated identity
// matches the stored one.
func (s *AccountService) LoginWithProvider(ctx context.Context, email, firebaseUID string) (*AuthResult, error) {
	s.logActivity(ctx, "loginWithProvider", "", zap.String("user_email", email))

	user, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil && !utils.IsNotFound(err) {
		return nil, utils.Wrap(err, "Login failed")
	}
	if user == nil || user.DeletedAt != nil || user.FirebaseUID == "" || user.FirebaseUID != firebaseUID {
		metrics.RecordLogin("provider", false)
		return nil, errInvalidCredentials
	}
	metrics.RecordLogin("provider", true)
	return s.session(user, "Login failed")
}

// SetPassword stores the first password of an invited user and activates
// the account.
func (s *AccountService) SetPassword(ctx context.Context, userID, newPassword string) error {
	s.logActivity(ctx, "setPassword", userID)

	if _, err := s.Store.FindUser(ctx, userID); err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound("Oops! User not found!")
		}
		return utils.Wrap(err, "Set password failed")
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return utils.Wrap(err, "Set password failed")
	}
	return utils.Wrap(s.Store.SetUserPassword(ctx, userID, hash, models.UserStatusActive), "Set password failed")
}

// ResetPassword replaces the password after checking the old one.
func (s *AccountService) ResetPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	s.logActivity(ctx, "resetPassword", userID)

	user, err := s.Store.FindUser(ctx, userID)
	if err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound("Oops! User not found!")
		}
		return utils.Wrap(err, "Reset password failed")
	}
	if !CheckPassword(user.Password, oldPassword) {
		return utils.Forbidden("Oops! The entered password is wrong")
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return utils.Wrap(err, "Reset password failed")
	}
	return utils.Wrap(s.Store.SetUserPassword(ctx, userID, hash, ""), "Reset password failed")
}

// ForgotPassword emails an active user a create-new-password link and
// returns the confirmation message.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) (string, error) {
	s.logActivity(ctx, "forgotPassword", "", zap.String("user_email", email))

	user, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil && !utils.IsNotFound(err) {
		return "", utils.Wrap(err, "Forgot password process failed")
	}
	if user == nil || user.Status != models.UserStatusActive {
		return "", utils.NotFound("Oops! We could not find a user registered or active with that email")
	}

	token, err := s.Tokens.Issue(user.ID, CodeForgotPassword, "", "")
	if err != nil {
		return "", utils.Wrap(err, "Forgot password process failed")
	}
	if err := s.Mailer.Send(ctx, ResetPasswordEmail(user.Email, s.link("create-new-password", token))); err != nil {
		return "", utils.Wrap(err, "Forgot password process failed")
	}
	return fmt.Sprintf("A password reset link was sent to %s", user.Email), nil
}

// CreateNewPassword stores a new password for the forgot-password flow.
func (s *AccountService) CreateNewPassword(ctx context.Context, userID, newPassword string) error {
	s.logActivity(ctx, "createNewPassword", userID)

	hash, err := HashPassword(newPassword)
	if err != nil {
		return utils.Wrap(err, "Create new password failed")
	}
	return utils.Wrap(s.Store.SetUserPassword(ctx, userID, hash, ""), "Create new password failed")
}

// UpdateUser applies patch to one user.
func (s *AccountService) UpdateUser(ctx context.Context, userID string, patch models.UserPatch) (*models.User, error) {
	s.logActivity(ctx, "updateUser", userID)

	if userID == "" {
		return nil, utils.BadRequest("User Id required to update record")
	}
	user, err := s.Store.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, utils.Wrap(err, "Update User failed")
	}
	clean := user.Sanitized()
	return &clean, nil
}

// GetUser returns one user without the password hash.
func (s *AccountService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Store.FindUser(ctx, id)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get users")
	}
	clean := user.Sanitized()
	return &clean, nil
}

func (s *AccountService) requesterCompany(ctx context.Context, requesterID string) (string, error) {
	requester, err := s.Store.FindUser(ctx, requesterID)
	if err != nil {
		return "", err
	}
	if requester.CompanyID == "" {
		return "", utils.BadRequest("companyId is required")
	}
	return requester.CompanyID, nil
}

// CompanyUsers returns the page of users in the requester's company.
func (s *AccountService) CompanyUsers(ctx context.Context, requesterID string, f models.UserFilter) (*models.CompanyUsersPage, error) {
	companyID, err := s.requesterCompany(ctx, requesterID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get users")
	}
	return s.Views.CompanyUsersPage(ctx, companyID, requesterID, f)
}

// Tenants is CompanyUsers restricted to tenants.
func (s *AccountService) Tenants(ctx context.Context, requesterID string, f models.UserFilter) (*models.CompanyUsersPage, error) {
	f.UserType = models.UserTypeTenant
	return s.CompanyUsers(ctx, requesterID, f)
}

// UsersBySpecialization lists users of the requester's company holding a
// specialization tag.
func (s *AccountService) UsersBySpecialization(ctx context.Context, requesterID, specialization string, userType models.UserType) ([]models.User, error) {
	if specialization == "" {
		return nil, utils.BadRequest("specialization is required")
	}
	companyID, err := s.requesterCompany(ctx, requesterID)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get users")
	}
	users, err := s.Store.UsersWithSpecialization(ctx, specialization, companyID, userType)
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get users")
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// ContractorProfile is a contractor with the profile that matched.
type ContractorProfile struct {
	models.User
	UserProfile models.UserProfile `json:"userProfile"`
}

// ContractorsProfile returns contractors whose profile lists any of skills.
func (s *AccountService) ContractorsProfile(ctx context.Context, skills []string) ([]ContractorProfile, error) {
	s.logActivity(ctx, "getContractorsProfile", "", zap.Strings("skills", skills))

	contractors, err := s.Store.ListUsers(ctx, "", models.UserTypeContractor)
	if err != nil {
		return nil, utils.Wrap(err, "Get Contractors profile failed")
	}
	ids := make([]string, 0, len(contractors))
	for _, u := range contractors {
		ids = append(ids, u.ID)
	}
	profiles, err := s.Store.ProfilesForUsers(ctx, ids)
	if err != nil {
		return nil, utils.Wrap(err, "Get Contractors profile failed")
	}

	out := []ContractorProfile{}
	for _, u := range contractors {
		p, ok := profiles[u.ID]
		if !ok || !p.Skills.Intersects(skills) {
			continue
		}
		out = append(out, ContractorProfile{User: u.Sanitized(), UserProfile: p})
	}
	if len(out) == 0 {
		return nil, utils.NotFound("Contractors Profile not found")
	}
	return out, nil
}

// Me returns the caller's composite view.
func (s *AccountService) Me(ctx context.Context, userID string) (*models.CurrentUserView, error) {
	return s.Views.CurrentUser(ctx, userID)
}

// AssistantMe resolves an assistant phone number or email to the owning
// user's composite view.
func (s *AccountService) AssistantMe(ctx context.Context, phoneOrEmail string) (*models.CurrentUserView, error) {
	s.Logger.Info("Request on behalf of assistant owner", zap.String("assistant", phoneOrEmail))

	var (
		profile *models.UserProfile
		err     error
	)
	if utils.IsEmail(phoneOrEmail) {
		profile, err = s.Store.FindProfileByAssistantEmail(ctx, phoneOrEmail)
	} else {
		profile, err = s.Store.FindProfileByAssistantPhone(ctx, utils.NormalizePhone(phoneOrEmail))
	}
	if err != nil {
		return nil, utils.Wrap(err, "Failed to get user me data")
	}
	return s.Views.CurrentUser(ctx, profile.UserID)
}

// EditUsersProfile updates names and image on the user, the profile fields,
// an optional new address and the company name in one transaction.
func (s *AccountService) EditUsersProfile(ctx context.Context, userID string, in models.EditProfileInput) (*models.CurrentUserView, error) {
	s.logActivity(ctx, "editUsersProfile", userID)

	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.FindUser(ctx, userID)
		if err != nil {
			return err
		}
		userPatch := in.UserPatch()

		profilePatch := in.ProfilePatch
		if in.Address != nil {
			addr := *in.Address
			addr.ID = ""
			addr.RefID = userID
			if err := tx.CreateAddress(ctx, &addr); err != nil {
				return err
			}
			profilePatch.AddressID = models.Some(addr.ID)
			profilePatch.FormattedAddress = models.Some(addr.MainStreet)
			userPatch.AddressID = models.Some(addr.ID)
		}
		_, err = tx.UpdateProfileByUserID(ctx, userID, profilePatch)
		if utils.IsNotFound(err) {
			profile := &models.UserProfile{UserID: userID, CompanyID: user.CompanyID}
			profilePatch.Apply(profile)
			err = tx.CreateProfile(ctx, profile)
		}
		if err != nil {
			return err
		}
		if _, err := tx.UpdateUser(ctx, userID, userPatch); err != nil {
			return err
		}

		if in.CompanyName.Set && in.CompanyName.Value != "" {
			if user.CompanyID == "" {
				return utils.NotFound("Company not found")
			}
			if _, err := tx.UpdateCompany(ctx, user.CompanyID, models.CompanyPatch{Name: in.CompanyName}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, utils.Wrap(err, "Edit users profile failed")
	}
	return s.Views.CurrentUser(ctx, userID)
}

// SetStripeConnectID stores the connected account id of a user.
func (s *AccountService) SetStripeConnectID(ctx context.Context, userID, connectID string) error {
	_, err := s.Store.UpdateUser(ctx, userID, models.UserPatch{StripeConnectID: models.Some(connectID)})
	return utils.Wrap(err, "Update stripe payment id failed")
}

// SetStripeCustomerID stores the customer id of a user.
func (s *AccountService) SetStripeCustomerID(ctx context.Context, userID, customerID string) error {
	_, err := s.Store.UpdateUser(ctx, userID, models.UserPatch{StripeCustomerID: models.Some(customerID)})
	return utils.Wrap(err, "Update stripe customer id failed")
}

// MarkStripeConnectVerified flags the user owning connectID as verified.
func (s *AccountService) MarkStripeConnectVerified(ctx context.Context, connectID string) error {
	user, err := s.Store.FindUserByStripeConnectID(ctx, connectID)
	if err != nil {
		return utils.Wrap(err, "Update stripe connect verification failed")
	}
	_, err = s.Store.UpdateUser(ctx, user.ID, models.UserPatch{StripeConnectVerif: models.Some(true)})
	return utils.Wrap(err, "Update stripe connect verification failed")
}

// ProvisionAssistantNumber buys a number for the user's assistant, stores
// it on the profile and tells the user by email, and by SMS when their
// phone is a UK number.
func (s *AccountService) ProvisionAssistantNumber(ctx context.Context, userID string) error {
	user, err := s.Store.FindUser(ctx, userID)
	if err != nil {
		return utils.Wrap(err, "Provision assistant number failed")
	}
	number, err := s.Phones.BuyNumber(ctx, assistantCountry)
	if err != nil {
		return utils.Wrap(err, "Provision assistant number failed")
	}

	_, err = s.Store.UpdateProfileByUserID(ctx, userID, models.ProfilePatch{AssistantPhoneNo: models.Some(number)})
	if utils.IsNotFound(err) {
		err = s.Store.CreateProfile(ctx, &models.UserProfile{UserID: userID, AssistantPhoneNo: number})
	}
	if err != nil {
		return utils.Wrap(err, "Provision assistant number failed")
	}
	s.Logger.Info("Provisioned assistant number", zap.String("user_id", userID), zap.String("phone_number", number))

	welcome := WelcomeEmail(user.Email, user.FirstName, number)
	if err := s.Mailer.Send(ctx, welcome); err != nil {
		return utils.Wrap(err, "Provision assistant number failed")
	}
	phone := utils.NormalizePhone(user.Phone)
	if utils.IsUKNumber(phone) {
		if err := s.Phones.SendSMS(ctx, phone, welcome.Text); err != nil {
			return utils.Wrap(err, "Provision assistant number failed")
		}
	}
	return nil
}

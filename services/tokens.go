package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kendall-kelly/lightwork-auth-api/config"
	"github.com/kendall-kelly/lightwork-auth-api/metrics"
	"github.com/kendall-kelly/lightwork-auth-api/models"
)

// Token category codes carried in the sub claim. The code picks the signing key.
const (
	CodeHomeowner        = 1
	CodeContractor       = 2
	CodePropertyManager  = 3
	CodeSoleTrader       = 4
	CodeSuppliers        = 5
	CodeStaffTechnicians = 6
	CodeTenant           = 7
	CodeAdmin            = 8
	CodeAIAssistant      = 9
	CodeCreateUser       = 500
	CodeForgotPassword   = 10000
)

var codeKeys = map[int]string{
	CodeHomeowner:        config.KeyHomeowner,
	CodeContractor:       config.KeyContractor,
	CodePropertyManager:  config.KeyPropertyManager,
	CodeSoleTrader:       config.KeySoleTrader,
	CodeSuppliers:        config.KeySuppliers,
	CodeStaffTechnicians: config.KeyStaffTechnicians,
	CodeTenant:           config.KeyTenant,
	CodeAdmin:            config.KeyAdmin,
	CodeAIAssistant:      config.KeyAIAssistant,
	CodeCreateUser:       config.KeyCreateUser,
	CodeForgotPassword:   config.KeyForgotPassword,
}

var userTypeCodes = map[models.UserType]int{
	models.UserTypeHomeowner:        CodeHomeowner,
	models.UserTypeContractor:       CodeContractor,
	models.UserTypePropertyManager:  CodePropertyManager,
	models.UserTypeSoleTrader:       CodeSoleTrader,
	models.UserTypeSuppliers:        CodeSuppliers,
	models.UserTypeStaffTechnicians: CodeStaffTechnicians,
	models.UserTypeTenant:           CodeTenant,
	models.UserTypeAdmin:            CodeAdmin,
	models.UserTypeAIAssistant:      CodeAIAssistant,
}

// SubjectCode returns the category code for a user type. Unknown types get
// the homeowner code.
func SubjectCode(t models.UserType) int {
	if code, ok := userTypeCodes[t]; ok {
		return code
	}
	return CodeHomeowner
}

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnknownCategory = errors.New("unknown token category")
)

// SessionClaims are the claims of every session, invite and reset token.
// Name carries the user id and Subject the category code.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Code returns the category code from the subject.
func (c *SessionClaims) Code() (int, error) {
	code, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, ErrUnknownCategory
	}
	if _, ok := codeKeys[code]; !ok {
		return 0, ErrUnknownCategory
	}
	return code, nil
}

// TokenIssuer signs and verifies HS256 tokens with one secret per category.
type TokenIssuer struct {
	keys config.SigningKeys
	ttl  time.Duration
	now  func() time.Time
}

// NewTokenIssuer builds an issuer over the key ring.
func NewTokenIssuer(keys config.SigningKeys, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{keys: keys, ttl: ttl, now: time.Now}
}

// Issue signs a token for userID in the given category.
func (t *TokenIssuer) Issue(userID string, code int, email, typ string) (string, error) {
	keyName, ok := codeKeys[code]
	if !ok {
		return "", ErrUnknownCategory
	}
	now := t.now()
	claims := SessionClaims{
		Name:  userID,
		Email: email,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(code),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.keys.Secret(keyName))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	metrics.RecordTokenIssued(keyName)
	return signed, nil
}

// IssueForUser signs a session token keyed by the user's type.
func (t *TokenIssuer) IssueForUser(u *models.User) (string, error) {
	return t.Issue(u.ID, SubjectCode(u.UserType), "", "")
}

// Verify checks the signature with the key the token's own category
// selects, then the expiry.
func (t *TokenIssuer) Verify(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		c, ok := tok.Claims.(*SessionClaims)
		if !ok {
			return nil, ErrInvalidToken
		}
		code, err := c.Code()
		if err != nil {
			return nil, err
		}
		return t.keys.Secret(codeKeys[code]), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Name == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

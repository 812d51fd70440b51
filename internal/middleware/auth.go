package middleware

import (
	"net/http"
	"strings"

	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/response"
	"anoa.com/sccams/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	AdminTokenHeader = "atoken"

	principalKey = "principal"
)

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	Subject string
	Role    string
}

// Strategy authenticates a request under one token scheme.
type Strategy interface {
	Authenticate(c *gin.Context) (Principal, error)
}

// AdminStrategy reads a raw token from the atoken header. The token must
// verify and its email claim must equal the configured admin identity.
type AdminStrategy struct {
	tokens     *token.Manager
	adminEmail string
}

func NewAdminStrategy(tokens *token.Manager, adminEmail string) *AdminStrategy {
	return &AdminStrategy{tokens: tokens, adminEmail: adminEmail}
}

func (s *AdminStrategy) Authenticate(c *gin.Context) (Principal, error) {
	raw := strings.TrimSpace(c.GetHeader(AdminTokenHeader))
	if raw == "" {
		return Principal{}, apperror.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyAdmin(raw)
	if err != nil {
		return Principal{}, apperror.ErrUnauthorized
	}
	if s.adminEmail == "" || claims.Email != s.adminEmail {
		return Principal{}, apperror.ErrUnauthorized
	}

	return Principal{Subject: claims.Email, Role: token.AudienceAdmin}, nil
}

// TeacherStrategy reads "Authorization: Bearer <token>".
type TeacherStrategy struct {
	tokens *token.Manager
}

func NewTeacherStrategy(tokens *token.Manager) *TeacherStrategy {
	return &TeacherStrategy{tokens: tokens}
}

func (s *TeacherStrategy) Authenticate(c *gin.Context) (Principal, error) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Principal{}, apperror.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyTeacher(parts[1])
	if err != nil {
		return Principal{}, apperror.ErrUnauthorized
	}

	return Principal{Subject: claims.ID, Role: claims.Role}, nil
}

// Require runs strategy before the handler. On failure the chain is aborted
// with message, reported under conv.
func Require(strategy Strategy, conv response.Convention, message string) gin.HandlerFunc {
	rejection := apperror.New(http.StatusUnauthorized, message, apperror.ErrUnauthorized)

	return func(c *gin.Context) {
		principal, err := strategy.Authenticate(c)
		if err != nil {
			response.Abort(c, conv, rejection)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAdmin is the admin panel gate: legacy 200 body on rejection.
func RequireAdmin(tokens *token.Manager, adminEmail string) gin.HandlerFunc {
	return Require(NewAdminStrategy(tokens, adminEmail), response.Legacy, "Not Authorized Login Again")
}

// RequireTeacher is the teacher gate: 401 on rejection.
func RequireTeacher(tokens *token.Manager) gin.HandlerFunc {
	return Require(NewTeacherStrategy(tokens), response.Strict, "Not Authorized, Login Again")
}

// PrincipalFrom returns the caller set by Require.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AudienceAdmin   = "admin"
	AudienceTeacher = "teacher"

	RoleTeacher = "teacher"
)

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims binds the administrator identifier to a token.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TeacherClaims binds a teacher record id to a token.
type TeacherClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies both token schemes with a shared HMAC secret.
// Each scheme carries its own audience, so a token minted for one is refused
// by the other.
type Manager struct {
	secret     []byte
	adminTTL   time.Duration
	teacherTTL time.Duration
	now        func() time.Time
}

// NewManager builds a Manager. Non-positive TTLs fall back to one hour for
// admins and one day for teachers.
func NewManager(secret string, adminTTL, teacherTTL time.Duration) *Manager {
	if adminTTL <= 0 {
		adminTTL = time.Hour
	}
	if teacherTTL <= 0 {
		teacherTTL = 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		adminTTL:   adminTTL,
		teacherTTL: teacherTTL,
		now:        time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// IssueAdmin signs an admin token for email and returns it with its expiry,
// truncated to the whole second the token carries.
func (m *Manager) IssueAdmin(email string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.adminTTL)
	claims := AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Audience:  jwt.ClaimStrings{AudienceAdmin},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := m.sign(claims)
	return signed, claims.ExpiresAt.Time, err
}

// VerifyAdmin checks signature, expiry and audience of an admin token. The
// caller still has to compare the email claim with the configured admin.
func (m *Manager) VerifyAdmin(raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := m.parse(raw, claims, AudienceAdmin); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueTeacher signs a teacher token for the teacher record id.
func (m *Manager) IssueTeacher(teacherID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.teacherTTL)
	claims := TeacherClaims{
		ID:   teacherID,
		Role: RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   teacherID,
			Audience:  jwt.ClaimStrings{AudienceTeacher},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := m.sign(claims)
	return signed, claims.ExpiresAt.Time, err
}

// VerifyTeacher checks signature, expiry, audience and role of a teacher token.
func (m *Manager) VerifyTeacher(raw string) (*TeacherClaims, error) {
	claims := &TeacherClaims{}
	if err := m.parse(raw, claims, AudienceTeacher); err != nil {
		return nil, err
	}
	if claims.Role != RoleTeacher || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(raw string, claims jwt.Claims, audience string) error {
	if raw == "" {
		return ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

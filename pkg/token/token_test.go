package token

import (
	"errors"
	"testing"
	"time"
)

var issuedAt = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAdminTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, 0).WithClock(fixedClock(issuedAt))

	raw, expiresAt, err := m.IssueAdmin("admin@school.test")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if !expiresAt.Equal(issuedAt.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %s", expiresAt)
	}

	claims, err := m.VerifyAdmin(raw)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.Email != "admin@school.test" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
}

func TestAdminTokenExpiry(t *testing.T) {
	issuer := NewManager("secret", time.Hour, 0).WithClock(fixedClock(issuedAt))
	raw, expiresAt, err := issuer.IssueAdmin("admin@school.test")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	before := NewManager("secret", time.Hour, 0).WithClock(fixedClock(expiresAt.Add(-time.Second)))
	if _, err := before.VerifyAdmin(raw); err != nil {
		t.Fatalf("expected token valid before expiry, got %v", err)
	}

	at := NewManager("secret", time.Hour, 0).WithClock(fixedClock(expiresAt))
	if _, err := at.VerifyAdmin(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token invalid at expiry, got %v", err)
	}

	after := NewManager("secret", time.Hour, 0).WithClock(fixedClock(expiresAt.Add(time.Minute)))
	if _, err := after.VerifyAdmin(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token invalid after expiry, got %v", err)
	}
}

func TestTeacherTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", 0, 0).WithClock(fixedClock(issuedAt))

	raw, expiresAt, err := m.IssueTeacher("teacher-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if !expiresAt.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("expected default teacher ttl, got %s", expiresAt)
	}

	claims, err := m.VerifyTeacher(raw)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.ID != "teacher-1" || claims.Role != RoleTeacher {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSchemesAreNotInterchangeable(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Hour).WithClock(fixedClock(issuedAt))

	adminToken, _, err := m.IssueAdmin("admin@school.test")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	teacherToken, _, err := m.IssueTeacher("teacher-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := m.VerifyTeacher(adminToken); err == nil {
		t.Fatalf("expected admin token to be refused by teacher scheme")
	}
	if _, err := m.VerifyAdmin(teacherToken); err == nil {
		t.Fatalf("expected teacher token to be refused by admin scheme")
	}
}

func TestVerifyRejectsForeignSignatureAndGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Hour).WithClock(fixedClock(issuedAt))
	other := NewManager("other-secret", time.Hour, time.Hour).WithClock(fixedClock(issuedAt))

	raw, _, err := other.IssueAdmin("admin@school.test")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := m.VerifyAdmin(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected foreign signature to fail, got %v", err)
	}

	for _, garbage := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.VerifyAdmin(garbage); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected %q to fail, got %v", garbage, err)
		}
	}
}

func TestIssuedExpiryMatchesTokenClaim(t *testing.T) {
	at := issuedAt.Add(900 * time.Millisecond)
	m := NewManager("secret", time.Hour, 24*time.Hour).WithClock(fixedClock(at))

	_, adminExpiry, err := m.IssueAdmin("admin@school.test")
	if err != nil {
		t.Fatalf("issue admin: %v", err)
	}
	if !adminExpiry.Equal(issuedAt.Add(time.Hour)) {
		t.Fatalf("admin expiry %s outlives the token's exp", adminExpiry)
	}

	raw, teacherExpiry, err := m.IssueTeacher("teacher-1")
	if err != nil {
		t.Fatalf("issue teacher: %v", err)
	}
	if !teacherExpiry.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("teacher expiry %s outlives the token's exp", teacherExpiry)
	}
	claims, err := m.VerifyTeacher(raw)
	if err != nil {
		t.Fatalf("verify teacher: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(teacherExpiry) {
		t.Fatalf("claim exp %s != returned %s", claims.ExpiresAt.Time, teacherExpiry)
	}
}

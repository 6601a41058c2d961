package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

const testSecret = "test-secret-key-of-at-least-32-bytes!"

func newTestManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager([]byte(testSecret), ttl)
	if err != nil {
		t.Fatalf("NewTokenManager error: %v", err)
	}
	return m
}

func TestNewTokenManager_ShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager([]byte("too-short"), time.Hour)
	if err == nil {
		t.Fatalf("expected error for short secret, got nil")
	}
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)

	tok, err := m.Issue("alice", domain.RoleMember)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "alice")
	}
	if claims.Role != domain.RoleMember {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, domain.RoleMember)
	}
	if claims.ID == "" {
		t.Fatalf("expected non-empty token id")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)

	// выпуск в прошлом: exp = issuedAt + TTL уже позади
	tok, err := m.IssueAt("alice", domain.RoleMember, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("IssueAt error: %v", err)
	}

	_, err = m.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)
	other := newTestManager(t, time.Hour)
	other.secret = []byte("another-secret-key-of-32-bytes!!!")

	tok, err := m.Issue("bob", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = other.Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)

	tok, err := m.Issue("bob", domain.RoleMember)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)

	for _, tok := range []string{"", "   ", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := m.Verify(tok)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestSubject(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)

	tok, err := m.Issue("carol", domain.RoleMember)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := m.Subject(tok)
	if err != nil {
		t.Fatalf("Subject error: %v", err)
	}
	if subject != "carol" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "carol")
	}

	if _, err := m.Subject(""); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for empty token, got %v", err)
	}
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/common"
)

func TestIssuer_IssueVerify(t *testing.T) {
	t.Parallel()

	i := NewIssuer([]byte("k"), time.Hour)
	tok, err := i.Issue(teacher)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := i.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Email != teacher.Email {
		t.Fatalf("email mismatch: %q", claims.Email)
	}
}

func TestIssuer_Revoke(t *testing.T) {
	t.Parallel()

	i := NewIssuer([]byte("k"), time.Hour)
	tok, _ := i.Issue(teacher)
	other, _ := i.Issue(teacher)

	if err := i.Revoke(tok); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if err := i.Revoke(tok); err != nil {
		t.Fatalf("second Revoke error: %v", err)
	}

	if _, err := i.Verify(tok); !errors.Is(err, common.ErrTokenRevoked) {
		t.Fatalf("expected common.ErrTokenRevoked, got %v", err)
	}
	if _, err := i.Verify(other); err != nil {
		t.Fatalf("other token must stay valid: %v", err)
	}
}

func TestIssuer_RevokeInvalidToken(t *testing.T) {
	t.Parallel()

	i := NewIssuer([]byte("k"), time.Hour)
	if err := i.Revoke("garbage"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_RevokePrunesExpired(t *testing.T) {
	t.Parallel()

	i := NewIssuer([]byte("k"), time.Hour)
	i.revoked["stale"] = time.Now().Add(-time.Minute)

	tok, _ := i.Issue(teacher)
	if err := i.Revoke(tok); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if i.IsRevoked("stale") {
		t.Fatalf("expired revocation should have been pruned")
	}
}

package auth

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/common"
)

// Issuer signs tokens and keeps a list of revoked token IDs. Revocations live
// in memory only and are dropped once the token would have expired anyway.
type Issuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewIssuer(secretKey []byte, validity time.Duration) *Issuer {
	return &Issuer{
		secretKey: secretKey,
		validity:  validity,
		now:       time.Now,
		revoked:   make(map[string]time.Time),
	}
}

func (i *Issuer) Issue(s Subject) (string, error) {
	return GenerateToken(s, i.secretKey, i.validity)
}

// Verify parses tokenString and rejects revoked tokens.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims, err := ParseToken(tokenString, i.secretKey)
	if err != nil {
		return nil, err
	}
	if i.IsRevoked(claims.ID) {
		return nil, common.ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates tokenString. Revoking a token twice is not an error.
func (i *Issuer) Revoke(tokenString string) error {
	claims, err := ParseToken(tokenString, i.secretKey)
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	for id, exp := range i.revoked {
		if now.After(exp) {
			delete(i.revoked, id)
		}
	}
	i.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (i *Issuer) IsRevoked(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.revoked[id]
	return ok
}

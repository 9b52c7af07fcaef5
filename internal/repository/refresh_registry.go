package repository

import (
	"context"
	"sync"
)

// MemoryRefreshRegistry tracks the single live refresh token per user in a
// process-local map. A restart silently revokes every outstanding session;
// deployments spanning multiple processes should use the Redis-backed
// registry instead.
type MemoryRefreshRegistry struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMemoryRefreshRegistry() *MemoryRefreshRegistry {
	return &MemoryRefreshRegistry{tokens: map[string]string{}}
}

// Store records token as the current refresh token for userID, replacing any
// prior entry. The replaced token becomes unusable even if not yet expired.
func (r *MemoryRefreshRegistry) Store(_ context.Context, userID string, token string) error {
	r.mu.Lock()
	r.tokens[userID] = token
	r.mu.Unlock()
	return nil
}

// Validate reports whether token is exactly the current entry for userID.
// A token that still verifies cryptographically but was superseded by a newer
// login fails here.
func (r *MemoryRefreshRegistry) Validate(_ context.Context, userID string, token string) (bool, error) {
	r.mu.Lock()
	stored, ok := r.tokens[userID]
	r.mu.Unlock()
	return ok && stored == token, nil
}

// Revoke removes the entry for userID. Revoking an absent entry is a no-op.
func (r *MemoryRefreshRegistry) Revoke(_ context.Context, userID string) error {
	r.mu.Lock()
	delete(r.tokens, userID)
	r.mu.Unlock()
	return nil
}

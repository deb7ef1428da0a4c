package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/campushub/backend/internal/common"
	"github.com/campushub/backend/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository is a mutex-guarded Repository used in tests and local
// runs without postgres. It honours the same conditional-revoke semantics
// as the SQL implementation.
type InMemoryRepository struct {
	mu      sync.Mutex
	records []*models.RefreshToken
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *InMemoryRepository) FindActive(_ context.Context, userID, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.records {
		if rt.UserID == userID && rt.Token == token && !rt.Revoked {
			copied := *rt
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Revoke(_ context.Context, userID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.records {
		if rt.UserID == userID && rt.Token == token && !rt.Revoked {
			rt.Revoked = true
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) RevokeAll(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.records {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

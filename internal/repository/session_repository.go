package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-service/internal/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long an abandoned wizard session survives. Touched
// on every write, so active sessions never expire mid-flow.
const SessionTTL = 2 * time.Hour

// ErrSessionNotFound is returned for expired or unknown wizard sessions.
var ErrSessionNotFound = errors.New("wizard session not found")

// SessionRepository keeps active PurchaseForm state in Redis. The wizard has
// no persistence beyond the session; submit moves the result to Postgres and
// deletes the key.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("wizard:session:%s", sessionID)
}

// Save serializes the form and refreshes its TTL.
func (r *SessionRepository) Save(ctx context.Context, form *models.PurchaseForm) error {
	payload, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(form.SessionID), payload, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}

	return nil
}

// Get loads a wizard session by ID.
func (r *SessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*models.PurchaseForm, error) {
	payload, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}

	var form models.PurchaseForm
	if err := json.Unmarshal(payload, &form); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wizard session: %w", err)
	}

	return &form, nil
}

// NextUploadSeq atomically allocates the next upload sequence number for a
// document slot. Allocating through Redis INCR instead of the serialized form
// keeps concurrent uploads of the same slot from ever sharing a sequence.
func (r *SessionRepository) NextUploadSeq(ctx context.Context, sessionID uuid.UUID, key string) (int, error) {
	seqKey := fmt.Sprintf("wizard:session:%s:upload:%s", sessionID, key)

	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate upload sequence: %w", err)
	}
	r.client.Expire(ctx, seqKey, SessionTTL)

	return int(seq), nil
}

// Delete discards a wizard session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

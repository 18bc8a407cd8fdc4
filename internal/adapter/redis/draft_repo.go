package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/repository"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "draft:"

// draftRepository keeps one JSON record {currentDraft, step} per user. The
// layout is opaque to the rest of the system.
type draftRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewDraftRepository returns a Redis-backed DraftRepository. ttl of zero
// keeps drafts until they are explicitly cleared.
func NewDraftRepository(client *redis.Client, ttl time.Duration, log logger.Logger) repository.DraftRepository {
	return &draftRepository{client: client, ttl: ttl, log: log}
}

func draftKey(userID string) string {
	return draftKeyPrefix + userID
}

// Load reads the user's draft. Missing, unreadable or corrupt records all
// degrade to the empty default; a broken draft must never block the editor.
func (r *draftRepository) Load(ctx context.Context, userID string) *entity.Draft {
	val, err := r.client.Get(ctx, draftKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warnf("draftRepository.Load: read failed for user %s, falling back to empty draft: %v", userID, err)
		}
		return entity.NewDraft()
	}

	var draft entity.Draft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		r.log.Warnf("draftRepository.Load: corrupt draft for user %s, falling back to empty draft: %v", userID, err)
		return entity.NewDraft()
	}
	return &draft
}

// Save merges the patch into the stored partial listing (supplied fields
// overwrite, omitted fields survive) and persists it together with the step
// index. Last write wins per field.
func (r *draftRepository) Save(ctx context.Context, userID string, patch entity.ListingPatch, step int) error {
	draft := r.Load(ctx, userID)
	draft.Merge(patch, step)

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft for user %s: %w", userID, err)
	}
	if err := r.client.Set(ctx, draftKey(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft for user %s to redis: %w", userID, err)
	}
	return nil
}

func (r *draftRepository) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear draft for user %s from redis: %w", userID, err)
	}
	return nil
}

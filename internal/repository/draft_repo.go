package repository

import (
	"context"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
)

// DraftRepository is the durable holder of per-user editor drafts.
//
// Load never fails: a missing, corrupt or unreadable record degrades to the
// empty default so a broken draft can never block the editor. Save performs
// a shallow per-field merge of the patch into the stored partial listing
// (supplied fields overwrite, omitted fields are preserved) and records the
// step index alongside it.
type DraftRepository interface {
	Load(ctx context.Context, userID string) *entity.Draft
	Save(ctx context.Context, userID string, patch entity.ListingPatch, step int) error
	Clear(ctx context.Context, userID string) error
}

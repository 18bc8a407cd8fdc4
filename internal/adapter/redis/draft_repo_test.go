package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/repository"
)

func newTestRepo(t *testing.T) (repository.DraftRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewDraftRepository(client, 0, logger.NoOp{}), mr
}

func strPtr(s string) *string { return &s }

func TestDraftRepository_SaveAccumulatesFields(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	err := repo.Save(ctx, "u1", entity.ListingPatch{Name: strPtr("Bike")}, 0)
	require.NoError(t, err)
	err = repo.Save(ctx, "u1", entity.ListingPatch{Location: strPtr("Almaty")}, 1)
	require.NoError(t, err)

	draft := repo.Load(ctx, "u1")
	require.NotNil(t, draft.CurrentDraft)
	assert.Equal(t, "Bike", draft.CurrentDraft.Name)
	assert.Equal(t, "Almaty", draft.CurrentDraft.Location)
	assert.Equal(t, 1, draft.Step)
}

func TestDraftRepository_LastWriteWinsPerField(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "u1", entity.ListingPatch{Name: strPtr("Bike")}, 0))
	require.NoError(t, repo.Save(ctx, "u1", entity.ListingPatch{Name: strPtr("Road bike")}, 0))

	draft := repo.Load(ctx, "u1")
	require.NotNil(t, draft.CurrentDraft)
	assert.Equal(t, "Road bike", draft.CurrentDraft.Name)
}

func TestDraftRepository_LoadMissingReturnsDefault(t *testing.T) {
	repo, _ := newTestRepo(t)

	draft := repo.Load(context.Background(), "nobody")

	assert.Nil(t, draft.CurrentDraft)
	assert.Equal(t, 0, draft.Step)
}

func TestDraftRepository_LoadCorruptReturnsDefault(t *testing.T) {
	repo, mr := newTestRepo(t)

	require.NoError(t, mr.Set("draft:u1", "{not json"))

	draft := repo.Load(context.Background(), "u1")

	assert.Nil(t, draft.CurrentDraft)
	assert.Equal(t, 0, draft.Step)
}

func TestDraftRepository_LoadUnreachableReturnsDefault(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()

	draft := repo.Load(context.Background(), "u1")

	assert.Nil(t, draft.CurrentDraft)
}

func TestDraftRepository_Clear(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "u1", entity.ListingPatch{Name: strPtr("Bike")}, 1))
	require.NoError(t, repo.Clear(ctx, "u1"))

	draft := repo.Load(ctx, "u1")
	assert.Nil(t, draft.CurrentDraft)
	assert.Equal(t, 0, draft.Step)
}

func TestDraftRepository_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewDraftRepository(client, time.Minute, logger.NoOp{})
	require.NoError(t, repo.Save(context.Background(), "u1", entity.ListingPatch{Name: strPtr("Bike")}, 0))

	mr.FastForward(2 * time.Minute)

	draft := repo.Load(context.Background(), "u1")
	assert.Nil(t, draft.CurrentDraft)
}

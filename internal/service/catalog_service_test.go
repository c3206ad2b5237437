package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pulsecheck/internal/model"
)

func newCatalogFixture(items ...model.Item) (*CatalogService, *fakeItemRepo, *fakeCatalogCache) {
	repo := newFakeItemRepo(items...)
	cc := &fakeCatalogCache{}
	svc := NewCatalogService(repo, cc, zap.NewNop())
	svc.now = func() time.Time { return selectionNow }
	return svc, repo, cc
}

func TestCatalogService_Create(t *testing.T) {
	svc, repo, cc := newCatalogFixture()
	ctx := context.Background()

	item := testItem("n-1", "autonomy", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow)
	item.Version = 0
	created, err := svc.Create(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, selectionNow, created.CreatedAt)
	assert.Contains(t, repo.items, "n-1")
	assert.Equal(t, 1, cc.invalidated)

	_, err = svc.Create(ctx, item)
	assert.ErrorIs(t, err, ErrItemExists)
}

func TestCatalogService_CreateInvalid(t *testing.T) {
	svc, repo, _ := newCatalogFixture()

	item := testItem("bad", "autonomy", "probe", model.ToneDiagnostic, model.SensitivityLow)
	_, err := svc.Create(context.Background(), item)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, repo.items)
}

func TestCatalogService_Update(t *testing.T) {
	orig := testItem("u-1", "workload", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow)
	orig.CreatedAt = selectionNow.Add(-time.Hour)
	svc, repo, cc := newCatalogFixture(orig)
	ctx := context.Background()

	next := orig
	next.ItemID = "ignored"
	next.Tone = model.ToneReflective
	updated, err := svc.Update(ctx, "u-1", next)
	require.NoError(t, err)
	assert.Equal(t, "u-1", updated.ItemID)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt)
	assert.Equal(t, model.ToneReflective, repo.items["u-1"].Tone)
	assert.NotContains(t, repo.items, "ignored")
	assert.Equal(t, 1, cc.invalidated)

	_, err = svc.Update(ctx, "missing", next)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCatalogService_Delete(t *testing.T) {
	svc, repo, cc := newCatalogFixture(
		testItem("d-1", "workload", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow),
	)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "d-1"))
	assert.Empty(t, repo.items)
	assert.Equal(t, 1, cc.invalidated)

	assert.ErrorIs(t, svc.Delete(ctx, "d-1"), ErrItemNotFound)
}

func TestCatalogService_ListAndGet(t *testing.T) {
	svc, _, _ := newCatalogFixture(selectionBank()...)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	workload, err := svc.List(ctx, "workload")
	require.NoError(t, err)
	require.Len(t, workload, 2)
	assert.Equal(t, "w-challenge", workload[0].ItemID)

	got, err := svc.Get(ctx, "p-reflect")
	require.NoError(t, err)
	assert.Equal(t, model.IntentStabilize, got.Intent)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCatalogService_Import(t *testing.T) {
	svc, repo, cc := newCatalogFixture()
	ctx := context.Background()

	n, err := svc.Import(ctx, selectionBank())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Len(t, repo.items, 6)
	assert.Equal(t, selectionNow, repo.items["a-explore"].UpdatedAt)
	assert.Equal(t, 1, cc.invalidated)

	dup := append(selectionBank(), selectionBank()[0])
	_, err = svc.Import(ctx, dup)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 1, cc.invalidated)
}

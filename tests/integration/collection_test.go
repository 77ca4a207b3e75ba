package integration

import (
	"context"
	"testing"

	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/NoteLegend/CodeKeep/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionService_Integration_CreateAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCollectionService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	created, err := svc.Create(ctx, user.ID, "Go")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)

	_, err = svc.Create(ctx, user.ID, "SQL")
	require.NoError(t, err)

	collections, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, collections, 2)
}

func TestCollectionService_Integration_OwnershipInvisibility(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCollectionService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	other := fixtures.CreateUser(t)
	col := fixtures.CreateCollection(t, owner)

	// The other user cannot see, rename, or delete it; the record is
	// indistinguishable from one that does not exist.
	_, err := svc.Get(ctx, col.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrCollectionNotFound)

	_, err = svc.Update(ctx, col.ID, other.ID, "Stolen")
	assert.ErrorIs(t, err, services.ErrCollectionNotFound)

	err = svc.Delete(ctx, col.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrCollectionNotFound)

	// Still intact for the owner.
	got, err := svc.Get(ctx, col.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, col.Name, got.Name)

	listed, err := svc.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCollectionService_Integration_DuplicateNamePerUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCollectionService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	other := fixtures.CreateUser(t)

	_, err := svc.Create(ctx, user.ID, "Go")
	require.NoError(t, err)

	// Same name, same user: rejected.
	_, err = svc.Create(ctx, user.ID, "Go")
	assert.ErrorIs(t, err, services.ErrDuplicateCollection)

	// Same name, different user: fine.
	_, err = svc.Create(ctx, other.ID, "Go")
	assert.NoError(t, err)
}

func TestCollectionService_Integration_UpdateRename(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCollectionService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	col := fixtures.CreateCollection(t, user, testutil.WithCollectionName("Go"))
	fixtures.CreateCollection(t, user, testutil.WithCollectionName("SQL"))

	renamed, err := svc.Update(ctx, col.ID, user.ID, "Golang")
	require.NoError(t, err)
	assert.Equal(t, "Golang", renamed.Name)

	// Renaming onto an existing name hits the per-user unique index.
	_, err = svc.Update(ctx, col.ID, user.ID, "SQL")
	assert.ErrorIs(t, err, services.ErrDuplicateCollection)
}

func TestCollectionService_Integration_DeleteLeavesSnippets(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	collections := services.NewCollectionService(tdb.DB)
	snippets := services.NewSnippetService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	col := fixtures.CreateCollection(t, user)
	sn := fixtures.CreateSnippet(t, user, col)

	require.NoError(t, collections.Delete(ctx, col.ID, user.ID))

	// The snippet survives with a dangling reference that reads as a
	// null collection.
	got, err := snippets.Get(ctx, sn.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Collection)
	assert.Equal(t, col.ID, got.CollectionID)
}

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/user-gateway/pkg/logger"
)

func newListFixture() (*ListUsersUseCase, *fakeRepo, *fakeCache) {
	repo := newFakeRepo()
	cache := newFakeCache()
	uc := NewListUsersUseCase(repo, cache, logger.NewNop())
	return uc, repo, cache
}

func TestListUsersEmptyTableIsEmptySlice(t *testing.T) {
	uc, _, _ := newListFixture()

	out, err := uc.Execute(context.Background(), ListUsersInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Users)
	assert.NotNil(t, out.Users)
}

func TestListUsersProjectedQueryIsCached(t *testing.T) {
	uc, repo, cache := newListFixture()
	seedUser(repo, "a@x.com")

	out, err := uc.Execute(context.Background(), ListUsersInput{Fields: []string{"id", "name"}})
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, 1, repo.listCalls)

	_, ok := cache.GetList(context.Background(), "id,name")
	assert.True(t, ok)

	// second call is served from the cache
	_, err = uc.Execute(context.Background(), ListUsersInput{Fields: []string{"id", "name"}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListUsersUnprojectedQuerySkipsCache(t *testing.T) {
	uc, repo, cache := newListFixture()
	seedUser(repo, "a@x.com")

	// empty field set falls back to all columns, digest included
	_, err := uc.Execute(context.Background(), ListUsersInput{})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), ListUsersInput{})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
	assert.Empty(t, cache.entries)
}

func TestListUsersPropagatesStoreError(t *testing.T) {
	uc, repo, _ := newListFixture()
	repo.listErr = errors.New("connection refused")

	_, err := uc.Execute(context.Background(), ListUsersInput{Fields: []string{"id"}})
	require.Error(t, err)
}

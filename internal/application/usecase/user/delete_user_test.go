package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/user-gateway/adapters/event"
	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

func newDeleteFixture() (*DeleteUserUseCase, *fakeRepo, *event.Notifier, *fakeCache, *fakePublisher) {
	repo := newFakeRepo()
	notifier := event.NewNotifier(8)
	cache := newFakeCache()
	pub := newFakePublisher()
	uc := NewDeleteUserUseCase(repo, notifier, cache, pub, logger.NewNop())
	return uc, repo, notifier, cache, pub
}

func TestDeleteUserPublishesAfterPersist(t *testing.T) {
	uc, repo, notifier, cache, pub := newDeleteFixture()

	existing := seedUser(repo, "a@x.com")

	events, cancel := notifier.SubscribeDeleted()
	defer cancel()

	out, err := uc.Execute(context.Background(), DeleteUserInput{ID: existing})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("User %s deleted", existing), out.Message)

	// the row is gone before the event goes out
	assert.NotContains(t, repo.users, existing)

	select {
	case got := <-events:
		assert.Equal(t, existing, got)
	case <-time.After(time.Second):
		t.Fatal("expected a deleted event")
	}

	assert.Equal(t, 1, cache.invalidated)

	select {
	case payload := <-pub.published:
		assert.Equal(t, event.UserEventTypeDeleted, payload.EventType)
		assert.Equal(t, existing, payload.UserID)
	case <-time.After(time.Second):
		t.Fatal("expected a Kafka mirror event")
	}
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	uc, _, _, _, _ := newDeleteFixture()

	missing := uuid.New()
	out, err := uc.Execute(context.Background(), DeleteUserInput{ID: missing})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("User %s deleted", missing), out.Message)
}

func TestDeleteUserStoreFailurePublishesNothing(t *testing.T) {
	uc, repo, notifier, cache, _ := newDeleteFixture()
	repo.deleteErr = errors.New("connection refused")

	events, cancel := notifier.SubscribeDeleted()
	defer cancel()

	_, err := uc.Execute(context.Background(), DeleteUserInput{ID: uuid.New()})
	require.Error(t, err)

	select {
	case e := <-events:
		t.Fatalf("no event on store failure, got %v", e)
	default:
	}
	assert.Equal(t, 0, cache.invalidated)
}

// seedUser inserts a row directly, bypassing the usecases.
func seedUser(repo *fakeRepo, email string) uuid.UUID {
	id := uuid.New()
	repo.users[id] = &user.User{ID: id, Email: email}
	return id
}

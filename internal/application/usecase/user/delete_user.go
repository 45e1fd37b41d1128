package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/user-gateway/adapters/event"
	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

type DeleteUserUseCase struct {
	userRepo  user.Repository
	notifier  *event.Notifier
	cache     Cache
	publisher event.Publisher
	logger    logger.Logger
}

func NewDeleteUserUseCase(repo user.Repository, notifier *event.Notifier, cache Cache, pub event.Publisher, log logger.Logger) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:  repo,
		notifier:  notifier,
		cache:     cache,
		publisher: pub,
		logger:    log,
	}
}

type DeleteUserInput struct {
	ID uuid.UUID
}

type DeleteUserOutput struct {
	Message string
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {

	// persist first, then notify; subscribers never hear about a delete
	// that did not happen
	if err := uc.userRepo.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	uc.notifier.PublishDeleted(input.ID)
	uc.cache.Invalidate(ctx)

	go func() {
		err := uc.publisher.PublishUserEvent(context.Background(), event.UserEventPayload{
			EventType: event.UserEventTypeDeleted,
			UserID:    input.ID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'deleted' event", err, zap.String("user_id", input.ID.String()))
		}
	}()

	return &DeleteUserOutput{Message: fmt.Sprintf("User %s deleted", input.ID)}, nil
}

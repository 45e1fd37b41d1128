package user

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/user-gateway/adapters/event"
	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/apperror"
	"github.com/khoahotran/user-gateway/pkg/auth"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

var tracer = otel.Tracer("user_usecase")

// SaveUserUseCase is the single write path for users. A request with an ID
// updates, one without creates; the store decides the ID on create.
type SaveUserUseCase struct {
	userRepo  user.Repository
	notifier  *event.Notifier
	cache     Cache
	publisher event.Publisher
	logger    logger.Logger
}

func NewSaveUserUseCase(repo user.Repository, notifier *event.Notifier, cache Cache, pub event.Publisher, log logger.Logger) *SaveUserUseCase {
	return &SaveUserUseCase{
		userRepo:  repo,
		notifier:  notifier,
		cache:     cache,
		publisher: pub,
		logger:    log,
	}
}

type SaveUserInput struct {
	ID       *uuid.UUID
	Name     *string
	Email    *string
	Title    *string
	Password *string
}

type SaveUserOutput struct {
	User    *user.User
	Created bool
}

func (uc *SaveUserUseCase) Execute(ctx context.Context, input SaveUserInput) (*SaveUserOutput, error) {

	ctx, span := tracer.Start(ctx, "SaveUser")
	defer span.End()

	// a plaintext password never reaches the repository
	var digest *string
	if input.Password != nil {
		h, err := auth.HashPassword(*input.Password)
		if err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to hash password", err)
		}
		digest = &h
	}

	var persisted *user.User
	var err error
	created := input.ID == nil

	if created {
		if input.Email == nil || *input.Email == "" {
			return nil, apperror.NewInvalidInput("'email' is required to create a user", nil)
		}
		draft := &user.Draft{
			Name:           input.Name,
			Email:          *input.Email,
			Title:          input.Title,
			PasswordDigest: digest,
		}
		persisted, err = uc.userRepo.Insert(ctx, draft)
	} else {
		patch := user.Patch{
			Name:           input.Name,
			Email:          input.Email,
			Title:          input.Title,
			PasswordDigest: digest,
		}
		persisted, err = uc.userRepo.Update(ctx, *input.ID, patch)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// exactly one event per successful mutation, nothing on failure
	uc.notifier.PublishUpserted(persisted)
	uc.cache.Invalidate(ctx)

	go func() {
		err := uc.publisher.PublishUserEvent(context.Background(), event.UserEventPayload{
			EventType: event.UserEventTypeUpserted,
			UserID:    persisted.ID,
			Email:     persisted.Email,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'upserted' event", err, zap.String("user_id", persisted.ID.String()))
		}
	}()

	span.SetAttributes(attribute.String("user_id", persisted.ID.String()))
	return &SaveUserOutput{User: persisted, Created: created}, nil
}

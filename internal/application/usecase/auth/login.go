package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/auth"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)

// LoginUseCase verifies a claimed identity against the stored digest.
// A missing row and a digest mismatch are indistinguishable to callers.
type LoginUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User *user.User
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, err
	}

	if u.PasswordDigest == nil || !auth.CheckPasswordHash(input.Password, *u.PasswordDigest) {
		return nil, ErrInvalidCredentials
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{User: u}, nil
}

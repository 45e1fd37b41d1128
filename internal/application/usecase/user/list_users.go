package user

import (
	"context"
	"slices"
	"strings"

	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

// Cache is the list-query cache the user usecases need. Lookups are
// best-effort; a miss or failure always falls through to the repository.
type Cache interface {
	GetList(ctx context.Context, key string) ([]*user.User, bool)
	SetList(ctx context.Context, key string, users []*user.User)
	Invalidate(ctx context.Context)
}

type ListUsersUseCase struct {
	userRepo user.Repository
	cache    Cache
	logger   logger.Logger
}

func NewListUsersUseCase(repo user.Repository, cache Cache, log logger.Logger) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: repo,
		cache:    cache,
		logger:   log,
	}
}

type ListUsersInput struct {
	// Fields the caller asked for; empty means everything.
	Fields []string
}

type ListUsersOutput struct {
	Users []*user.User
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	columns := user.ProjectColumns(input.Fields)
	key := strings.Join(columns, ",")

	// digest-bearing fetches are never cached
	cacheable := !slices.Contains(columns, "password_digest")

	if cacheable {
		if users, ok := uc.cache.GetList(ctx, key); ok {
			return &ListUsersOutput{Users: users}, nil
		}
	}

	users, err := uc.userRepo.List(ctx, columns)
	if err != nil {
		return nil, err
	}

	if cacheable {
		uc.cache.SetList(ctx, key, users)
	}

	return &ListUsersOutput{Users: users}, nil
}

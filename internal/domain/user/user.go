package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

// User is the persisted row. PasswordDigest is the one-way bcrypt digest,
// never the plaintext; nil means no password is set. Rows fetched through a
// projection carry only the requested columns, the rest stay zero-valued.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           *string   `json:"name"`
	Email          string    `json:"email"`
	Title          *string   `json:"title"`
	PasswordDigest *string   `json:"-"`
}

// Draft is a pre-insert user. It has no ID; the store assigns one.
type Draft struct {
	Name           *string
	Email          string
	Title          *string
	PasswordDigest *string
}

// Patch is a sparse update. Nil fields are left untouched in the store;
// in particular an absent password is never written as null or empty.
type Patch struct {
	Name           *string
	Email          *string
	Title          *string
	PasswordDigest *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Title == nil && p.PasswordDigest == nil
}

// Repository is the store contract. Every write returns the row read back
// from the store after the mutation, not the in-memory input.
type Repository interface {
	// List fetches all rows projected to columns. An empty table yields an
	// empty slice, not an error.
	List(ctx context.Context, columns []string) ([]*User, error)
	// FindByEmail returns ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Insert persists a new row and returns it with the store-assigned ID.
	// Returns ErrEmailTaken on a duplicate email.
	Insert(ctx context.Context, draft *Draft) (*User, error)
	// Update applies a sparse patch and returns the post-update row.
	// Returns ErrUserNotFound when id does not exist.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*User, error)
	// Delete removes the row. Deleting a missing id succeeds.
	Delete(ctx context.Context, id uuid.UUID) error
}

package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:            u.ID,
		Email:         strings.ToLower(strings.TrimSpace(u.Email)),
		PasswordHash:  u.PasswordHash,
		EmailVerified: u.EmailVerified,
		CreatedAt:     utc(u.CreatedAt),
		UpdatedAt:     utc(u.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return expectRows(r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		UpdatedAt:    utc(time.Now()),
		ID:           userID,
	}))
}

func (r *usersRepo) SetEmailVerified(ctx context.Context, userID string, verified bool) error {
	return expectRows(r.q.UpdateUserEmailVerified(ctx, gen.UpdateUserEmailVerifiedParams{
		EmailVerified: verified,
		UpdatedAt:     utc(time.Now()),
		ID:            userID,
	}))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return expectRows(r.q.DeleteUser(ctx, userID))
}

package repository

import (
	"context"

	"github.com/Zixzorash/BURN-SUB/internal/auth"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type authRepo struct {
	db *sqlx.DB
}

func NewAuthRepo(db *sqlx.DB) auth.Repository {
	return &authRepo{
		db: db,
	}
}

func (r *authRepo) Register(ctx context.Context, user *models.User) (*models.User, error) {
	created := &models.User{}
	if err := r.db.QueryRowxContext(
		ctx,
		createUserQuery,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "authRepo.Register.StructScan")
	}
	return created, nil
}

func (r *authRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := r.db.GetContext(ctx, user, getUserByIDQuery, userID); err != nil {
		return nil, errors.Wrap(err, "authRepo.GetByID.GetContext")
	}
	return user, nil
}

func (r *authRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := r.db.GetContext(ctx, user, getUserByEmailQuery, email); err != nil {
		return nil, errors.Wrap(err, "authRepo.FindByEmail.GetContext")
	}
	return user, nil
}

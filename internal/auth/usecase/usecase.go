package usecase

import (
	"context"
	"fmt"

	"github.com/Zixzorash/BURN-SUB/internal/auth"
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/google/uuid"
)

type authUC struct {
	cfg      *config.Config
	authRepo auth.Repository
	logger   logger.Logger
}

func NewAuthUseCase(cfg *config.Config, authRepo auth.Repository, log logger.Logger) auth.UseCase {
	return &authUC{
		cfg:      cfg,
		authRepo: authRepo,
		logger:   log,
	}
}

func (u *authUC) Register(ctx context.Context, user *models.User) (*models.UserWithToken, error) {
	if err := utils.ValidateStruct(ctx, user); err != nil {
		return nil, fmt.Errorf("invalid user: %v", err)
	}

	existing, err := u.authRepo.FindByEmail(ctx, user.Email)
	if existing != nil || err == nil {
		return nil, fmt.Errorf("user with email %s already exists", user.Email)
	}

	if err = user.PrepareCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare user for create: %v", err)
	}

	created, err := u.authRepo.Register(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	created.SanitizePassword()

	token, err := utils.GenerateJWTToken(created, u.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate jwt token: %v", err)
	}
	return &models.UserWithToken{
		User:  created,
		Token: token,
	}, nil
}

func (u *authUC) Login(ctx context.Context, user *models.User) (*models.UserWithToken, error) {
	found, err := u.authRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err = found.ComparePassword(user.Password); err != nil {
		u.logger.Warnf("Login - password mismatch for %s", user.Email)
		return nil, fmt.Errorf("invalid email or password")
	}
	found.SanitizePassword()

	token, err := utils.GenerateJWTToken(found, u.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate jwt token: %v", err)
	}
	return &models.UserWithToken{
		User:  found,
		Token: token,
	}, nil
}

func (u *authUC) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := u.authRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}
	user.SanitizePassword()
	return user, nil
}

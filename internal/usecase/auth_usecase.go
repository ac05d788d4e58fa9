package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/google/uuid"
)

type AuthUsecase struct {
	userRepo  *repository.UserRepository
	jwt       *service.JWTService
	passwords *service.PasswordService
	log       *logger.Logger
}

func NewAuthUsecase(userRepo *repository.UserRepository, jwt *service.JWTService, passwords *service.PasswordService, log *logger.Logger) *AuthUsecase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUsecase{userRepo: userRepo, jwt: jwt, passwords: passwords, log: log}
}

func (uc *AuthUsecase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := uc.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          req.Email,
		FullName:       strings.TrimSpace(req.FullName),
		PasswordHash:   hash,
		JobPreferences: []string{},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	uc.log.Info("user registered", "user_id", user.ID)

	return uc.issue(user)
}

func (uc *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !uc.passwords.Verify(req.Password, user.PasswordHash) {
		uc.log.Warn("login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return uc.issue(user)
}

func (uc *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile only touches the fields present in the request.
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := uc.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.JobPreferences != nil {
		user.JobPreferences = req.JobPreferences
	}
	if req.CurrentCourse != nil {
		course := *req.CurrentCourse
		if course.Progress < 0 || course.Progress > 100 {
			return nil, invalidInput("currentCourse.progress", errors.New("must be between 0 and 100"))
		}
		user.CurrentCourse = course
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (uc *AuthUsecase) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := uc.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: user, Token: token}, nil
}

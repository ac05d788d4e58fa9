package dto

import "github.com/fadilmartias/skillsnap/internal/model"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName       *string              `json:"fullName" validate:"omitempty,min=2,max=100"`
	JobPreferences []string             `json:"jobPreferences" validate:"omitempty,max=20,dive,min=1,max=100"`
	CurrentCourse  *model.CurrentCourse `json:"currentCourse"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

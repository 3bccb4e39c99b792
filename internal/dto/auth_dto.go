package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id                     uuid.UUID `json:"id"`
	Email                  string    `json:"email"`
	Name                   string    `json:"name"`
	Phone                  string    `json:"phone,omitempty"`
	SubscriptionPlan       string    `json:"subscription_plan"`
	SubscriptionStatus     string    `json:"subscription_status"`
	MessagesRemainingToday int       `json:"messages_remaining_today"`
	IsAdmin                bool      `json:"is_admin"`
	IsSupport              bool      `json:"is_support"`
	CreatedAt              time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

package dto

import (
	"time"

	"travelhub/constants"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	FullName string         `json:"fullName" binding:"required"`
	Phone    string         `json:"phone" binding:"required"`
	Role     constants.Role `json:"role" binding:"required,oneof=owner customer"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FullName  string         `json:"fullName"`
	Phone     string         `json:"phone"`
	Status    string         `json:"status"`
	Role      constants.Role `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user_info"`
}

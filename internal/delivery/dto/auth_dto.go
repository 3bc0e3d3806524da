package dto

import (
	"time"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=150"`
	Surname  string `json:"surname" validate:"omitempty,max=150"`
	Center   string `json:"center" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Role     string `json:"role" validate:"required,oneof=patient psychologist"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,max=72"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Role        string        `json:"role"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID                  uint                         `json:"id"`
	Email               string                       `json:"email"`
	Name                string                       `json:"name"`
	Surname             string                       `json:"surname,omitempty"`
	Center              string                       `json:"center,omitempty"`
	Phone               string                       `json:"phone,omitempty"`
	Role                string                       `json:"role"`
	PatientProfile      *PatientProfileResponse      `json:"patient_profile,omitempty"`
	PsychologistProfile *PsychologistProfileResponse `json:"psychologist_profile,omitempty"`
	CreatedAt           time.Time                    `json:"created_at"`
	UpdatedAt           time.Time                    `json:"updated_at"`
}

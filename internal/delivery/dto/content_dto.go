package dto

import "time"

// Request DTOs

type CreateAvatarRequest struct {
	HairStyle    string `json:"hair_style" validate:"required,max=50"`
	HairColor    string `json:"hair_color" validate:"required,max=50"`
	EyeColor     string `json:"eye_color" validate:"required,max=50"`
	EyebrowStyle string `json:"eyebrow_style" validate:"required,max=50"`
	SkinTone     string `json:"skin_tone" validate:"required,max=50"`
	FaceShape    string `json:"face_shape" validate:"required,max=50"`
}

type CreateDrawingRequest struct {
	Title       string `json:"title" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty"`
	ImageData   string `json:"image_data" validate:"required"`
}

type CreateConversationLogRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// ListQuery carries paging parameters for owner-scoped listings.
type ListQuery struct {
	Limit  int
	Offset int
}

// Response DTOs

type AvatarResponse struct {
	ID           uint      `json:"id"`
	PatientID    uint      `json:"patient_id"`
	HairStyle    string    `json:"hair_style"`
	HairColor    string    `json:"hair_color"`
	EyeColor     string    `json:"eye_color"`
	EyebrowStyle string    `json:"eyebrow_style"`
	SkinTone     string    `json:"skin_tone"`
	FaceShape    string    `json:"face_shape"`
	CreatedAt    time.Time `json:"created_at"`
}

type DrawingResponse struct {
	ID          uint      `json:"id"`
	PatientID   uint      `json:"patient_id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageData   string    `json:"image_data"`
	CreatedAt   time.Time `json:"created_at"`
}

type ConversationLogResponse struct {
	ID         uint      `json:"id"`
	PatientID  uint      `json:"patient_id"`
	Transcript string    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
}

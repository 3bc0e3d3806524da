package dto

type PsychologistProfileResponse struct {
	Specialty string `json:"specialty,omitempty"`
}

type UpdatePsychologistProfileRequest struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=150"`
	Surname   *string `json:"surname" validate:"omitempty,max=150"`
	Center    *string `json:"center" validate:"omitempty,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Specialty *string `json:"specialty" validate:"omitempty,max=150"`
}

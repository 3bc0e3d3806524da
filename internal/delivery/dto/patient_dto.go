package dto

// PatientProfileResponse represents patient profile data in responses
type PatientProfileResponse struct {
	Birthdate string `json:"birthdate,omitempty"`
	Treatment string `json:"treatment,omitempty"`
}

// UpdatePatientProfileRequest is a partial update; nil fields are left untouched.
type UpdatePatientProfileRequest struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=150"`
	Surname   *string `json:"surname" validate:"omitempty,max=150"`
	Center    *string `json:"center" validate:"omitempty,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Treatment *string `json:"treatment" validate:"omitempty,max=20"`
}

package dto

type AssignPatientRequest struct {
	PatientID uint `json:"patient_id" validate:"required,gt=0"`
}

// TherapistWithPatientsResponse is a psychologist together with every
// patient currently assigned to them.
type TherapistWithPatientsResponse struct {
	UserResponse
	Patients []UserResponse `json:"patients"`
}

type TherapistListResponse struct {
	Therapists []UserResponse `json:"therapists"`
	Total      int            `json:"total"`
}

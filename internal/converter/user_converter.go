package converter

import (
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity to UserResponse DTO.
// Profiles are included only when they were preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Surname:   user.Surname,
		Center:    user.Center,
		Phone:     user.Phone,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.PatientProfile != nil {
		response.PatientProfile = PatientProfileToResponse(user.PatientProfile)
	}

	if user.PsychologistProfile != nil {
		response.PsychologistProfile = &dto.PsychologistProfileResponse{
			Specialty: user.PsychologistProfile.Specialty,
		}
	}

	return response
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		Treatment: profile.Treatment,
	}
	if profile.Birthdate != nil {
		response.Birthdate = profile.Birthdate.Format(dateLayout)
	}
	return response
}

// TherapistWithPatientsToResponse nests the patient list under the therapist.
func TherapistWithPatientsToResponse(therapist *entity.User, patients []entity.User) *dto.TherapistWithPatientsResponse {
	if therapist == nil {
		return nil
	}

	return &dto.TherapistWithPatientsResponse{
		UserResponse: *UserToResponse(therapist),
		Patients:     UsersToResponses(patients),
	}
}

package converter

import (
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
)

func AvatarToResponse(avatar *entity.PatientAvatar) *dto.AvatarResponse {
	if avatar == nil {
		return nil
	}

	return &dto.AvatarResponse{
		ID:           avatar.ID,
		PatientID:    avatar.PatientID,
		HairStyle:    avatar.HairStyle,
		HairColor:    avatar.HairColor,
		EyeColor:     avatar.EyeColor,
		EyebrowStyle: avatar.EyebrowStyle,
		SkinTone:     avatar.SkinTone,
		FaceShape:    avatar.FaceShape,
		CreatedAt:    avatar.CreatedAt,
	}
}

func AvatarsToResponses(avatars []entity.PatientAvatar) []dto.AvatarResponse {
	responses := make([]dto.AvatarResponse, len(avatars))
	for i := range avatars {
		responses[i] = *AvatarToResponse(&avatars[i])
	}
	return responses
}

func DrawingToResponse(drawing *entity.PatientDrawing) *dto.DrawingResponse {
	if drawing == nil {
		return nil
	}

	return &dto.DrawingResponse{
		ID:          drawing.ID,
		PatientID:   drawing.PatientID,
		Title:       drawing.Title,
		Description: drawing.Description,
		ImageData:   drawing.ImageData,
		CreatedAt:   drawing.CreatedAt,
	}
}

func DrawingsToResponses(drawings []entity.PatientDrawing) []dto.DrawingResponse {
	responses := make([]dto.DrawingResponse, len(drawings))
	for i := range drawings {
		responses[i] = *DrawingToResponse(&drawings[i])
	}
	return responses
}

func ConversationLogToResponse(log *entity.ConversationLog) *dto.ConversationLogResponse {
	if log == nil {
		return nil
	}

	return &dto.ConversationLogResponse{
		ID:         log.ID,
		PatientID:  log.PatientID,
		Transcript: log.Transcript,
		CreatedAt:  log.CreatedAt,
	}
}

func ConversationLogsToResponses(logs []entity.ConversationLog) []dto.ConversationLogResponse {
	responses := make([]dto.ConversationLogResponse, len(logs))
	for i := range logs {
		responses[i] = *ConversationLogToResponse(&logs[i])
	}
	return responses
}

func PhraseToResponse(phrase *entity.Phrase) *dto.PhraseResponse {
	if phrase == nil {
		return nil
	}

	return &dto.PhraseResponse{
		ID:      phrase.ID,
		TcaType: phrase.TcaType,
		Phrase:  phrase.Phrase,
	}
}

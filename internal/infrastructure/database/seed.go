package database

import "holo-api/internal/domain/entity"

// DefaultPhrases is the phrase set loaded into an empty tca_phrases table.
func DefaultPhrases() []entity.Phrase {
	return []entity.Phrase{
		{TcaType: entity.TcaTypeAnorexia, Phrase: "Your body deserves care and nourishment every day."},
		{TcaType: entity.TcaTypeAnorexia, Phrase: "Eating is an act of self-love, not a punishment."},
		{TcaType: entity.TcaTypeAnorexia, Phrase: "Your worth is not measured by a number on the scale."},
		{TcaType: entity.TcaTypeAnorexia, Phrase: "Every meal is a step toward your recovery."},
		{TcaType: entity.TcaTypeBulimia, Phrase: "You don't need to compensate for eating. You deserve to nourish yourself."},
		{TcaType: entity.TcaTypeBulimia, Phrase: "Every day without hurting yourself is a victory."},
		{TcaType: entity.TcaTypeBulimia, Phrase: "Your emotions are valid. Finding healthy ways to handle them is possible."},
		{TcaType: entity.TcaTypeBulimia, Phrase: "Recovery isn't linear, but every step counts."},
		{TcaType: entity.TcaTypeGeneral, Phrase: "You are stronger than you think."},
		{TcaType: entity.TcaTypeGeneral, Phrase: "Take care of yourself the way you would take care of someone you love."},
		{TcaType: entity.TcaTypeGeneral, Phrase: "Asking for help is a sign of courage."},
		{TcaType: entity.TcaTypeGeneral, Phrase: "You are not alone on this journey."},
	}
}

// SeedAccount describes a demo account created when seeding is enabled.
type SeedAccount struct {
	Email    string
	Password string
	Name     string
	Surname  string
	Role     entity.Role
}

func DefaultAccounts() []SeedAccount {
	return []SeedAccount{
		{Email: "patient@test.com", Password: "123456", Name: "Test", Surname: "Patient", Role: entity.RolePatient},
		{Email: "psyco@test.com", Password: "123456", Name: "Test", Surname: "Psychologist", Role: entity.RolePsychologist},
	}
}

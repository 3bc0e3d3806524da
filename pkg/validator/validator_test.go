package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email     string  `json:"email" validate:"required,email"`
	Role      string  `json:"role" validate:"required,oneof=patient psychologist"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	PatientID uint    `json:"patient_id" validate:"gt=0"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	cv := NewValidator()
	bad := "04/12/1999"

	err := cv.Validate(&sample{Email: "nope", Role: "admin", Password: "123", Birthdate: &bad})
	require.Error(t, err)

	errs := cv.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "role must be one of: patient, psychologist", errs["role"])
	assert.Equal(t, "password must be at least 6 characters", errs["password"])
	assert.Equal(t, "birthdate must be a date in YYYY-MM-DD format", errs["birthdate"])
	assert.Equal(t, "patient_id must be greater than 0", errs["patient_id"])
}

func TestValidate_Passes(t *testing.T) {
	cv := NewValidator()
	date := "1999-04-12"

	err := cv.Validate(&sample{Email: "a@x.com", Role: "patient", Password: "secret1", Birthdate: &date, PatientID: 3})
	assert.NoError(t, err)
	assert.Empty(t, cv.FormatValidationErrors(nil))
}

type renameSample struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=150"`
}

func TestValidate_OptionalNameCannotBeBlank(t *testing.T) {
	cv := NewValidator()
	empty := ""
	name := "Ana"

	assert.NoError(t, cv.Validate(&renameSample{}), "absent name is left alone")
	assert.NoError(t, cv.Validate(&renameSample{Name: &name}))

	err := cv.Validate(&renameSample{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, "name must be at least 1 characters", cv.FormatValidationErrors(err)["name"])
}

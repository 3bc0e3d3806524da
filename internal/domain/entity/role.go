package entity

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("role must be patient or psychologist")

// Role is the closed set of account roles. Every account has exactly one.
type Role string

const (
	RolePatient      Role = "patient"
	RolePsychologist Role = "psychologist"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RolePsychologist:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

package state

import (
	"errors"
	"strings"

	"github.com/tropedb/tropedeck/internal/api"
)

// Client-side validation limits for trope fields.
const (
	TropeNameMin        = 2
	TropeNameMax        = 200
	TropeDescriptionMin = 10
	TropeDescriptionMax = 2000
)

// ValidateTrope checks a trope payload before it is submitted.
// Validation failures never reach the network.
func ValidateTrope(in api.TropeInput) error {
	name := strings.TrimSpace(in.Name)
	desc := strings.TrimSpace(in.Description)

	if len(name) < TropeNameMin {
		return errors.New("Name must be at least 2 characters long.")
	}
	if len(name) > TropeNameMax {
		return errors.New("Name must be less than 200 characters.")
	}
	if len(desc) < TropeDescriptionMin {
		return errors.New("Description must be at least 10 characters long.")
	}
	if len(desc) > TropeDescriptionMax {
		return errors.New("Description must be less than 2000 characters.")
	}
	return nil
}

// ValidateWork checks required work fields.
func ValidateWork(in api.WorkInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("Title is required.")
	}
	if strings.TrimSpace(in.Type) == "" {
		return errors.New("Type is required.")
	}
	return nil
}

// ValidateExample checks required example fields.
func ValidateExample(in api.ExampleInput) error {
	if in.TropeID == "" {
		return errors.New("A trope must be selected.")
	}
	if in.WorkID == "" {
		return errors.New("A work must be selected.")
	}
	if strings.TrimSpace(in.Description) == "" {
		return errors.New("Description is required.")
	}
	return nil
}

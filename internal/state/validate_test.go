package state

import (
	"strings"
	"testing"

	"github.com/tropedb/tropedeck/internal/api"
)

func TestValidateTrope(t *testing.T) {
	valid := api.TropeInput{Name: "Chekhov's Gun", Description: "A gun introduced early must fire."}
	if err := ValidateTrope(valid); err != nil {
		t.Errorf("valid trope rejected: %v", err)
	}

	cases := []struct {
		name string
		in   api.TropeInput
	}{
		{"short name", api.TropeInput{Name: "X", Description: valid.Description}},
		{"long name", api.TropeInput{Name: strings.Repeat("a", 201), Description: valid.Description}},
		{"short description", api.TropeInput{Name: valid.Name, Description: "too short"}},
		{"long description", api.TropeInput{Name: valid.Name, Description: strings.Repeat("a", 2001)}},
		{"whitespace name", api.TropeInput{Name: "   ", Description: valid.Description}},
	}
	for _, tc := range cases {
		if err := ValidateTrope(tc.in); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateTropeBoundaries(t *testing.T) {
	// 2-character names and 10-character descriptions are the
	// smallest accepted values.
	in := api.TropeInput{Name: "Ab", Description: "1234567890"}
	if err := ValidateTrope(in); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}
	in = api.TropeInput{Name: strings.Repeat("a", 200), Description: strings.Repeat("d", 2000)}
	if err := ValidateTrope(in); err != nil {
		t.Errorf("max boundary values rejected: %v", err)
	}
}

func TestValidateWork(t *testing.T) {
	if err := ValidateWork(api.WorkInput{Title: "Dune", Type: "novel"}); err != nil {
		t.Errorf("valid work rejected: %v", err)
	}
	if err := ValidateWork(api.WorkInput{Type: "novel"}); err == nil {
		t.Error("missing title should fail")
	}
	if err := ValidateWork(api.WorkInput{Title: "Dune"}); err == nil {
		t.Error("missing type should fail")
	}
}

func TestValidateExample(t *testing.T) {
	valid := api.ExampleInput{TropeID: "t1", WorkID: "w1", Description: "The spice must flow"}
	if err := ValidateExample(valid); err != nil {
		t.Errorf("valid example rejected: %v", err)
	}
	for _, in := range []api.ExampleInput{
		{WorkID: "w1", Description: "x"},
		{TropeID: "t1", Description: "x"},
		{TropeID: "t1", WorkID: "w1", Description: "  "},
	} {
		if err := ValidateExample(in); err == nil {
			t.Errorf("expected validation error for %+v", in)
		}
	}
}

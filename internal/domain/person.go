package domain

import (
	"fmt"
	"strings"
	"time"
)

// Gender is one of the three categories a roster entry may carry.
type Gender string

const (
	Male      Gender = "Male"
	Female    Gender = "Female"
	NonBinary Gender = "NonBinary"
)

// Genders lists every supported gender in display order.
var Genders = []Gender{Male, Female, NonBinary}

// Valid reports whether g is one of the supported genders.
func (g Gender) Valid() bool {
	switch g {
	case Male, Female, NonBinary:
		return true
	}
	return false
}

// ParseGender accepts the exact gender names used in rosters.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.TrimSpace(s))
	if !g.Valid() {
		return "", fmt.Errorf("gender %q must be one of %s", s, strings.Join(GenderNames(), ", "))
	}
	return g, nil
}

// GenderNames returns the supported gender names as strings.
func GenderNames() []string {
	names := make([]string, len(Genders))
	for i, g := range Genders {
		names[i] = string(g)
	}
	return names
}

// Person is a club member or waitlist entry.
type Person struct {
	Name        string    `yaml:"name,omitempty" json:"name,omitempty"`
	DateOfBirth time.Time `yaml:"dob" json:"dob"`
	Gender      Gender    `yaml:"gender" json:"gender"`
}

// AnonymizedPerson carries only the fields needed for demographic analysis.
type AnonymizedPerson struct {
	DateOfBirth time.Time `json:"dob"`
	Gender      Gender    `json:"gender"`
}

// Anonymize drops the name.
func (p Person) Anonymize() AnonymizedPerson {
	return AnonymizedPerson{DateOfBirth: p.DateOfBirth, Gender: p.Gender}
}

// AnonymizeAll projects a roster onto its anonymized form, preserving order.
func AnonymizeAll(people []Person) []AnonymizedPerson {
	out := make([]AnonymizedPerson, len(people))
	for i, p := range people {
		out[i] = p.Anonymize()
	}
	return out
}

package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
)

// ErrInvalidRoster is returned for roster files that cannot be parsed.
var ErrInvalidRoster = errors.New("invalid roster")

// LoadRoster reads a headerless name,date_of_birth,gender CSV file.
func (ip *InputParser) LoadRoster(filename string) ([]domain.Person, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", filename, err)
	}
	defer f.Close()

	people, err := ip.ParseRoster(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return people, nil
}

// ParseRoster parses roster CSV rows. Rows keep their file order, which for a
// waitlist is descending priority. Blank lines are skipped.
func (ip *InputParser) ParseRoster(r io.Reader) ([]domain.Person, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var people []domain.Person
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
		}
		line, _ := reader.FieldPos(0)

		dob, err := dateutil.ParseDate(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRoster, line, err)
		}
		gender, err := domain.ParseGender(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRoster, line, err)
		}

		people = append(people, domain.Person{
			Name:        strings.TrimSpace(record[0]),
			DateOfBirth: dob,
			Gender:      gender,
		})
	}
	return people, nil
}

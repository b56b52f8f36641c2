package config

import (
	"strings"
	"testing"
	"time"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	input := "John Smith,2000-01-01,Male\r\n" +
		"Jane Doe,1999-12-31,Female\r\n" +
		",07/07/1980,NonBinary\r\n" +
		"\r\n"

	people, err := NewInputParser().ParseRoster(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, people, 3)

	assert.Equal(t, "John Smith", people[0].Name)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), people[0].DateOfBirth)
	assert.Equal(t, domain.Male, people[0].Gender)
	assert.Equal(t, "", people[2].Name)
	assert.Equal(t, time.Date(1980, 7, 7, 0, 0, 0, 0, time.UTC), people[2].DateOfBirth)
	assert.Equal(t, domain.NonBinary, people[2].Gender)
}

func TestParseRoster_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"wrong field count", "John,2000-01-01\n", "wrong number of fields"},
		{"bad gender", "John,2000-01-01,Male\nJane,2000-01-01,female\n", "line 2"},
		{"bad date", "John,yesterday,Male\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().ParseRoster(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRoster)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseRoster_Empty(t *testing.T) {
	people, err := NewInputParser().ParseRoster(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestLoadRoster(t *testing.T) {
	parser := NewInputParser()

	members, err := parser.LoadRoster("../../testdata/members.csv")
	require.NoError(t, err)
	assert.Len(t, members, 8)

	waitlist, err := parser.LoadRoster("../../testdata/waitlist.csv")
	require.NoError(t, err)
	require.Len(t, waitlist, 5)
	assert.Equal(t, "Wendy Lee", waitlist[0].Name, "waitlist keeps priority order")

	_, err = parser.LoadRoster("../../testdata/missing.csv")
	assert.Error(t, err)
}

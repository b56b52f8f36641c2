// Package wire encodes anonymized people as compact query-string rows.
//
// A row is "YYYY-MM-DD-G" where G is M, F or N. Names are never encoded.
package wire

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clubdemo/club-demographics/internal/domain"
)

// RowParam is the query parameter carrying one encoded row.
const RowParam = "row[]"

const rowLength = 12

// ErrMalformedRow is returned for rows that do not follow the row format.
var ErrMalformedRow = errors.New("malformed row")

var genderCodes = map[domain.Gender]byte{
	domain.Male:      'M',
	domain.Female:    'F',
	domain.NonBinary: 'N',
}

var codeGenders = map[byte]domain.Gender{
	'M': domain.Male,
	'F': domain.Female,
	'N': domain.NonBinary,
}

// EncodeRow encodes a single person. The name is dropped.
func EncodeRow(p domain.AnonymizedPerson) (string, error) {
	code, ok := genderCodes[p.Gender]
	if !ok {
		return "", fmt.Errorf("%w: unsupported gender %q", ErrMalformedRow, p.Gender)
	}
	return p.DateOfBirth.Format("2006-01-02") + "-" + string(code), nil
}

// EncodeRows joins encoded people as row[]=... pairs. Empty input encodes to "".
func EncodeRows(people []domain.Person) (string, error) {
	parts := make([]string, 0, len(people))
	for i, p := range people {
		row, err := EncodeRow(p.Anonymize())
		if err != nil {
			return "", fmt.Errorf("person %d: %w", i, err)
		}
		parts = append(parts, RowParam+"="+row)
	}
	return strings.Join(parts, "&"), nil
}

// DecodeRow parses a single encoded row.
func DecodeRow(row string) (domain.AnonymizedPerson, error) {
	if len(row) != rowLength || row[10] != '-' {
		return domain.AnonymizedPerson{}, fmt.Errorf("%w: %q", ErrMalformedRow, row)
	}
	gender, ok := codeGenders[row[11]]
	if !ok {
		return domain.AnonymizedPerson{}, fmt.Errorf("%w: unknown gender code in %q", ErrMalformedRow, row)
	}
	dob, err := time.Parse("2006-01-02", row[:10])
	if err != nil {
		return domain.AnonymizedPerson{}, fmt.Errorf("%w: %q: %v", ErrMalformedRow, row, err)
	}
	return domain.AnonymizedPerson{DateOfBirth: dob, Gender: gender}, nil
}

// DecodeRows decodes every row, failing on the first malformed one.
func DecodeRows(rows []string) ([]domain.AnonymizedPerson, error) {
	out := make([]domain.AnonymizedPerson, 0, len(rows))
	for _, r := range rows {
		p, err := DecodeRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Package demographics groups people into age by gender histograms.
package demographics

import (
	"errors"
	"fmt"
	"time"

	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/pkg/dateutil"
)

var (
	// ErrInvalidGender is returned when a person carries a gender outside domain.Genders.
	ErrInvalidGender = errors.New("invalid gender")
	// ErrInvalidGeometry is returned for a non-positive bucket count or width.
	ErrInvalidGeometry = errors.New("invalid bucket geometry")
)

// MaxBucketCount bounds the number of regular buckets a geometry may request.
const MaxBucketCount = 200

// ComputeAge returns the person's age in full years on the reference date.
// A birth date after the reference date yields a negative age.
func ComputeAge(p domain.AnonymizedPerson, referenceDate time.Time) int {
	return dateutil.Age(p.DateOfBirth, referenceDate)
}

// BucketIndex maps an age to its bucket: floor(age/width), capped at n (the overflow bucket).
// Negative ages land in bucket 0. width must be positive.
func BucketIndex(age, width, n int) int {
	if age < 0 {
		return 0
	}
	idx := age / width
	if idx > n {
		return n
	}
	return idx
}

// ValidateGeometry checks that a geometry can be used for bucketing.
func ValidateGeometry(g domain.BucketGeometry) error {
	if g.Count < 1 || g.Count > MaxBucketCount {
		return fmt.Errorf("%w: bucket count must be between 1 and %d, got %d", ErrInvalidGeometry, MaxBucketCount, g.Count)
	}
	if g.Width < 1 {
		return fmt.Errorf("%w: bucket width must be at least 1, got %d", ErrInvalidGeometry, g.Width)
	}
	return nil
}

// Build splits people by gender and histograms each group by age at referenceDate.
// The whole batch is rejected if any person has an unsupported gender.
func Build(people []domain.AnonymizedPerson, referenceDate time.Time, g domain.BucketGeometry) (domain.GenderBuckets, error) {
	if err := ValidateGeometry(g); err != nil {
		return nil, err
	}
	for i, p := range people {
		if !p.Gender.Valid() {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidGender, p.Gender, i)
		}
	}

	buckets := make(domain.GenderBuckets, len(domain.Genders))
	for _, gender := range domain.Genders {
		buckets[gender] = histogram(filterByGender(people, gender), referenceDate, g)
	}
	return buckets, nil
}

// BuildPeople is Build over full person records.
func BuildPeople(people []domain.Person, referenceDate time.Time, g domain.BucketGeometry) (domain.GenderBuckets, error) {
	return Build(domain.AnonymizeAll(people), referenceDate, g)
}

func filterByGender(people []domain.AnonymizedPerson, gender domain.Gender) []domain.AnonymizedPerson {
	var out []domain.AnonymizedPerson
	for _, p := range people {
		if p.Gender == gender {
			out = append(out, p)
		}
	}
	return out
}

func histogram(people []domain.AnonymizedPerson, referenceDate time.Time, g domain.BucketGeometry) domain.AgeBuckets {
	counts := make(domain.AgeBuckets, g.Len())
	for _, p := range people {
		counts[BucketIndex(ComputeAge(p, referenceDate), g.Width, g.Count)]++
	}
	return counts
}

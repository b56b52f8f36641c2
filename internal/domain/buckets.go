package domain

import "fmt"

// AgeBuckets holds head counts per age range. The last element is the overflow bucket.
type AgeBuckets []int

// Total returns the number of people counted across all buckets.
func (b AgeBuckets) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// Max returns the largest single bucket.
func (b AgeBuckets) Max() int {
	m := 0
	for _, n := range b {
		if n > m {
			m = n
		}
	}
	return m
}

// GenderBuckets holds one AgeBuckets per gender, all with the same geometry.
type GenderBuckets map[Gender]AgeBuckets

// Combined sums the per-gender histograms element-wise.
func (g GenderBuckets) Combined() AgeBuckets {
	n := 0
	for _, b := range g {
		if len(b) > n {
			n = len(b)
		}
	}
	out := make(AgeBuckets, n)
	for _, b := range g {
		for i, v := range b {
			out[i] += v
		}
	}
	return out
}

// Total returns the number of people across every gender.
func (g GenderBuckets) Total() int {
	total := 0
	for _, b := range g {
		total += b.Total()
	}
	return total
}

// Largest returns the largest single bucket across every gender.
func (g GenderBuckets) Largest() int {
	m := 0
	for _, b := range g {
		if v := b.Max(); v > m {
			m = v
		}
	}
	return m
}

// BucketGeometry describes how ages are grouped: Count regular buckets of Width years each,
// followed by one overflow bucket.
type BucketGeometry struct {
	Count int `yaml:"count" json:"n_buckets"`
	Width int `yaml:"width" json:"bucket_width"`
}

const (
	DefaultBucketCount = 17
	DefaultBucketWidth = 5
)

// DefaultBucketGeometry groups ages 0-84 in five year steps with an 85+ overflow.
func DefaultBucketGeometry() BucketGeometry {
	return BucketGeometry{Count: DefaultBucketCount, Width: DefaultBucketWidth}
}

// Len returns the number of buckets including the overflow bucket.
func (g BucketGeometry) Len() int { return g.Count + 1 }

// Label renders the age range for bucket i, e.g. "15 to 19" or "85+".
func (g BucketGeometry) Label(i int) string {
	start := i * g.Width
	if i >= g.Count {
		return fmt.Sprintf("%d+", g.Count*g.Width)
	}
	return fmt.Sprintf("%d to %d", start, start+g.Width-1)
}

// Labels returns the label of every bucket, youngest first.
func (g BucketGeometry) Labels() []string {
	labels := make([]string, g.Len())
	for i := range labels {
		labels[i] = g.Label(i)
	}
	return labels
}

package output

import (
	"strings"

	"github.com/clubdemo/club-demographics/internal/domain"
	stats "github.com/clubdemo/club-demographics/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// Share returns part as a percentage of total, zero when total is zero.
func Share(part, total int) decimal.Decimal { return stats.Percent(part, total) }

// RatePercentage renders a fractional rate such as 0.015 as "1.50%".
func RatePercentage(rate decimal.Decimal) string {
	return FormatPercentage(stats.NewRate(rate).Percent())
}

// bar draws n scaled against max into width cells.
func bar(n, max, width int, fill string) string {
	if max == 0 || n == 0 {
		return ""
	}
	cells := n * width / max
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat(fill, cells)
}

// rowsOldestFirst returns bucket indices in display order, the overflow bucket on top.
func rowsOldestFirst(g domain.BucketGeometry) []int {
	idx := make([]int, g.Len())
	for i := range idx {
		idx[i] = g.Len() - 1 - i
	}
	return idx
}

func count(b domain.GenderBuckets, g domain.Gender, i int) int {
	ages := b[g]
	if i < 0 || i >= len(ages) {
		return 0
	}
	return ages[i]
}

// Package market holds the arithmetic behind the dashboard figures: trends, rounding,
// paging and salary histogram labels
package market

import (
	"math"
	"strconv"
	"strings"
)

// PageSize is the fixed best-offers page length
const PageSize = 20

// BucketWidth is the salary histogram bin width
const BucketWidth = 100

// Round rounds half up, matching how the dashboard has always shown rates
func Round(v float64) float64 { return math.Floor(v + 0.5) }

// Round1 rounds to one decimal
func Round1(v float64) float64 { return Round(v*10) / 10 }

// RoundOrZero rounds an optional average; nil becomes 0
func RoundOrZero(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return int(Round(*v))
}

// Change is the percentage change from prev to cur, rounded to one decimal
// a zero, nil or non-finite previous value yields 0 so callers never see NaN or Inf
func Change(cur, prev *float64) float64 {
	if cur == nil || prev == nil || *prev == 0 {
		return 0
	}
	v := (*cur - *prev) / *prev * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Round1(v)
}

// CountChange is Change for row counts
func CountChange(cur, prev int64) float64 {
	c, p := float64(cur), float64(prev)
	return Change(&c, &p)
}

// ParsePage reads a 1-based page number; anything unparsable or below 1 is page 1
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages is ceil(total/size)
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Offset is the number of rows skipped before page
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// BucketStart is floor(v/width)*width
func BucketStart(v float64) int {
	return int(math.Floor(v/BucketWidth) * BucketWidth)
}

// Bin is one salary histogram bin keyed by its lower edge
type Bin struct {
	Start int
	Count int64
}

// Labeled is a histogram bin as the dashboard draws it
type Labeled struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// Label renders "{start}-{start+width}"
func Label(start int) string {
	return strconv.Itoa(start) + "-" + strconv.Itoa(start+BucketWidth)
}

// Histogram labels ascending bins; when ceiling > 0 every bin starting at or above it
// is folded into one trailing "{ceiling}+" bin so counts still sum to the input
func Histogram(bins []Bin, ceiling int) []Labeled {
	out := make([]Labeled, 0, len(bins)+1)
	var over int64
	overflow := false
	for _, b := range bins {
		if ceiling > 0 && b.Start >= ceiling {
			over += b.Count
			overflow = true
			continue
		}
		out = append(out, Labeled{Bucket: Label(b.Start), Count: b.Count})
	}
	if overflow {
		out = append(out, Labeled{Bucket: strconv.Itoa(ceiling) + "+", Count: over})
	}
	return out
}

package market

import (
	"math"
	"reflect"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestRounding(t *testing.T) {
	if Round(2.5) != 3 || Round(-2.5) != -2 || Round(612.49) != 612 {
		t.Fatalf("Round mismatch")
	}
	if Round1(12.345) != 12.3 || Round1(-4.26) != -4.3 || Round1(33.36) != 33.4 {
		t.Fatalf("Round1 = %v %v %v", Round1(12.345), Round1(-4.26), Round1(33.36))
	}
	if RoundOrZero(nil) != 0 || RoundOrZero(f(549.5)) != 550 || RoundOrZero(f(math.NaN())) != 0 {
		t.Fatalf("RoundOrZero mismatch")
	}
}

func TestChange(t *testing.T) {
	if got := CountChange(15, 10); got != 50 {
		t.Fatalf("CountChange(15,10) = %v", got)
	}
	if got := CountChange(5, 0); got != 0 {
		t.Fatalf("previous 0 must give 0, got %v", got)
	}
	if got := CountChange(0, 3); got != -100 {
		t.Fatalf("CountChange(0,3) = %v", got)
	}
	if got := Change(f(600), f(550)); got != 9.1 {
		t.Fatalf("Change(600,550) = %v", got)
	}
	for _, c := range [][2]*float64{{nil, f(1)}, {f(1), nil}, {f(1), f(0)}, {f(math.Inf(1)), f(1)}} {
		if got := Change(c[0], c[1]); got != 0 {
			t.Fatalf("Change(%v,%v) = %v, want 0", c[0], c[1], got)
		}
	}
}

func TestPaging(t *testing.T) {
	for in, want := range map[string]int{"": 1, "abc": 1, "0": 1, "-3": 1, "2": 2, " 7 ": 7, "1.5": 1} {
		if got := ParsePage(in); got != want {
			t.Fatalf("ParsePage(%q) = %d, want %d", in, got, want)
		}
	}
	cases := []struct {
		total int64
		want  int
	}{{0, 0}, {1, 1}, {20, 1}, {21, 2}, {25, 2}, {40, 2}, {41, 3}}
	for _, c := range cases {
		if got := TotalPages(c.total, PageSize); got != c.want {
			t.Fatalf("TotalPages(%d) = %d, want %d", c.total, got, c.want)
		}
	}
	if Offset(2, PageSize) != 20 || Offset(0, PageSize) != 0 {
		t.Fatalf("Offset mismatch")
	}
}

func TestBucketStart(t *testing.T) {
	for v, want := range map[float64]int{150: 100, 250: 200, 990: 900, 100: 100, 99.99: 0} {
		if got := BucketStart(v); got != want {
			t.Fatalf("BucketStart(%v) = %d, want %d", v, got, want)
		}
	}
}

func TestHistogram(t *testing.T) {
	bins := []Bin{{100, 1}, {200, 1}, {900, 1}}
	want := []Labeled{{"100-200", 1}, {"200-300", 1}, {"900-1000", 1}}
	if got := Histogram(bins, 0); !reflect.DeepEqual(got, want) {
		t.Fatalf("Histogram = %+v", got)
	}

	bins = []Bin{{400, 3}, {1400, 2}, {1500, 4}, {2100, 1}}
	got := Histogram(bins, 1500)
	want = []Labeled{{"400-500", 3}, {"1400-1500", 2}, {"1500+", 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("clipped Histogram = %+v", got)
	}
	var in, out int64
	for _, b := range bins {
		in += b.Count
	}
	for _, b := range got {
		out += b.Count
	}
	if in != out {
		t.Fatalf("clip lost rows: %d != %d", in, out)
	}

	if got := Histogram(nil, 1500); got == nil || len(got) != 0 {
		t.Fatalf("empty histogram must be an empty slice, got %#v", got)
	}
}

package config

import (
	"reflect"
	"testing"
	"time"

	kit "tjmwatch/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	market := root.Prefix("CORE_")
	if got := market.key("PORT"); got != "CORE_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_PORT")
	}
	// nested prefix
	nested := market.Prefix("MARKET_")
	if got := nested.key("CACHE_TTL"); got != "CORE_MARKET_CACHE_TTL" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  tjmwatch ")
	if got := c.MustString("NAME"); got != "tjmwatch" {
		t.Fatalf("MustString = %q, want %q", got, "tjmwatch")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayValues(t *testing.T) {
	c := New().Prefix("M_")

	t.Setenv("M_STR", " x ")
	if got := c.MayString("STR", "d"); got != "x" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("NOPE", "d"); got != "d" {
		t.Fatalf("MayString default = %q", got)
	}

	t.Setenv("M_INT", "12")
	t.Setenv("M_BADINT", "twelve")
	if c.MayInt("INT", 1) != 12 || c.MayInt("BADINT", 1) != 1 || c.MayInt("NOPE", 3) != 3 {
		t.Fatalf("MayInt mismatch")
	}

	t.Setenv("M_BOOL", "true")
	t.Setenv("M_BADBOOL", "maybe")
	if !c.MayBool("BOOL", false) || c.MayBool("BADBOOL", false) {
		t.Fatalf("MayBool mismatch")
	}

	t.Setenv("M_DUR", "250ms")
	t.Setenv("M_BADDUR", "soon")
	if c.MayDuration("DUR", time.Second) != 250*time.Millisecond || c.MayDuration("BADDUR", time.Second) != time.Second {
		t.Fatalf("MayDuration mismatch")
	}
}

func TestMayCSVKeepsInnerSpaces(t *testing.T) {
	c := New().Prefix("K_")
	t.Setenv("K_WORDS", "go, react native ,, c++ ")
	got := c.MayCSV("WORDS", nil)
	want := []string{"go", "react native", "c++"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MayCSV = %#v, want %#v", got, want)
	}
	t.Setenv("K_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"d"}); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("MayCSV all-blank should use default, got %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("SCOPE", "filtered", "filtered", "global"); got != "filtered" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("E_SCOPE", "GLOBAL")
	if got := c.MayEnum("SCOPE", "filtered", "filtered", "global"); got != "global" {
		t.Fatalf("case-insensitive match should return allowed spelling, got %q", got)
	}
	t.Setenv("E_SCOPE", "sideways")
	kit.MustPanic(t, func() { _ = c.MayEnum("SCOPE", "filtered", "filtered", "global") })
}

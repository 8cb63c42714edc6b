package bind

import (
	"net/http/httptest"
	"testing"

	perr "tjmwatch/internal/platform/errors"
)

type Common struct {
	Search string `query:"search"`
	Period string `query:"period"`
}

type distIn struct {
	Common
	Cap   *int     `query:"cap" validate:"omitempty,min=100"`
	Limit int      `query:"limit" validate:"omitempty,min=1,max=100"`
	Tags  []string `query:"tag"`
	Debug bool     `query:"debug"`
}

func TestQueryDecodesAndValidates(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?search=go+rust&period=30d&cap=1500&limit=5&tag=a,b&tag=c&debug=true", nil)
	in, err := Query[distIn](r)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if in.Search != "go rust" || in.Period != "30d" {
		t.Fatalf("embedded fields = %+v", in.Common)
	}
	if in.Cap == nil || *in.Cap != 1500 || in.Limit != 5 || !in.Debug {
		t.Fatalf("scalars = %+v", in)
	}
	if len(in.Tags) != 3 || in.Tags[2] != "c" {
		t.Fatalf("tags = %#v", in.Tags)
	}
}

func TestQueryMissingLeavesZero(t *testing.T) {
	in, err := Query[distIn](httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if in.Cap != nil || in.Limit != 0 || in.Search != "" {
		t.Fatalf("expected zero value, got %+v", in)
	}
}

func TestQueryMalformedIsValidationError(t *testing.T) {
	_, err := Query[distIn](httptest.NewRequest("GET", "/x?cap=lots", nil))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "cap" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestQueryRuleFailureUsesShortMessage(t *testing.T) {
	_, err := Query[distIn](httptest.NewRequest("GET", "/x?cap=50", nil))
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	if e.Field() != "cap" || e.Error() != "cap must be at least 100" {
		t.Fatalf("field=%q msg=%q", e.Field(), e.Error())
	}
}

func TestQueryRejectsNonStructTarget(t *testing.T) {
	_, err := Query[int](httptest.NewRequest("GET", "/x", nil))
	if err == nil {
		t.Fatalf("expected error for non-struct target")
	}
}

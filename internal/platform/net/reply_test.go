package net

import (
	"net/http"
	"testing"

	perr "tjmwatch/internal/platform/errors"
)

func TestErrorEnvelope(t *testing.T) {
	status, w := Error(perr.Unauthorizedf("invalid bearer token"), "r1")
	if status != http.StatusUnauthorized || w.StatusCode != status {
		t.Fatalf("status = %d / %d", status, w.StatusCode)
	}
	if w.Code != perr.ErrorCodeUnauthorized || w.Error != "invalid bearer token" || w.RequestID != "r1" {
		t.Fatalf("wire = %+v", w)
	}
	if w.Status != "Unauthorized" {
		t.Fatalf("status text = %q", w.Status)
	}
}

func TestErrorEnvelopeNil(t *testing.T) {
	status, w := Error(nil, "")
	if status != http.StatusOK || w.Code != 0 || w.Error != "" {
		t.Fatalf("nil error = %d %+v", status, w)
	}
}

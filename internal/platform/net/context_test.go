package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("RequestID = %q", got)
	}
	if RequestID(context.Background()) != "" {
		t.Fatalf("empty ctx should have no request id")
	}
	base := context.Background()
	if WithRequest(base, "") != base {
		t.Fatalf("empty id should be a noop")
	}
}

func TestSubject(t *testing.T) {
	ctx := WithSubject(context.Background(), "cron")
	if Subject(ctx) != "cron" {
		t.Fatalf("Subject = %q", Subject(ctx))
	}
	if Subject(context.Background()) != "" {
		t.Fatalf("no subject expected")
	}
}

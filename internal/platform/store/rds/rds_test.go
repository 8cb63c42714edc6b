package rds

import (
	"context"
	"strings"
	"testing"
)

func TestOpenRejectsBadURL(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "http://not-redis"})
	if err == nil || !strings.Contains(err.Error(), "parse url") {
		t.Fatalf("Open = %v, want parse url error", err)
	}
}

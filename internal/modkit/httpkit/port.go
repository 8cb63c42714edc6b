package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "tjmwatch/internal/platform/errors"
)

// SecretPort implements middleware.AuthPort with a shared bearer secret
// an empty secret disables the check and every request passes as "anonymous"
type SecretPort struct {
	secret  string
	subject string
}

// NewSecretPort builds a port that accepts "Authorization: Bearer <secret>" and names the caller subject
func NewSecretPort(secret, subject string) *SecretPort {
	return &SecretPort{secret: strings.TrimSpace(secret), subject: subject}
}

// Parse checks the Authorization header in constant time
func (p *SecretPort) Parse(r *http.Request) (string, error) {
	if p.secret == "" {
		return "anonymous", nil
	}
	raw, err := bearer(r)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare([]byte(raw), []byte(p.secret)) != 1 {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return p.subject, nil
}

// bearer extracts the token after a case-insensitive "Bearer " prefix
func bearer(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

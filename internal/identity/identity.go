package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// Source derives a stable opaque identifier for the client behind a request.
// Implementations must be deterministic for the same client and must never
// produce a reversible or personally identifying value.
type Source interface {
	Identify(r *http.Request) (string, error)
}

// HashSource derives the identifier from coarse network and agent signals:
// a salted one-way hash of client IP + User-Agent. Good enough to key a
// soft quota, useless for tracking.
type HashSource struct {
	salt string
}

func NewHashSource(salt string) *HashSource {
	return &HashSource{salt: salt}
}

func (s *HashSource) Identify(r *http.Request) (string, error) {
	ip := clientIP(r)
	agent := r.UserAgent()

	sum := sha256.Sum256([]byte(s.salt + "|" + ip + "|" + agent))
	return hex.EncodeToString(sum[:]), nil
}

// prefers proxy-forwarded headers, falls back to the socket address
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// first hop is the originating client
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}

		return strings.TrimSpace(fwd)
	}

	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

package crmapi

import (
	"net/http"

	"github.com/crmdesk/portal/internal/core/domain"
)

// authScheme is the prefix the backend expects in the Authorization header.
const authScheme = "Token"

// authTransport attaches the session token, when the request context carries
// a session, to every outgoing request. Token validity is left to the backend.
type authTransport struct {
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s, ok := domain.SessionFromContext(req.Context())
	if !ok || s.Token == "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", authScheme+" "+s.Token)
	return t.base.RoundTrip(r)
}

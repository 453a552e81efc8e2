package apiclient

import "net/http"

// bearerTransport attaches the Authorization header to every request that
// passes through the client. This is the single interception point: no
// call site sets the header itself, so a token stored after login is
// immediately visible to all subsequent requests.
type bearerTransport struct {
	source TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	if t.source != nil {
		if token := t.source.Token(); token != "" {
			// Clone before mutating, RoundTrippers must not modify the
			// caller's request.
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return next.RoundTrip(req)
}

package http

import "net/http"

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", "Bearer "+t.token)

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken adds a bearer token to every request, e.g. for a generation
// backend sitting behind an authenticating proxy. An empty token is a no-op.
func WithAuthToken(token string) HttpOpts {
	return func(c *httpConfig) {
		if token == "" {
			return
		}
		c.transports = append(c.transports, func(rt http.RoundTripper) http.RoundTripper {
			return &authTransport{
				token:     token,
				transport: rt,
			}
		})
	}
}

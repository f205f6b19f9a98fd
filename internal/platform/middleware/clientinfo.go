package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"fairmeter/pkg/requestcontext"
)

// ClientInfo records the caller's address and parsed user agent on the
// request context for audit and access logging.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientIP(r.Context(), clientIP(r))

		if raw := r.UserAgent(); raw != "" {
			ua := useragent.New(raw)
			browser, version := ua.Browser()
			ctx = requestcontext.WithClientInfo(ctx, requestcontext.ClientInfo{
				UserAgent: raw,
				Browser:   strings.TrimSpace(browser + " " + version),
				OS:        ua.OS(),
				Bot:       ua.Bot(),
			})
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers the leftmost X-Forwarded-For entry, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

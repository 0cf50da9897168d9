package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders  = "Content-Type, Authorization, Accept, Origin, Cache-Control, X-Requested-With"
	corsAllowMethods  = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsExposeHeaders = "X-Request-Id"
)

// dashboardOrigins is the set of hosts allowed to call the API from a browser.
// Hosts are compared without default ports, so "dash.example.com:443"
// matches "dash.example.com".
type dashboardOrigins map[string]struct{}

func newDashboardOrigins(hosts []string) dashboardOrigins {
	out := make(dashboardOrigins, len(hosts))
	for _, h := range hosts {
		if h = normalizeHost(h); h != "" {
			out[h] = struct{}{}
		}
	}
	return out
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, port, ok := strings.Cut(host, ":"); ok && (port == "80" || port == "443") {
		return h
	}
	return host
}

// match returns the origin to echo back, or "" when the request's origin is
// not a dashboard host. Requests without Origin fall back to Referer.
func (o dashboardOrigins) match(r *http.Request) string {
	raw := r.Header.Get("Origin")
	if raw == "" {
		raw = r.Header.Get("Referer")
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if _, ok := o[normalizeHost(u.Host)]; !ok {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// CORSMiddleware lets the configured dashboard hosts call the API with
// credentials and answers preflight requests directly.
func CORSMiddleware(hosts []string) gin.HandlerFunc {
	origins := newDashboardOrigins(hosts)

	return func(c *gin.Context) {
		if origin := origins.match(c.Request); origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

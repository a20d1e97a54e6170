package http

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
)

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"host":   r.Host,
			})

			next.ServeHTTP(w, r)

			duration := time.Since(start)
			logger.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"duration_ms": duration.Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())
					logger.Error("panic_recovered", "Panic recovered", requestID, nil, fmt.Errorf("%v", err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// HostRouter dispatches on the request hostname. A host with more than
// two labels (tony-pizza.menuqr.com) is a public menu request scoped to
// the first label; everything else goes to the management API.
type HostRouter struct {
	api    http.Handler
	public *PublicHandler
}

func NewHostRouter(api http.Handler, public *PublicHandler) *HostRouter {
	return &HostRouter{api: api, public: public}
}

func (h *HostRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if subdomain, ok := subdomainFromHost(r.Host); ok {
		h.public.Serve(w, r, subdomain)
		return
	}
	h.api.ServeHTTP(w, r)
}

func subdomainFromHost(host string) (string, bool) {
	if hostname, _, err := net.SplitHostPort(host); err == nil {
		host = hostname
	}
	labels := strings.Split(host, ".")
	if len(labels) <= 2 || labels[0] == "" {
		return "", false
	}
	return labels[0], true
}

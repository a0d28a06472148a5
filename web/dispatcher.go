package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"
)

// Target names which handler served a request.
type Target string

const (
	// TargetPrimary is the handler owning the configured URL mappings.
	TargetPrimary Target = "primary"
	// TargetFallback receives every request no mapping matched.
	TargetFallback Target = "fallback"
)

// Dispatcher is a front controller sharing one root path between two handlers.
// Requests matching a URL mapping go to the primary handler, all others to the fallback.
type Dispatcher struct {
	primary         http.Handler
	fallback        http.Handler
	mappings        *Mappings
	servletRelative bool
}

// NewDispatcher validates the handlers and mappings.
// Unless servletRelative is set, the primary handler sees the full request path,
// so its routes are declared with the mapping prefix included.
func NewDispatcher(primary, fallback http.Handler, urlMappings []string, servletRelative bool) (*Dispatcher, error) {
	if primary == nil || fallback == nil {
		return nil, ErrNilHandler
	}

	mappings, err := ParseMappings(urlMappings...)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		primary:         primary,
		fallback:        fallback,
		mappings:        mappings,
		servletRelative: servletRelative,
	}, nil
}

// Resolve returns the handler target for a request path and the path that handler sees.
func (d *Dispatcher) Resolve(requestPath string) (Target, string) {
	mapping, ok := d.mappings.Match(requestPath)
	if !ok {
		return TargetFallback, requestPath
	}

	if d.servletRelative {
		return TargetPrimary, mapping.PathWithin(requestPath)
	}

	return TargetPrimary, requestPath
}

// ServeHTTP dispatches the request and logs it with the serving target.
// A panic in either handler is logged and answered with 500 unless the response was already started.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestPath := r.URL.Path
	target, lookupPath := d.Resolve(requestPath)

	handler := d.fallback
	if target == TargetPrimary {
		handler = d.primary
	}

	if lookupPath != requestPath {
		r = withPath(r, lookupPath)
	}

	sw := &statusWriter{ResponseWriter: w}

	defer d.finish(sw, r, requestPath, target, start)

	handler.ServeHTTP(sw, r)
}

func (d *Dispatcher) finish(sw *statusWriter, r *http.Request, requestPath string, target Target, start time.Time) {
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", requestPath),
		slog.String("target", string(target)),
	}

	if rec := recover(); rec != nil {
		err, ok := rec.(error)
		if ok && err == http.ErrAbortHandler { //nolint:errorlint,err113
			panic(rec)
		}

		attrs = append(attrs,
			slog.String("panic", fmt.Sprintf("%v", rec)),
			slog.String("stack", string(debug.Stack())),
		)

		if sw.status != 0 {
			slog.Error("panic recovered after response was already written", attrs...) //nolint:gosec

			return
		}

		slog.Error("panic recovered", attrs...) //nolint:gosec // G706: message is a hardcoded constant.

		http.Error(sw, "Internal Server Error", http.StatusInternalServerError)
	}

	if sw.status == 0 {
		sw.status = http.StatusOK
	}

	attrs = append(attrs,
		slog.Int("status", sw.status),
		slog.Duration("duration", time.Since(start)),
	)

	if sw.status >= http.StatusInternalServerError {
		slog.Error("request dispatched", attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.

		return
	}

	slog.Debug("request dispatched", attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
}

// withPath returns a shallow copy of r whose URL path is replaced, like http.StripPrefix does.
func withPath(r *http.Request, requestPath string) *http.Request {
	clone := new(http.Request)
	*clone = *r
	clone.URL = new(url.URL)
	*clone.URL = *r.URL
	clone.URL.Path = requestPath
	clone.URL.RawPath = ""

	return clone
}

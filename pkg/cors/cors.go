// Package cors implements the Engine.IO handshake's CORS collaborator
// contract from spec §6.3: origin/method/header evaluation and the
// preflight-response header set for an HTTP server fronting the core
// packet/event engine.
//
// Grounded on original_source/engine/src/cors.rs (the AllOrSome<T>
// origin/header variants, the Origins exact/regex/allow_null shape, and
// the validate_origin/generate_cors_headers algorithm), adapted to the
// teacher's net/http-handler idiom (see pkg/http/webhooks).
package cors

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// AllowedOrigins selects either every origin (All) or a specific set of
// exact strings and/or regular-expression patterns, plus whether the
// empty ("null") origin is allowed.
type AllowedOrigins struct {
	All       bool
	Exact     map[string]struct{}
	Regex     []*regexp.Regexp
	AllowNull bool
}

// AllowAllOrigins returns an AllowedOrigins matching every origin.
func AllowAllOrigins() AllowedOrigins {
	return AllowedOrigins{All: true}
}

// AllowedHeaders selects either every request header (All) or a specific
// set of header names.
type AllowedHeaders struct {
	All bool
	Set map[string]struct{}
}

// AllowAllHeaders returns an AllowedHeaders matching every header.
func AllowAllHeaders() AllowedHeaders {
	return AllowedHeaders{All: true}
}

// Options configures CORS evaluation, per spec §6.3.
type Options struct {
	AllowedOrigins   AllowedOrigins
	AllowedMethods   map[string]struct{}
	AllowedHeaders   AllowedHeaders
	AllowCredentials bool
	ExposeHeaders    []string
	MaxAge           int // seconds; <= 0 omits the header
	SendWildcard     bool
}

// DefaultOptions mirrors the zero-value-friendly defaults of the source's
// CorsOptions: no origins allowed until configured, GET/POST/OPTIONS
// permitted, no credentials, no wildcard.
func DefaultOptions() Options {
	return Options{
		AllowedMethods: map[string]struct{}{
			http.MethodGet:     {},
			http.MethodPost:    {},
			http.MethodOptions: {},
		},
	}
}

// Middleware evaluates CORS for incoming requests and answers preflight
// requests directly, per spec §6.3.
type Middleware struct {
	opts Options
}

// New returns a Middleware configured with opts.
func New(opts Options) *Middleware {
	return &Middleware{opts: opts}
}

// IsPreflight reports whether r is a CORS preflight request: an OPTIONS
// request carrying both Origin and Access-Control-Request-Method.
func (m *Middleware) IsPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// ValidateOrigin reports whether origin is allowed under m's configured
// AllowedOrigins.
func (m *Middleware) ValidateOrigin(origin string) bool {
	ao := m.opts.AllowedOrigins
	if ao.All {
		return true
	}
	if origin == "" {
		return ao.AllowNull
	}
	if _, ok := ao.Exact[origin]; ok {
		return true
	}
	for _, re := range ao.Regex {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// Headers computes the CORS response headers for r, per spec §6.3's
// security rule: when AllowCredentials is true and the effective origin
// would be the wildcard "*", the credentials header is never emitted.
func (m *Middleware) Headers(r *http.Request) http.Header {
	h := http.Header{}

	origin := r.Header.Get("Origin")
	wildcard := m.opts.SendWildcard && m.opts.AllowedOrigins.All
	if origin != "" && m.ValidateOrigin(origin) {
		if wildcard {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
		}
	}

	if len(m.opts.AllowedMethods) > 0 {
		methods := make([]string, 0, len(m.opts.AllowedMethods))
		for meth := range m.opts.AllowedMethods {
			methods = append(methods, meth)
		}
		h.Set("Access-Control-Allow-Methods", strings.Join(methods, ", "))
	}

	if m.opts.AllowedHeaders.All {
		h.Set("Access-Control-Allow-Headers", "*")
	} else if len(m.opts.AllowedHeaders.Set) > 0 {
		names := make([]string, 0, len(m.opts.AllowedHeaders.Set))
		for name := range m.opts.AllowedHeaders.Set {
			names = append(names, name)
		}
		h.Set("Access-Control-Allow-Headers", strings.Join(names, ", "))
	}

	// Security: never emit credentials alongside a wildcard origin.
	if m.opts.AllowCredentials && !wildcard {
		h.Set("Access-Control-Allow-Credentials", "true")
	}

	if len(m.opts.ExposeHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(m.opts.ExposeHeaders, ", "))
	}

	if m.opts.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(m.opts.MaxAge))
	}

	return h
}

// Handle applies CORS headers to w for r, and answers preflight requests
// directly, returning true if it wrote a complete response (the caller
// should not invoke the next handler in that case).
func (m *Middleware) Handle(w http.ResponseWriter, r *http.Request) (handled bool) {
	for name, values := range m.Headers(r) {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	if m.IsPreflight(r) {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

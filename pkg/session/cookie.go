// Package session implements the Engine.IO handshake's signed session
// cookie collaborator contract from spec §6.3: RFC 6265 cookie
// serialization plus a JWT-backed session token binding a cookie to a
// server-minted session ID.
//
// Grounded on original_source/engine/src/cookie.rs for the
// CookieSerializeOptions field set (domain, expires, http_only, max_age,
// partitioned, path, priority, same_site, secure) and its Priority/SameSite
// string enums; the session ID minting is grounded on
// internal/thrippy/flags.go's use of github.com/lithammer/shortuuid/v4,
// and the signed token on github.com/golang-jwt/jwt/v5.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is the RFC-west-cookie-priority-00 Priority attribute.
type Priority int

const (
	// PriorityUnset omits the Priority attribute.
	PriorityUnset Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return ""
	}
}

// SameSite is the SameSite Set-Cookie attribute.
type SameSite int

const (
	// SameSiteUnset omits the SameSite attribute.
	SameSiteUnset SameSite = iota
	SameSiteStrict
	SameSiteLax
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteStrict:
		return "Strict"
	case SameSiteLax:
		return "Lax"
	case SameSiteNone:
		return "None"
	default:
		return ""
	}
}

// CookieOptions mirrors the RFC 6265 attributes the source's
// CookieSerializeOptions exposes. Zero values mean "attribute omitted",
// except HTTPOnly, which the core's handshake cookie defaults to true
// (spec §6.3).
type CookieOptions struct {
	Domain      string
	Expires     time.Time // zero value omits Expires
	HTTPOnly    bool
	MaxAge      int // seconds; <= 0 omits Max-Age
	Partitioned bool
	Path        string
	Priority    Priority
	SameSite    SameSite
	Secure      bool
}

// DefaultCookieOptions returns the core handshake cookie's defaults:
// HTTPOnly set and Path "/", everything else omitted.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{HTTPOnly: true, Path: "/"}
}

// Serialize renders name=value plus opts' attributes as a Set-Cookie
// header value, per RFC 6265 §4.1.
func Serialize(name, value string, opts CookieOptions) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)

	if opts.Domain != "" {
		fmt.Fprintf(&b, "; Domain=%s", opts.Domain)
	}
	if !opts.Expires.IsZero() {
		fmt.Fprintf(&b, "; Expires=%s", opts.Expires.UTC().Format(http1123))
	}
	if opts.MaxAge > 0 {
		fmt.Fprintf(&b, "; Max-Age=%s", strconv.Itoa(opts.MaxAge))
	}
	if opts.Path != "" {
		fmt.Fprintf(&b, "; Path=%s", opts.Path)
	}
	if opts.SameSite != SameSiteUnset {
		fmt.Fprintf(&b, "; SameSite=%s", opts.SameSite)
	}
	if opts.Priority != PriorityUnset {
		fmt.Fprintf(&b, "; Priority=%s", opts.Priority)
	}
	if opts.Secure {
		b.WriteString("; Secure")
	}
	if opts.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	if opts.Partitioned {
		b.WriteString("; Partitioned")
	}
	return b.String()
}

// http1123 is RFC 6265's required Expires date format (a fixed-offset
// variant of RFC 1123).
const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"

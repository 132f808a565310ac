package utils

import (
	"net"
	"net/url"
	"strings"
)

// OriginPolicy decides which Origin header values receive CORS headers.
// Configured origins are matched exactly (scheme, host and port); local and
// private-network origins are always allowed.
type OriginPolicy struct {
	allowed map[string]bool
}

// NewOriginPolicy builds a policy from the configured origins. A "*" entry
// allows every origin.
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]bool, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o != "" {
			p.allowed[o] = true
		}
	}
	return p
}

// Allows reports whether origin should be trusted.
func (p *OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p != nil && (p.allowed["*"] || p.allowed[strings.TrimRight(strings.ToLower(origin), "/")]) {
		return true
	}
	return IsAllowedOrigin(origin)
}

// IsAllowedOrigin checks whether an Origin header value points at the local
// machine or a private network: localhost, RFC1918 and link-local IPs, .local
// hostnames and single-label hostnames.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()
	switch {
	case hostname == "localhost":
		return true
	case strings.HasSuffix(hostname, ".local"):
		return true
	case !strings.Contains(hostname, ".") && !strings.Contains(hostname, ":"):
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
	}
	return false
}

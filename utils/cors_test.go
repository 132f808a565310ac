package utils

import "testing"

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin  string
		allowed bool
	}{
		// Allowed: localhost
		{"http://localhost", true},
		{"http://localhost:5173", true},

		// Allowed: private IPs
		{"http://192.168.1.1:8080", true},
		{"http://10.0.0.1", true},
		{"http://172.31.255.255:443", true},
		{"http://127.0.0.1:3000", true},
		{"http://[::1]:8080", true},

		// Allowed: link-local
		{"http://169.254.1.1", true},

		// Allowed: .local and single-label hostnames
		{"http://devbox.local:8080", true},
		{"http://devbox:8080", true},

		// Blocked: public
		{"http://example.com", false},
		{"https://devroutine.example.com.evil.io", false},
		{"http://8.8.8.8", false},

		// Blocked: empty/invalid
		{"", false},
		{"not-a-url", false},
	}

	for _, tt := range tests {
		got := IsAllowedOrigin(tt.origin)
		if got != tt.allowed {
			t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.allowed)
		}
	}
}

func TestOriginPolicy(t *testing.T) {
	p := NewOriginPolicy([]string{"https://routine.example.com/", " "})

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://routine.example.com", true},
		{"https://ROUTINE.example.com", true},
		{"http://routine.example.com", false},
		{"https://other.example.com", false},
		{"http://localhost:3000", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := p.Allows(tt.origin); got != tt.allowed {
			t.Errorf("Allows(%q) = %v, want %v", tt.origin, got, tt.allowed)
		}
	}

	if !NewOriginPolicy([]string{"*"}).Allows("https://anything.example.org") {
		t.Error("wildcard should allow every origin")
	}
}

package main

import "testing"

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base     string
		path     string
		expected string
	}{
		{"http://localhost:8080", "/ready", "http://localhost:8080/ready"},
		{"http://localhost:8080/", "/ready", "http://localhost:8080/ready"},
		{"http://api.example.com//", "/api/v1/reports/dashboard", "http://api.example.com/api/v1/reports/dashboard"},
	}

	for _, tt := range tests {
		if got := joinURL(tt.base, tt.path); got != tt.expected {
			t.Fatalf("joinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.expected)
		}
	}
}

package scraper

import (
	"testing"

	"github.com/hashlens/hashlens/models"
)

func TestNormalizeCookie(t *testing.T) {
	tests := []struct {
		name       string
		in         models.Cookie
		wantDomain string
		wantPath   string
	}{
		{
			name:       "defaults domain and path",
			in:         models.Cookie{Name: "sessionid", Value: "abc123"},
			wantDomain: ".instagram.com",
			wantPath:   "/",
		},
		{
			name:       "keeps explicit domain",
			in:         models.Cookie{Name: "csrftoken", Value: "tok", Domain: "www.instagram.com"},
			wantDomain: "www.instagram.com",
			wantPath:   "/",
		},
		{
			name:       "keeps explicit path",
			in:         models.Cookie{Name: "mid", Value: "x", Path: "/accounts"},
			wantDomain: ".instagram.com",
			wantPath:   "/accounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCookie(tt.in)
			if got.Name != tt.in.Name || got.Value != tt.in.Value {
				t.Errorf("name/value = %q/%q, want %q/%q", got.Name, got.Value, tt.in.Name, tt.in.Value)
			}
			if got.Domain != tt.wantDomain {
				t.Errorf("domain = %q, want %q", got.Domain, tt.wantDomain)
			}
			if got.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", got.Path, tt.wantPath)
			}
		})
	}
}

func TestConsentCookie(t *testing.T) {
	if consentCookie.Name != "ig_nrcb" || consentCookie.Value != "1" {
		t.Errorf("consent cookie = %s=%s, want ig_nrcb=1", consentCookie.Name, consentCookie.Value)
	}
	if consentCookie.Domain != defaultCookieDomain {
		t.Errorf("consent cookie domain = %q, want %q", consentCookie.Domain, defaultCookieDomain)
	}
}

// ABOUTME: Tests for root command configuration
// ABOUTME: Verifies API URL resolution priority

package cmd

import (
	"os"
	"testing"
)

func TestGetAPIURL_Default(t *testing.T) {
	apiURL = ""
	os.Unsetenv("PRICING_API_URL")

	if got := GetAPIURL(); got != defaultAPIURL {
		t.Errorf("expected default %s, got %s", defaultAPIURL, got)
	}
}

func TestGetAPIURL_EnvOverridesDefault(t *testing.T) {
	apiURL = ""
	os.Setenv("PRICING_API_URL", "http://env.example:9090")
	defer os.Unsetenv("PRICING_API_URL")

	if got := GetAPIURL(); got != "http://env.example:9090" {
		t.Errorf("expected env URL, got %s", got)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	apiURL = "http://flag.example:7070"
	defer func() { apiURL = "" }()
	os.Setenv("PRICING_API_URL", "http://env.example:9090")
	defer os.Unsetenv("PRICING_API_URL")

	if got := GetAPIURL(); got != "http://flag.example:7070" {
		t.Errorf("expected flag URL, got %s", got)
	}
}

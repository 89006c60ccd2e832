package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_ENV", "HTTP_HOST", "HTTP_PORT", "DB_DSN", "JWT_ACCESS_SECRET", "CORS_ALLOWED_ORIGINS", "CONTRACTOR_API_URL", "CONTRACTOR_SUBMIT_TIMEOUT", "IMAGE_LOOKUP_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "development" {
		t.Fatalf("Environment = %q", cfg.Environment)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 7090 {
		t.Fatalf("HTTP = %+v", cfg.HTTP)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("CORS = %+v", cfg.CORS)
	}
	if cfg.Client.SubmitTimeout != 30*time.Second || cfg.Client.ImageLookupTimeout != 10*time.Second {
		t.Fatalf("Client = %+v", cfg.Client)
	}
	if err := cfg.ValidateServer(); err == nil {
		t.Fatal("expected server validation to fail without DB_DSN")
	}
	if err := cfg.ValidateClient(); err == nil {
		t.Fatal("expected client validation to fail without CONTRACTOR_API_URL")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("DB_DSN", "postgres://localhost/contractors")
	t.Setenv("JWT_ACCESS_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("CONTRACTOR_API_URL", "https://api.example")
	t.Setenv("CONTRACTOR_SUBMIT_TIMEOUT", "5s")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "production" || cfg.HTTP.Port != 8081 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := cfg.CORS.AllowedOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("origins = %v", got)
	}
	if cfg.Client.SubmitTimeout != 5*time.Second {
		t.Fatalf("SubmitTimeout = %v", cfg.Client.SubmitTimeout)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Fatalf("ValidateServer: %v", err)
	}
	if err := cfg.ValidateClient(); err != nil {
		t.Fatalf("ValidateClient: %v", err)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONTRACTOR_API_URL", "https://env.example")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.Duration("timeout", 0, "")
	fs.String("unrelated", "", "")
	if err := fs.Parse([]string{"--api-url=https://flag.example"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Client.APIURL != "https://flag.example" {
		t.Fatalf("APIURL = %q", cfg.Client.APIURL)
	}
	if cfg.Client.SubmitTimeout != 30*time.Second {
		t.Fatalf("unset flag must not override default, got %v", cfg.Client.SubmitTimeout)
	}
}

func TestParseList(t *testing.T) {
	if parseList("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
	got := parseList("a, b ,,c")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("parseList = %v", got)
	}
}

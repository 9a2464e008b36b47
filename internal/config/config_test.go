package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
}

func TestLoadServerConfigForms(t *testing.T) {
	cases := []struct {
		port string
		addr string
	}{
		{"9090", ":9090"},
		{":9090", ":9090"},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
	}
	for _, tc := range cases {
		t.Setenv("PORT", tc.port)
		cfg, err := loadServerConfig()
		if err != nil {
			t.Fatalf("PORT=%q: %v", tc.port, err)
		}
		if cfg.Addr != tc.addr {
			t.Fatalf("PORT=%q: got %q, want %q", tc.port, cfg.Addr, tc.addr)
		}
	}

	t.Setenv("PORT", "not a port")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected an error for malformed PORT")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	if (AIConfig{}).Enabled() {
		t.Fatal("empty config must not be enabled")
	}
	if (AIConfig{Model: "m"}).Enabled() {
		t.Fatal("model without credentials must not be enabled")
	}
	if !(AIConfig{Model: "m", APIKey: "k"}).Enabled() {
		t.Fatal("api key plus model must be enabled")
	}
	if !(AIConfig{Model: "m", AccessKey: "ak", SecretKey: "sk"}).Enabled() {
		t.Fatal("ak/sk pair plus model must be enabled")
	}
	if (AIConfig{Model: "m", AccessKey: "ak"}).Enabled() {
		t.Fatal("half an ak/sk pair must not be enabled")
	}
}

func TestLoadDialogueConfig(t *testing.T) {
	t.Setenv("EXCHANGE_TIMEOUT_SECONDS", "")
	cfg, err := loadDialogueConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.ExchangeTimeout != 120*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.ExchangeTimeout)
	}

	t.Setenv("EXCHANGE_TIMEOUT_SECONDS", "30")
	cfg, err = loadDialogueConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.ExchangeTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.ExchangeTimeout)
	}

	t.Setenv("EXCHANGE_TIMEOUT_SECONDS", "0")
	if _, err := loadDialogueConfig(); err == nil {
		t.Fatal("expected an error for a non-positive timeout")
	}

	t.Setenv("EXCHANGE_TIMEOUT_SECONDS", "soon")
	if _, err := loadDialogueConfig(); err == nil {
		t.Fatal("expected an error for a malformed timeout")
	}
}

func TestParseOptionalEnvHelpers(t *testing.T) {
	t.Setenv("ARK_TEMPERATURE", "0.7")
	temp, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if temp == nil || *temp != 0.7 {
		t.Fatalf("unexpected value: %v", temp)
	}

	t.Setenv("ARK_TEMPERATURE", "  ")
	temp, err = parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil || temp != nil {
		t.Fatalf("blank value must read as unset, got %v / %v", temp, err)
	}

	t.Setenv("ARK_MAX_TOKENS", "not-a-number")
	if _, err := parseOptionalIntEnv("ARK_MAX_TOKENS"); err == nil {
		t.Fatal("expected an error for a malformed int")
	}
}

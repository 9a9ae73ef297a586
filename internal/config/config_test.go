package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d", cfg.WorkerCount)
	}
	if cfg.HeadingScoreThreshold != 2.5 {
		t.Errorf("HeadingScoreThreshold = %v", cfg.HeadingScoreThreshold)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WEIGHT_LEXICAL", "0.5")
	t.Setenv("WEIGHT_HEADING", "0.3")
	t.Setenv("WEIGHT_DOMAIN", "0.2")
	t.Setenv("QUALITY_SIGNALS", "false")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.WeightLexical != 0.5 || cfg.WeightHeading != 0.3 || cfg.WeightDomain != 0.2 {
		t.Errorf("weights = %v %v %v", cfg.WeightLexical, cfg.WeightHeading, cfg.WeightDomain)
	}
	if cfg.QualitySignals {
		t.Error("QUALITY_SIGNALS=false not applied")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := Load()
	cfg.WeightLexical = 0.9
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for weights not summing to 1")
	}
	cfg = Load()
	cfg.WeightDomain = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

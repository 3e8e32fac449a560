package main

import "testing"

func TestValidateConfigOK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Computor = "127.0.0.1:21841"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfigRejectsMissingComputor(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateConfigRejectsBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Computor = "127.0.0.1:21841"
	cfg.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateConfigRejectsZeroConsumers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Computor = "127.0.0.1:21841"
	cfg.Consumers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}

/*
NAME
  config_test.go

DESCRIPTION
  config_test.go contains testing for functionality found in config.go.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := Config{
		MaxMarkerHamming:      1,
		MinPreambleLen:        8,
		EnableHammingFallback: true,
		StrictMode:            true,
	}
	got := Default()
	if !cmp.Equal(got, want) {
		t.Errorf("Default() mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestLoadFallsBackToDefaultWithoutConfigFile(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if !cmp.Equal(got, Default()) {
		t.Errorf("Load(\"\") = %+v, want Default() = %+v", got, Default())
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	os.Setenv("DURAPACK_SCANNER_MAX_MARKER_HAMMING", "3")
	defer os.Unsetenv("DURAPACK_SCANNER_MAX_MARKER_HAMMING")

	got, err := Load("")
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if got.MaxMarkerHamming != 3 {
		t.Errorf("MaxMarkerHamming = %d, want 3 (from env override)", got.MaxMarkerHamming)
	}
}

func TestLoadRejectsUnreadableConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/durapack.yaml")
	if err == nil {
		t.Fatalf("expected error for unreadable config file, got nil")
	}
}

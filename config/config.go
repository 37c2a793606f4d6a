/*
NAME
  config.go

DESCRIPTION
  config.go loads the scanner and linker's tunable parameters with
  spf13/viper, in the style cybergarage-go-matter binds its own CLI
  parameters: an env prefix, defaults set up-front, and typed getters.
  Durapack has no CLI surface (excluded per the spec's scope), so this
  package is consumed programmatically rather than bound to flags.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config loads Durapack's runtime-tunable scanner and linker
// parameters from the environment (and, optionally, a config file),
// via spf13/viper.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Keys used both as viper keys and as DURAPACK_-prefixed env vars
// (e.g. scanner.max_marker_hamming -> DURAPACK_SCANNER_MAX_MARKER_HAMMING).
const (
	KeyMaxMarkerHamming = "scanner.max_marker_hamming"
	KeyMinPreambleLen   = "scanner.min_preamble_len"
	KeyHammingFallback  = "scanner.enable_hamming_fallback"
	KeyStrictMode       = "decoder.strict_mode"
)

// Config holds the resolved tunables. The zero value is not meaningful;
// use Load or Default.
type Config struct {
	// MaxMarkerHamming bounds the bounded-Hamming fallback strategy's
	// tolerance (§4.3). Stable default is durapack.MaxMarkerHamming.
	MaxMarkerHamming int

	// MinPreambleLen is the minimum preamble run length the scanner will
	// recognize as a resync aid (§4.3). Stable default is
	// durapack.MinPreambleLen.
	MinPreambleLen int

	// EnableHammingFallback gates the O(N)-per-slide bounded-Hamming
	// strategy, per the "Scanner performance" design note recommending
	// it be limited to a configurable flag.
	EnableHammingFallback bool

	// StrictMode governs how ScanWithConfig's decoder treats the
	// both-integrity-flags-set case (§9, Open Question 1): true rejects
	// with ErrInvalidFlags, false accepts with BLAKE3 precedence. Decode
	// and DecodeZeroCopy do not read Config.
	StrictMode bool
}

// Default returns the stable, spec-recommended configuration: strict
// mode on, Hamming fallback enabled, and the package-level constants
// for marker tolerance and preamble length.
func Default() Config {
	return Config{
		MaxMarkerHamming:      1,
		MinPreambleLen:        8,
		EnableHammingFallback: true,
		StrictMode:            true,
	}
}

// Load reads tunables from the environment (prefix DURAPACK_) and, if
// configPath is non-empty, from a config file at that path, falling
// back to Default for anything unset.
func Load(configPath string) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyMaxMarkerHamming, d.MaxMarkerHamming)
	v.SetDefault(KeyMinPreambleLen, d.MinPreambleLen)
	v.SetDefault(KeyHammingFallback, d.EnableHammingFallback)
	v.SetDefault(KeyStrictMode, d.StrictMode)

	v.SetEnvPrefix("DURAPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "could not read durapack config file")
		}
	}

	return Config{
		MaxMarkerHamming:      v.GetInt(KeyMaxMarkerHamming),
		MinPreambleLen:        v.GetInt(KeyMinPreambleLen),
		EnableHammingFallback: v.GetBool(KeyHammingFallback),
		StrictMode:            v.GetBool(KeyStrictMode),
	}, nil
}

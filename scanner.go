/*
NAME
  scanner.go

DESCRIPTION
  scanner.go implements the Durapack stream scanner: recovery of frames
  from an arbitrary byte buffer of unknown cleanliness via exact marker
  search, sync/preamble-assisted resync, and a bounded-Hamming fallback.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package durapack

import (
	"bytes"

	"github.com/ausocean/durapack/config"
	"github.com/ausocean/durapack/internal/logging"
	"github.com/ausocean/durapack/internal/metrics"
)

// Scan recovers every syntactically valid frame from buf using the
// default configuration (strict decode mode, Hamming fallback enabled).
// It never panics and never mutates buf (§4.3 invariants).
func Scan(buf []byte) ([]LocatedFrame, ScanStatistics) {
	return ScanWithConfig(buf, config.Default(), logging.Discard)
}

// ScanWithConfig is Scan with explicit tunables and a diagnostic logger.
func ScanWithConfig(buf []byte, cfg config.Config, log logging.Logger) ([]LocatedFrame, ScanStatistics) {
	if log == nil {
		log = logging.Discard
	}

	var stats ScanStatistics
	stats.BytesScanned = len(buf)

	var out []LocatedFrame
	pos := 0
	for pos <= len(buf)-MarkerSize {
		cand, hasPrefix, hamDist := findCandidate(buf, pos, cfg)
		if cand < 0 {
			break
		}
		stats.MarkersFound++

		decodeBuf := buf[cand:]
		if hamDist > 0 {
			// The candidate marker differs from FrameMarker by a small
			// number of bits (tolerated resync); repair it in a private
			// copy so the strict decoder, which requires an exact
			// marker, can still validate the remainder of the frame.
			repaired := append([]byte(nil), decodeBuf...)
			copy(repaired[:MarkerSize], FrameMarker[:])
			decodeBuf = repaired
		}

		f, n, err := decode(decodeBuf, DecodeOptions{StrictMode: cfg.StrictMode}, false)
		if err != nil {
			stats.DecodeFailures++
			if _, isEOF := err.(*ErrUnexpectedEOF); isEOF {
				stats.Truncations++
			}
			log.Debug("candidate failed strict decode", "offset", cand, "error", err)
			pos = cand + 1
			continue
		}

		conf := scoreConfidence(&f, hamDist, hasPrefix, cand, out)
		out = append(out, LocatedFrame{Frame: f, Offset: cand, Confidence: conf})
		stats.FramesFound++
		pos = cand + n
	}

	metrics.ObserveScan(stats.BytesScanned, stats.MarkersFound, stats.FramesFound, stats.DecodeFailures)
	log.Info("scan complete", "bytes", stats.BytesScanned, "frames", stats.FramesFound, "failures", stats.DecodeFailures)
	return out, stats
}

// findCandidate locates the next marker candidate at or after pos,
// returning the earlier of the exact-match and sync/preamble-assisted
// hits; the bounded-Hamming fallback (if enabled) is tried only when
// neither of those finds a marker. hasPrefix reports whether a sync word or preamble run was
// found immediately before the candidate; hamDist is the Hamming
// distance used (0 for an exact match).
func findCandidate(buf []byte, pos int, cfg config.Config) (offset int, hasPrefix bool, hamDist int) {
	exact := indexMarker(buf, pos)
	sync, syncHasPrefix := indexPrefixedMarker(buf, pos, cfg.MinPreambleLen)

	best := -1
	best = minNonNegative(exact, sync)
	if best >= 0 {
		return best, syncHasPrefix && sync == best, 0
	}

	if !cfg.EnableHammingFallback {
		return -1, false, 0
	}
	return hammingSearch(buf, pos, cfg.MaxMarkerHamming)
}

func minNonNegative(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// indexMarker returns the offset (absolute into buf) of the next exact
// FrameMarker occurrence at or after pos, or -1.
func indexMarker(buf []byte, pos int) int {
	if pos >= len(buf) {
		return -1
	}
	idx := bytes.Index(buf[pos:], FrameMarker[:])
	if idx < 0 {
		return -1
	}
	return pos + idx
}

// indexPrefixedMarker returns the offset of the earliest exact marker
// at or after pos that is immediately preceded by RobustSyncWord or by
// a run of at least minPreambleLen PreamblePattern bytes.
func indexPrefixedMarker(buf []byte, pos int, minPreambleLen int) (int, bool) {
	search := pos
	for {
		idx := indexMarker(buf, search)
		if idx < 0 {
			return -1, false
		}
		if hasSyncPrefix(buf, idx) || hasPreamblePrefix(buf, idx, minPreambleLen) {
			return idx, true
		}
		search = idx + 1
	}
}

func hasSyncPrefix(buf []byte, markerOffset int) bool {
	start := markerOffset - len(RobustSyncWord)
	if start < 0 {
		return false
	}
	return bytes.Equal(buf[start:markerOffset], RobustSyncWord[:])
}

func hasPreamblePrefix(buf []byte, markerOffset, minPreambleLen int) bool {
	n := 0
	for i := markerOffset - 1; i >= 0 && buf[i] == PreamblePattern; i-- {
		n++
	}
	return n >= minPreambleLen
}

// hammingSearch slides a 4-byte window from pos to the end of buf,
// accepting the first position whose Hamming distance to FrameMarker is
// within [1, maxHamming]. Exact matches (distance 0) are strategy 1's
// responsibility and are skipped here.
func hammingSearch(buf []byte, pos, maxHamming int) (int, bool, int) {
	for i := pos; i <= len(buf)-MarkerSize; i++ {
		d := hammingDistance4(buf[i:i+MarkerSize], FrameMarker[:])
		if d > 0 && d <= maxHamming {
			return i, false, d
		}
	}
	return -1, false, 0
}

// hammingDistance4 returns the bit-level Hamming distance between two
// 4-byte slices.
func hammingDistance4(a, b []byte) int {
	d := 0
	for i := 0; i < MarkerSize; i++ {
		x := a[i] ^ b[i]
		for x != 0 {
			d += int(x & 1)
			x >>= 1
		}
	}
	return d
}

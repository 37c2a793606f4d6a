/*
NAME
  metrics.go

DESCRIPTION
  metrics.go instruments Durapack's scanner and linker with Prometheus
  counters, in the style of go-ampio-server's internal/metrics package:
  package-level promauto counters, two small Observe helpers that Add to
  them so call sites stay simple, and no registry plumbing exposed to
  callers.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package metrics exposes Prometheus counters for the scan and link
// pipeline. The counters are registered with the default Prometheus
// registry when the package is loaded; the durapack scanner and linker
// import it, and every Scan and Link call adds to the counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_frames_recovered_total",
		Help: "Total frames successfully decoded by the scanner.",
	})
	DecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_decode_failures_total",
		Help: "Total candidate marker positions that failed strict decode during a scan.",
	})
	MarkersFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_markers_found_total",
		Help: "Total marker candidates located by the scanner (exact, sync-assisted or Hamming-tolerant).",
	})
	BytesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_bytes_scanned_total",
		Help: "Total input bytes processed by Scan.",
	})
	Gaps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_timeline_gaps_total",
		Help: "Total gaps reported across all Link calls.",
	})
	Orphans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_timeline_orphans_total",
		Help: "Total orphan frames reported across all Link calls.",
	})
	Duplicates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "durapack_duplicate_frames_total",
		Help: "Total duplicate frame_id occurrences dropped by the linker.",
	})
)

// ObserveScan records the outcome of one Scan call.
func ObserveScan(bytesScanned, markers, frames, failures int) {
	BytesScanned.Add(float64(bytesScanned))
	MarkersFound.Add(float64(markers))
	FramesRecovered.Add(float64(frames))
	DecodeFailures.Add(float64(failures))
}

// ObserveTimeline records the outcome of one Link call.
func ObserveTimeline(gaps, orphans, duplicates int) {
	Gaps.Add(float64(gaps))
	Orphans.Add(float64(orphans))
	Duplicates.Add(float64(duplicates))
}

/*
NAME
  metrics_test.go

DESCRIPTION
  metrics_test.go contains testing for functionality found in
  metrics.go.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveScanIncrementsCounters(t *testing.T) {
	before := testutil.ToFloat64(FramesRecovered)

	ObserveScan(100, 2, 2, 0)

	after := testutil.ToFloat64(FramesRecovered)
	if after != before+2 {
		t.Errorf("FramesRecovered = %v, want %v", after, before+2)
	}
}

func TestObserveTimelineIncrementsCounters(t *testing.T) {
	beforeGaps := testutil.ToFloat64(Gaps)
	beforeOrphans := testutil.ToFloat64(Orphans)
	beforeDuplicates := testutil.ToFloat64(Duplicates)

	ObserveTimeline(1, 2, 3)

	if got := testutil.ToFloat64(Gaps); got != beforeGaps+1 {
		t.Errorf("Gaps = %v, want %v", got, beforeGaps+1)
	}
	if got := testutil.ToFloat64(Orphans); got != beforeOrphans+2 {
		t.Errorf("Orphans = %v, want %v", got, beforeOrphans+2)
	}
	if got := testutil.ToFloat64(Duplicates); got != beforeDuplicates+3 {
		t.Errorf("Duplicates = %v, want %v", got, beforeDuplicates+3)
	}
}

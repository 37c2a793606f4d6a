/*
NAME
  analyzer_test.go

DESCRIPTION
  analyzer_test.go contains testing for functionality found in
  analyzer.go.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package durapack

import "testing"

func TestAnalyzeClassifiesMissingByIdGap(t *testing.T) {
	frames := frameChain(t, 3)
	tl := Link([]Frame{frames[0], frames[2]}) // frame 2 missing: S4.

	rep := Analyze(tl)

	if len(rep.GapDetails) != 1 {
		t.Fatalf("got %d gap details, want 1", len(rep.GapDetails))
	}
	if rep.GapDetails[0].Reason != MissingById {
		t.Errorf("Reason = %v, want MissingById", rep.GapDetails[0].Reason)
	}
}

func TestAnalyzeClassifiesBrokenBacklinkGap(t *testing.T) {
	frames := frameChain(t, 2)
	frames[1].PrevHash[0] ^= 0xff // contiguous ids, but the back-link no longer matches.

	tl := Link(frames)
	rep := Analyze(tl)

	if len(rep.GapDetails) != 1 {
		t.Fatalf("got %d gap details, want 1", len(rep.GapDetails))
	}
	if rep.GapDetails[0].Reason != BrokenBacklink {
		t.Errorf("Reason = %v, want BrokenBacklink", rep.GapDetails[0].Reason)
	}
}

func TestAnalyzeOrphanClusters(t *testing.T) {
	// Two orphan frames, the second of which references the first's
	// hash, form one cluster; neither attaches to any chain root.
	a, aRaw, err := NewFrameBuilder(10).Payload([]byte("a")).BLAKE3().PrevHash([32]byte{9}).BuildStruct()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	aHash := ComputeFrameHash(aRaw)
	b, _, err := NewFrameBuilder(11).Payload([]byte("b")).BLAKE3().PrevHash(aHash).BuildStruct()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	tl := Link([]Frame{a, b})
	if len(tl.Orphans) != 2 {
		t.Fatalf("got %d orphans, want 2", len(tl.Orphans))
	}

	rep := Analyze(tl)
	if len(rep.OrphanClusters) != 1 {
		t.Fatalf("got %d orphan clusters, want 1", len(rep.OrphanClusters))
	}
	if len(rep.OrphanClusters[0].Frames) != 2 {
		t.Errorf("cluster size = %d, want 2", len(rep.OrphanClusters[0].Frames))
	}
}

func TestAnalyzeRecipes(t *testing.T) {
	frames := frameChain(t, 3)
	tl := Link([]Frame{frames[0], frames[2]})
	rep := Analyze(tl)

	if len(rep.Recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(rep.Recipes))
	}
	if rep.Recipes[0].Kind != InsertParityFrame {
		t.Errorf("Recipe.Kind = %v, want InsertParityFrame", rep.Recipes[0].Kind)
	}
}

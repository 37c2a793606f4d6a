/*
NAME
  linker.go

DESCRIPTION
  linker.go reconstructs a Timeline from an unordered collection of
  Frames (or LocatedFrames): deduplicating by frame_id, walking hash
  back-links forward from chain roots, and classifying whatever is left
  over as gaps, orphans, duplicates or conflicts.

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
	"sort"

	"github.com/ausocean/durapack/internal/logging"
	"github.com/ausocean/durapack/internal/metrics"
)

// Gap marks a position where timeline continuity is broken: either the
// chain's hash back-link doesn't validate, or frame_id is
// non-contiguous (or both). The additional fields are raw signals the
// analyzer uses to classify the gap's reason; the linker itself assigns
// no reason tag.
type Gap struct {
	BeforeID   uint64
	AfterID    uint64
	Confidence float64

	BeforeOffset  int
	AfterOffset   int
	IDsContiguous bool
	HashLinked    bool
	VersionsMatch bool
}

// ConflictKind distinguishes the two ways §4.4 step 6 can detect a
// conflict.
type ConflictKind int

const (
	// ConflictFork: two distinct frames both claim the same prev_hash.
	ConflictFork ConflictKind = iota
	// ConflictDuplicateID: two frames share a frame_id but differ in
	// content (as opposed to a true duplicate, which is byte-identical).
	ConflictDuplicateID
)

// Conflict records one detected conflict and the offsets of the frames
// involved.
type Conflict struct {
	Kind     ConflictKind
	FrameID  uint64   // set for ConflictDuplicateID
	PrevHash [32]byte // set for ConflictFork
	Offsets  []int
}

// Timeline is the immutable result of Link: a chain-ordered sequence of
// frames plus everything the linker could not cleanly place.
type Timeline struct {
	Frames     []Frame
	Gaps       []Gap
	Orphans    []Frame
	Duplicates []DuplicateFrame
	Conflicts  []Conflict
}

// Link reconstructs a Timeline from frames, treating slice order as
// scan order (offset i, confidence 1.0) for duplicate tie-breaking.
func Link(frames []Frame) Timeline {
	located := make([]LocatedFrame, len(frames))
	for i, f := range frames {
		located[i] = LocatedFrame{Frame: f, Offset: i, Confidence: 1.0}
	}
	return LinkLocated(located)
}

// LinkLocated reconstructs a Timeline from LocatedFrames, using their
// real offsets and confidences for tie-breaking and gap-confidence
// computation.
func LinkLocated(located []LocatedFrame) Timeline {
	return LinkLocatedWithLogger(located, logging.Discard)
}

// LinkLocatedWithLogger is LinkLocated with an explicit diagnostic logger.
func LinkLocatedWithLogger(located []LocatedFrame, log logging.Logger) Timeline {
	if log == nil {
		log = logging.Discard
	}

	unique, duplicates, dupConflicts := dedupe(located)

	byPrevHash := make(map[[32]byte][]int, len(unique))
	byFrameID := make(map[uint64]int, len(unique))
	for i, lf := range unique {
		byPrevHash[lf.Frame.PrevHash] = append(byPrevHash[lf.Frame.PrevHash], i)
		byFrameID[lf.Frame.FrameID] = i
	}

	var forkConflicts []Conflict
	placed := make([]bool, len(unique))
	var chains [][]int // each inner slice is a sequence of indices into `unique`.

	// Roots, visited in ascending frame_id order for determinism.
	var roots []int
	for i, lf := range unique {
		if lf.Frame.IsChainRoot() {
			roots = append(roots, i)
		}
	}
	sort.Slice(roots, func(a, b int) bool { return unique[roots[a]].Frame.FrameID < unique[roots[b]].Frame.FrameID })

	for _, r := range roots {
		if placed[r] {
			continue
		}
		chain := []int{r}
		placed[r] = true
		cur := r
		for {
			if unique[cur].Frame.IsLast() {
				break
			}
			h := ComputeFrameHash(rawFrameHashInput(&unique[cur].Frame))
			candidates := unusedCandidates(byPrevHash[h], placed)
			if len(candidates) == 0 {
				break
			}
			if len(candidates) > 1 {
				forkConflicts = append(forkConflicts, Conflict{
					Kind:     ConflictFork,
					PrevHash: h,
					Offsets:  offsetsOf(unique, candidates),
				})
			}
			next := chooseDeterministic(unique, candidates)
			placed[next] = true
			chain = append(chain, next)
			cur = next
		}
		chains = append(chains, chain)
	}

	var frames []Frame
	for _, chain := range chains {
		for _, idx := range chain {
			frames = append(frames, unique[idx].Frame)
		}
	}

	var orphans []Frame
	for i, lf := range unique {
		if !placed[i] {
			orphans = append(orphans, lf.Frame)
		}
	}

	gaps := findGaps(unique)

	conflicts := append(dupConflicts, forkConflicts...)

	metrics.ObserveTimeline(len(gaps), len(orphans), len(duplicates))
	log.Info("link complete", "frames", len(frames), "gaps", len(gaps), "orphans", len(orphans), "duplicates", len(duplicates))

	return Timeline{
		Frames:     frames,
		Gaps:       gaps,
		Orphans:    orphans,
		Duplicates: duplicates,
		Conflicts:  conflicts,
	}
}

// dedupe groups located frames by frame_id, retaining one per id (first
// by scan order/offset, tie-broken by highest confidence then lowest
// offset) and reporting the rest as DuplicateFrame warnings. Duplicates
// whose content differs from the retained frame also produce a
// ConflictDuplicateID entry.
func dedupe(located []LocatedFrame) (unique []LocatedFrame, duplicates []DuplicateFrame, conflicts []Conflict) {
	groups := make(map[uint64][]int)
	order := make([]uint64, 0)
	for i, lf := range located {
		id := lf.Frame.FrameID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], i)
	}

	for _, id := range order {
		idxs := groups[id]
		if len(idxs) == 1 {
			unique = append(unique, located[idxs[0]])
			continue
		}

		sort.SliceStable(idxs, func(a, b int) bool {
			ia, ib := idxs[a], idxs[b]
			if located[ia].Offset != located[ib].Offset {
				return located[ia].Offset < located[ib].Offset
			}
			if located[ia].Confidence != located[ib].Confidence {
				return located[ia].Confidence > located[ib].Confidence
			}
			return ia < ib
		})

		keep := idxs[0]
		unique = append(unique, located[keep])

		var dropped []int
		var diverges bool
		keepRaw := rawFrameHashInput(&located[keep].Frame)
		for _, dup := range idxs[1:] {
			dropped = append(dropped, located[dup].Offset)
			if !bytes.Equal(keepRaw, rawFrameHashInput(&located[dup].Frame)) {
				diverges = true
			}
		}
		duplicates = append(duplicates, DuplicateFrame{FrameID: id, Offsets: dropped})
		if diverges {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictDuplicateID,
				FrameID: id,
				Offsets: append([]int{located[keep].Offset}, dropped...),
			})
		}
	}

	return unique, duplicates, conflicts
}

// unusedCandidates filters idxs to those not yet placed.
func unusedCandidates(idxs []int, placed []bool) []int {
	var out []int
	for _, i := range idxs {
		if !placed[i] {
			out = append(out, i)
		}
	}
	return out
}

// chooseDeterministic picks one candidate to continue a chain walk when
// a fork leaves more than one unused successor: lowest offset first,
// then highest confidence.
func chooseDeterministic(unique []LocatedFrame, candidates []int) int {
	best := candidates[0]
	for _, c := range candidates[1:] {
		switch {
		case unique[c].Offset < unique[best].Offset:
			best = c
		case unique[c].Offset == unique[best].Offset && unique[c].Confidence > unique[best].Confidence:
			best = c
		}
	}
	return best
}

func offsetsOf(unique []LocatedFrame, idxs []int) []int {
	out := make([]int, len(idxs))
	for i, idx := range idxs {
		out[i] = unique[idx].Offset
	}
	return out
}

// findGaps walks all unique frames sorted by frame_id and records a Gap
// wherever two id-adjacent frames are not both frame_id-contiguous and
// hash-linked.
func findGaps(unique []LocatedFrame) []Gap {
	sorted := append([]LocatedFrame(nil), unique...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Frame.FrameID < sorted[b].Frame.FrameID })

	var gaps []Gap
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		idsContiguous := cur.Frame.FrameID == prev.Frame.FrameID+1
		hashLinked := cur.Frame.PrevHash == ComputeFrameHash(rawFrameHashInput(&prev.Frame))
		if idsContiguous && hashLinked {
			continue
		}
		gaps = append(gaps, Gap{
			BeforeID:      prev.Frame.FrameID,
			AfterID:       cur.Frame.FrameID,
			Confidence:    (prev.Confidence + cur.Confidence) / 2,
			BeforeOffset:  prev.Offset,
			AfterOffset:   cur.Offset,
			IDsContiguous: idsContiguous,
			HashLinked:    hashLinked,
			VersionsMatch: prev.Frame.Version == cur.Frame.Version,
		})
	}
	return gaps
}

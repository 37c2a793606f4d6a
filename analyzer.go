/*
NAME
  analyzer.go

DESCRIPTION
  analyzer.go transforms a Timeline into a Report: gap reason
  classification, conflict pair summaries, orphan clustering by mutual
  back-link, and advisory repair recipes.

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

// GapReason classifies why a Gap was reported.
type GapReason int

const (
	// MissingById: frame_id itself skips a value (the simplest case —
	// a whole frame is missing from the numeric sequence).
	MissingById GapReason = iota
	// BrokenBacklink: frame_id is contiguous but prev_hash does not
	// validate against the preceding frame's full-frame hash.
	BrokenBacklink
	// OffsetDiscontinuity: frame_id and back-link both check out, but the
	// byte offsets the two frames were found at are not adjacent (the
	// gap is purely a matter of unexplained bytes between them).
	OffsetDiscontinuity
	// VersionMismatch: the two frames bracketing the gap declare
	// different header versions.
	VersionMismatch
)

func (r GapReason) String() string {
	switch r {
	case MissingById:
		return "missing_by_id"
	case BrokenBacklink:
		return "broken_backlink"
	case OffsetDiscontinuity:
		return "offset_discontinuity"
	case VersionMismatch:
		return "version_mismatch"
	default:
		return "unknown"
	}
}

// GapDetail pairs a Gap with the reason the analyzer assigned it.
type GapDetail struct {
	Gap
	Reason GapReason
}

// ConflictDetail is the analyzer's rendering of one linker Conflict: a
// key identifying what's contested (a frame_id or a prev_hash, encoded
// as a string for easy display/grouping) and the offsets involved.
type ConflictDetail struct {
	Kind    ConflictKind
	Key     string
	Offsets []int
}

// OrphanCluster groups orphan frames that reference each other's
// full-frame hash via prev_hash, even though the cluster as a whole
// never attaches to a known chain root.
type OrphanCluster struct {
	Frames []Frame
}

// RecipeKind names the advisory repair hint a Recipe carries.
type RecipeKind int

const (
	// InsertParityFrame suggests a parity/redundancy frame could fill a
	// gap, were one available from a RedundancyDecoder.
	InsertParityFrame RecipeKind = iota
	// RewindOffset suggests re-scanning near a known offset with a wider
	// Hamming tolerance or without the sync/preamble requirement.
	RewindOffset
)

// Recipe is a free-form, advisory-only repair hint. It carries no
// semantics for the core; consumers may act on it or ignore it.
type Recipe struct {
	Kind    RecipeKind
	Between Gap
	// NearFrameID and ByBytes are set for RewindOffset recipes.
	NearFrameID uint64
	ByBytes     int
	Reason      string
}

// Report is the output of Analyze: everything derivable about a
// Timeline beyond its chain-ordered sequence.
type Report struct {
	GapDetails     []GapDetail
	Conflicts      []ConflictDetail
	OrphanClusters []OrphanCluster
	Recipes        []Recipe
}

// Analyze derives a Report from t. It performs no I/O and never
// mutates t.
func Analyze(t Timeline) Report {
	return Report{
		GapDetails:     classifyGaps(t.Gaps),
		Conflicts:      summarizeConflicts(t.Conflicts),
		OrphanClusters: clusterOrphans(t.Orphans),
		Recipes:        buildRecipes(t),
	}
}

// classifyGaps assigns a single reason to each gap. Priority mirrors
// specificity: an outright missing frame_id is reported over a version
// mismatch, which is reported over a merely broken back-link, which is
// reported over a pure offset discontinuity.
func classifyGaps(gaps []Gap) []GapDetail {
	details := make([]GapDetail, len(gaps))
	for i, g := range gaps {
		var reason GapReason
		switch {
		case !g.IDsContiguous:
			reason = MissingById
		case !g.VersionsMatch:
			reason = VersionMismatch
		case !g.HashLinked:
			reason = BrokenBacklink
		default:
			reason = OffsetDiscontinuity
		}
		details[i] = GapDetail{Gap: g, Reason: reason}
	}
	return details
}

func summarizeConflicts(conflicts []Conflict) []ConflictDetail {
	details := make([]ConflictDetail, len(conflicts))
	for i, c := range conflicts {
		var key string
		switch c.Kind {
		case ConflictFork:
			key = hashKey(c.PrevHash)
		case ConflictDuplicateID:
			key = idKey(c.FrameID)
		}
		details[i] = ConflictDetail{Kind: c.Kind, Key: key, Offsets: c.Offsets}
	}
	return details
}

// clusterOrphans groups orphan frames whose prev_hash points at another
// orphan's full-frame hash (or vice versa), via transitive closure over
// that relation. Orphans with no such relation to any other orphan form
// a singleton cluster.
func clusterOrphans(orphans []Frame) []OrphanCluster {
	if len(orphans) == 0 {
		return nil
	}

	hashOf := make([]([32]byte), len(orphans))
	byHash := make(map[[32]byte]int, len(orphans))
	for i := range orphans {
		hashOf[i] = ComputeFrameHash(rawFrameHashInput(&orphans[i]))
		byHash[hashOf[i]] = i
	}

	adj := make([][]int, len(orphans))
	link := func(a, b int) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for i, f := range orphans {
		if j, ok := byHash[f.PrevHash]; ok && j != i {
			link(i, j)
		}
	}

	visited := make([]bool, len(orphans))
	var clusters []OrphanCluster
	for i := range orphans {
		if visited[i] {
			continue
		}
		var stack, members []int
		stack = append(stack, i)
		visited[i] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, n)
			for _, nb := range adj[n] {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		frames := make([]Frame, len(members))
		for k, m := range members {
			frames[k] = orphans[m]
		}
		clusters = append(clusters, OrphanCluster{Frames: frames})
	}
	return clusters
}

// buildRecipes turns gaps into advisory hints: a gap whose frame_ids are
// not contiguous suggests parity recovery, while every other gap (broken
// back-link, version mismatch or offset discontinuity) suggests
// re-scanning with a wider Hamming tolerance near the known-good offset.
func buildRecipes(t Timeline) []Recipe {
	var recipes []Recipe
	for _, g := range t.Gaps {
		switch {
		case !g.IDsContiguous:
			recipes = append(recipes, Recipe{
				Kind:    InsertParityFrame,
				Between: g,
				Reason:  "frame_id sequence skips a value; a parity frame covering this range could reconstruct it",
			})
		default:
			recipes = append(recipes, Recipe{
				Kind:        RewindOffset,
				Between:     g,
				NearFrameID: g.BeforeID,
				ByBytes:     g.AfterOffset - g.BeforeOffset,
				Reason:      "back-link or offset discontinuity; rescan near this offset with a wider marker tolerance",
			})
		}
	}
	return recipes
}

func hashKey(h [32]byte) string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 0, 2*len(h))
	for _, b := range h {
		buf = append(buf, hex[b>>4], hex[b&0x0f])
	}
	return string(buf)
}

func idKey(id uint64) string {
	if id == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = byte('0' + id%10)
		id /= 10
	}
	return string(buf[i:])
}

/*
NAME
  skiplist.go

DESCRIPTION
  skiplist.go implements the optional HAS_SKIPLIST seek path: frames
  carrying that flag embed a small backward-offset table in their
  payload, letting SeekWithSkiplist walk O(log n) hops toward a target
  frame_id instead of a linear chain traversal.

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

import (
	"encoding/binary"
	"math"
)

// SkiplistLevels returns the number of backward-offset entries (2^k) a
// HAS_SKIPLIST frame's payload must carry, given the 1-byte level count
// k at the start of its payload.
func SkiplistLevels(k uint8) int {
	return 1 << k
}

// ParseSkiplist reads the concrete skip-list encoding this package uses
// for HAS_SKIPLIST payloads: a 1-byte level count k, followed by 2^k
// big-endian uint64 backward byte-offsets (each relative to the start
// of the frame carrying the skip-list, offset 0 meaning "no link at
// this level"). It returns an error rather than panicking on a
// malformed payload.
func ParseSkiplist(payload []byte) ([]uint64, error) {
	if len(payload) < 1 {
		return nil, &ErrUnexpectedEOF{Needed: 1, Got: len(payload)}
	}
	k := payload[0]
	if k > 56 {
		// 2^k 8-byte entries would overflow int; no payload can hold them.
		return nil, &ErrUnexpectedEOF{Needed: math.MaxInt, Got: len(payload)}
	}
	n := SkiplistLevels(k)
	need := 1 + n*8
	if len(payload) < need {
		return nil, &ErrUnexpectedEOF{Needed: need, Got: len(payload)}
	}
	offsets := make([]uint64, n)
	for i := 0; i < n; i++ {
		offsets[i] = binary.BigEndian.Uint64(payload[1+i*8:])
	}
	return offsets, nil
}

// SeekWithSkiplist walks backward offsets embedded in HAS_SKIPLIST
// frames within src to locate targetID in O(log n) hops when the
// embedded links permit it, falling back to a linear scan of located
// otherwise. src is assumed to be the original source buffer the
// located frames were recovered from; offsets in each LocatedFrame are
// relative to it.
//
// It returns the located frame for targetID, or ok=false if it cannot
// be found by either the skip-list or the linear fallback.
func SeekWithSkiplist(src []byte, located []LocatedFrame, targetID uint64) (LocatedFrame, bool) {
	byOffset := make(map[int]LocatedFrame, len(located))
	for _, lf := range located {
		byOffset[lf.Offset] = lf
	}

	// Start from whichever skip-list-bearing frame sits furthest into
	// the stream (closest to targetID for a forward-built stream) and
	// hop backward, taking the largest offset that doesn't overshoot.
	var start *LocatedFrame
	for i := range located {
		lf := located[i]
		if !lf.Frame.HasSkiplist() || len(lf.Frame.Payload) == 0 {
			continue
		}
		if start == nil || lf.Offset > start.Offset {
			start = &located[i]
		}
	}

	if start != nil {
		cur := *start
		maxHops := 2 * len(located)
		for hop := 0; hop < maxHops; hop++ {
			if cur.Frame.FrameID == targetID {
				return cur, true
			}
			if !cur.Frame.HasSkiplist() || len(cur.Frame.Payload) == 0 {
				break
			}
			offsets, err := ParseSkiplist(cur.Frame.Payload)
			if err != nil {
				break
			}
			next, ok := bestSkiplistHop(cur, offsets, byOffset, targetID)
			if !ok {
				break
			}
			cur = next
		}
	}

	for _, lf := range located {
		if lf.Frame.FrameID == targetID {
			return lf, true
		}
	}
	return LocatedFrame{}, false
}

// bestSkiplistHop picks the backward offset (from cur's skip-list
// table) that lands closest to targetID without undershooting it, so
// repeated hops converge monotonically in as few steps as possible.
func bestSkiplistHop(cur LocatedFrame, offsets []uint64, byOffset map[int]LocatedFrame, targetID uint64) (LocatedFrame, bool) {
	var best LocatedFrame
	found := false
	for _, back := range offsets {
		if back == 0 {
			continue
		}
		next, ok := byOffset[cur.Offset-int(back)]
		if !ok || next.Frame.FrameID < targetID {
			continue
		}
		if !found || next.Frame.FrameID < best.Frame.FrameID {
			best = next
			found = true
		}
	}
	return best, found
}

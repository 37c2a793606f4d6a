/*
NAME
  skiplist_test.go

DESCRIPTION
  skiplist_test.go contains testing for functionality found in
  skiplist.go.

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
	"bytes"
	"encoding/binary"
	"testing"
)

func skiplistPayload(t *testing.T, k uint8, offsets []uint64) []byte {
	t.Helper()
	if len(offsets) != SkiplistLevels(k) {
		t.Fatalf("test setup: got %d offsets, want %d for k=%d", len(offsets), SkiplistLevels(k), k)
	}
	buf := make([]byte, 1+8*len(offsets))
	buf[0] = k
	for i, o := range offsets {
		binary.BigEndian.PutUint64(buf[1+i*8:], o)
	}
	return buf
}

func TestParseSkiplist(t *testing.T) {
	payload := skiplistPayload(t, 2, []uint64{10, 20, 30, 0})
	offsets, err := ParseSkiplist(payload)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	want := []uint64{10, 20, 30, 0}
	if !equalUint64(offsets, want) {
		t.Errorf("got %v, want %v", offsets, want)
	}
}

func TestParseSkiplistTruncated(t *testing.T) {
	payload := skiplistPayload(t, 1, []uint64{5, 0})
	_, err := ParseSkiplist(payload[:3])
	if _, ok := err.(*ErrUnexpectedEOF); !ok {
		t.Errorf("got %T, want *ErrUnexpectedEOF", err)
	}
}

func TestSeekWithSkiplist(t *testing.T) {
	// Frame 1 is a plain root. Frame 2 carries a k=0 skip-list whose sole
	// entry is the exact backward byte-offset to frame 1, so seeking for
	// frame_id=1 from frame 2 resolves via the skip-list hop rather than
	// the linear fallback.
	first, firstRaw, err := NewFrameBuilder(1).Payload([]byte("root")).BLAKE3().First(true).BuildStruct()
	if err != nil {
		t.Fatalf("did not expect error building frame 1: %v", err)
	}
	firstHash := ComputeFrameHash(firstRaw)
	firstOffset := 0
	secondOffset := len(firstRaw)

	backToFirst := uint64(secondOffset - firstOffset)
	secondRaw, err := NewFrameBuilder(2).
		Payload(skiplistPayload(t, 0, []uint64{backToFirst})).
		BLAKE3().
		PrevHash(firstHash).
		Skiplist(true).
		Last(true).
		Build()
	if err != nil {
		t.Fatalf("did not expect error building frame 2: %v", err)
	}
	second, err := Decode(secondRaw)
	if err != nil {
		t.Fatalf("did not expect error decoding frame 2: %v", err)
	}

	var stream bytes.Buffer
	stream.Write(firstRaw)
	stream.Write(secondRaw)

	located := []LocatedFrame{
		{Frame: first, Offset: firstOffset, Confidence: 1.0},
		{Frame: second, Offset: secondOffset, Confidence: 1.0},
	}

	got, ok := SeekWithSkiplist(stream.Bytes(), located, 1)
	if !ok {
		t.Fatalf("expected to find frame_id=1")
	}
	if got.Frame.FrameID != 1 {
		t.Errorf("FrameID = %d, want 1", got.Frame.FrameID)
	}
}

func equalUint64(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

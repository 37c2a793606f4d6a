/*
NAME
  frame_test.go

DESCRIPTION
  frame_test.go contains testing for functionality found in frame.go.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package durapack

import "testing"

func TestTrailerSize(t *testing.T) {
	tests := []struct {
		trailer Trailer
		want    int
	}{
		{TrailerNone, 0},
		{TrailerCRC32C, 4},
		{TrailerBLAKE3, 32},
	}
	for _, test := range tests {
		if got := test.trailer.Size(); got != test.want {
			t.Errorf("Trailer(%v).Size() = %d, want %d", test.trailer, got, test.want)
		}
	}
}

func TestIsChainRoot(t *testing.T) {
	tests := []struct {
		name string
		f    Frame
		want bool
	}{
		{"zero prev_hash", Frame{}, true},
		{"is_first set", Frame{Flags: FlagIsFirst, PrevHash: [32]byte{1}}, true},
		{"neither", Frame{PrevHash: [32]byte{1}}, false},
	}
	for _, test := range tests {
		if got := test.f.IsChainRoot(); got != test.want {
			t.Errorf("%s: IsChainRoot() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestFrameSize(t *testing.T) {
	f := Frame{Payload: make([]byte, 100), Trailer: TrailerBLAKE3}
	want := MarkerSize + HeaderSize + 100 + 32
	if got := f.Size(); got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

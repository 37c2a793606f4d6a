/*
NAME
  scanner_test.go

DESCRIPTION
  scanner_test.go contains testing for functionality found in scanner.go.

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
	"testing"

	"pgregory.net/rapid"

	"github.com/ausocean/durapack/config"
)

func buildChain(t *testing.T, n int) [][]byte {
	t.Helper()
	var prev [32]byte
	frames := make([][]byte, n)
	for i := 0; i < n; i++ {
		b := NewFrameBuilder(uint64(i + 1)).Payload([]byte("frame")).BLAKE3().PrevHash(prev)
		if i == 0 {
			b = b.First(true)
		}
		if i == n-1 {
			b = b.Last(true)
		}
		raw, err := b.Build()
		if err != nil {
			t.Fatalf("did not expect error building frame %d: %v", i, err)
		}
		frames[i] = raw
		prev = ComputeFrameHash(raw)
	}
	return frames
}

func TestScanExact(t *testing.T) {
	frames := buildChain(t, 3)
	var buf bytes.Buffer
	for _, f := range frames {
		buf.Write(f)
	}

	located, stats := Scan(buf.Bytes())
	if len(located) != 3 {
		t.Fatalf("got %d frames, want 3", len(located))
	}
	if stats.FramesFound != 3 {
		t.Errorf("FramesFound = %d, want 3", stats.FramesFound)
	}
	for i, lf := range located {
		if lf.Frame.FrameID != uint64(i+1) {
			t.Errorf("frame %d: FrameID = %d, want %d", i, lf.Frame.FrameID, i+1)
		}
	}
}

func TestScanInsertedGarbage(t *testing.T) {
	frames := buildChain(t, 2)
	var buf bytes.Buffer
	buf.Write(frames[0])
	for i := 0; i < 100; i++ {
		buf.WriteByte(0xAA)
	}
	buf.Write(frames[1])

	located, stats := Scan(buf.Bytes())
	if len(located) != 2 {
		t.Fatalf("got %d frames, want 2", len(located))
	}
	if stats.MarkersFound != 2 {
		t.Errorf("MarkersFound = %d, want 2", stats.MarkersFound)
	}
}

func TestScanBurstErrorDropsOverwrittenFrame(t *testing.T) {
	frames := buildChain(t, 3)
	var buf bytes.Buffer
	offsets := make([]int, len(frames))
	for i, f := range frames {
		offsets[i] = buf.Len()
		buf.Write(f)
	}

	raw := buf.Bytes()
	start := offsets[1]
	for i := start; i < start+50 && i < len(raw); i++ {
		raw[i] = 0xFF
	}

	located, _ := Scan(raw)
	if len(located) != 2 {
		t.Fatalf("got %d frames, want 2 (frame 2 destroyed)", len(located))
	}
	if located[0].Frame.FrameID != 1 || located[1].Frame.FrameID != 3 {
		t.Errorf("got frame ids %d, %d; want 1, 3", located[0].Frame.FrameID, located[1].Frame.FrameID)
	}
}

// TestScanDropsFrameWithCorruptedTrailer is scenario S2: a frame whose
// marker and header are intact but whose CRC32C trailer was corrupted
// in transit must fail strict decode, be dropped from Scan's output,
// and be counted in ScanStatistics.DecodeFailures, while neighboring
// frames are still recovered.
func TestScanDropsFrameWithCorruptedTrailer(t *testing.T) {
	first, err := NewFrameBuilder(1).Payload([]byte("abc")).CRC32C().Build()
	if err != nil {
		t.Fatalf("did not expect error building frame 1: %v", err)
	}
	second, err := NewFrameBuilder(2).Payload([]byte("xyz")).CRC32C().Build()
	if err != nil {
		t.Fatalf("did not expect error building frame 2: %v", err)
	}
	first[len(first)-1] ^= 0xff // corrupt one trailer byte; marker/header untouched.

	var buf bytes.Buffer
	buf.Write(first)
	buf.Write(second)

	located, stats := Scan(buf.Bytes())
	if len(located) != 1 {
		t.Fatalf("got %d frames, want 1 (corrupted frame dropped)", len(located))
	}
	if located[0].Frame.FrameID != 2 {
		t.Errorf("got frame id %d, want 2", located[0].Frame.FrameID)
	}
	if stats.DecodeFailures != 1 {
		t.Errorf("DecodeFailures = %d, want 1", stats.DecodeFailures)
	}
	if stats.MarkersFound != 2 {
		t.Errorf("MarkersFound = %d, want 2", stats.MarkersFound)
	}
}

func TestScanHammingFallback(t *testing.T) {
	raw, err := NewFrameBuilder(1).Payload([]byte("x")).BLAKE3().Build()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	raw[0] ^= 0x01 // single-bit flip in the marker.

	cfg := config.Default()
	located, _ := ScanWithConfig(raw, cfg, nil)
	if len(located) != 1 {
		t.Fatalf("got %d frames, want 1 (Hamming-tolerant recovery)", len(located))
	}
	if located[0].Confidence >= 1.0 {
		t.Errorf("Confidence = %v, want < 1.0 for a Hamming-tolerated marker", located[0].Confidence)
	}
}

func TestScanNeverPanics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		buf := rapid.SliceOfN(rapid.Byte(), 0, 512).Draw(rt, "buf")
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Scan panicked on input %x: %v", buf, r)
			}
		}()
		Scan(buf)
	})
}

// TestScanSoundness is the §8 "scanner soundness" property: every
// LocatedFrame scan returns decodes successfully at its reported offset.
func TestScanSoundness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(rt, "n")
		var buf bytes.Buffer
		for i := 0; i < n; i++ {
			payload := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "payload")
			raw, err := NewFrameBuilder(uint64(i+1)).Payload(payload).CRC32C().Build()
			if err != nil {
				rt.Fatalf("did not expect error: %v", err)
			}
			buf.Write(raw)
		}
		located, _ := Scan(buf.Bytes())
		data := buf.Bytes()
		for _, lf := range located {
			if _, err := Decode(data[lf.Offset:]); err != nil {
				rt.Fatalf("LocatedFrame at offset %d failed to decode: %v", lf.Offset, err)
			}
		}
	})
}

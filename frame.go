/*
NAME
  frame.go

DESCRIPTION
  frame.go defines the Durapack binary frame layout: marker, header
  fields, flag bits and the in-memory Frame/LocatedFrame types that the
  rest of the package operates on.

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

// Frame layout constants. All multi-byte integers are big-endian.
const (
	// MarkerSize is the length in bytes of the frame marker.
	MarkerSize = 4

	// HeaderSize is the length in bytes of a frame header.
	HeaderSize = 46

	// MaxFrame is the largest permitted total frame size (marker +
	// header + payload + trailer), in bytes.
	MaxFrame = 16 * 1024 * 1024

	// MaxTrailer is the largest possible trailer size (BLAKE3-256).
	MaxTrailer = 32

	// MaxPayload is the largest permitted payload length.
	MaxPayload = MaxFrame - MarkerSize - HeaderSize - MaxTrailer

	// Version is the only header version this package understands.
	Version = 1
)

// Header field byte offsets, relative to the start of the header (i.e.
// after the 4-byte marker).
const (
	offVersion    = 0
	offFrameID    = 1
	offPrevHash   = 9
	offPayloadLen = 41
	offFlags      = 45

	prevHashLen = 32
)

// FrameMarker is the fixed 4-byte prefix ("DURP") used to locate frames
// in a byte stream.
var FrameMarker = [MarkerSize]byte{0x44, 0x55, 0x52, 0x50}

// ROBUST_SYNC_WORD (RobustSyncWord) is an 8-byte, low-autocorrelation
// constant that may precede a frame's marker to assist resynchronization
// under burst corruption. It is stable across versions of this package.
var RobustSyncWord = [8]byte{0x1a, 0xcf, 0xfc, 0x1d, 0x9b, 0x0e, 0xe1, 0xb4}

// PreamblePattern is the single repeated byte used to build a preamble
// run ahead of a frame's marker (or sync word).
const PreamblePattern = 0xaa

// MinPreambleLen is the minimum number of PreamblePattern bytes that
// constitute a recognizable preamble run.
const MinPreambleLen = 8

// MaxMarkerHamming is the maximum Hamming distance (in bits) the scanner
// will tolerate between a candidate 4-byte window and FrameMarker before
// giving up on the bounded-Hamming fallback strategy.
const MaxMarkerHamming = 1

// Flag bits, packed into the one-byte header flags field.
const (
	FlagHasCRC32C    byte = 0x01
	FlagHasBLAKE3    byte = 0x02
	FlagIsFirst      byte = 0x04
	FlagIsLast       byte = 0x08
	FlagHasPreamble  byte = 0x10
	FlagHasSyncFix   byte = 0x20
	FlagIsSuperframe byte = 0x40
	FlagHasSkiplist  byte = 0x80
)

// Trailer identifies which (if any) integrity trailer a frame carries.
type Trailer int

const (
	TrailerNone Trailer = iota
	TrailerCRC32C
	TrailerBLAKE3
)

// Size returns the on-wire byte length of t.
func (t Trailer) Size() int {
	switch t {
	case TrailerCRC32C:
		return 4
	case TrailerBLAKE3:
		return 32
	default:
		return 0
	}
}

func (t Trailer) String() string {
	switch t {
	case TrailerCRC32C:
		return "crc32c"
	case TrailerBLAKE3:
		return "blake3"
	default:
		return "none"
	}
}

// Frame is a single self-describing Durapack record: its header fields
// plus owned payload and trailer bytes. Frames produced by Decode own
// their payload; frames produced by DecodeZeroCopy hold a view over the
// caller's buffer instead (see Frame.Zerocopy).
type Frame struct {
	Version    uint8
	FrameID    uint64
	PrevHash   [prevHashLen]byte
	PayloadLen uint32
	Flags      byte

	Payload []byte
	Trailer Trailer
	// TrailerBytes holds the raw trailer bytes as they appeared on the
	// wire (already verified against Payload by Decode).
	TrailerBytes []byte

	// Zerocopy is true when Payload (and TrailerBytes) alias a buffer
	// owned by the caller, rather than freshly allocated memory. Callers
	// must keep that buffer alive for as long as the Frame is in use.
	Zerocopy bool
}

// IsFirst reports whether the IS_FIRST flag is set.
func (f *Frame) IsFirst() bool { return f.Flags&FlagIsFirst != 0 }

// IsLast reports whether the IS_LAST flag is set.
func (f *Frame) IsLast() bool { return f.Flags&FlagIsLast != 0 }

// IsSuperframe reports whether the IS_SUPERFRAME flag is set.
func (f *Frame) IsSuperframe() bool { return f.Flags&FlagIsSuperframe != 0 }

// HasSkiplist reports whether the HAS_SKIPLIST flag is set.
func (f *Frame) HasSkiplist() bool { return f.Flags&FlagHasSkiplist != 0 }

// HasPreamble reports whether the HAS_PREAMBLE flag is set.
func (f *Frame) HasPreamble() bool { return f.Flags&FlagHasPreamble != 0 }

// HasSyncPrefix reports whether the HAS_SYNC_PREFIX flag is set.
func (f *Frame) HasSyncPrefix() bool { return f.Flags&FlagHasSyncFix != 0 }

// IsChainRoot reports whether f begins a chain: either IS_FIRST is set,
// or its prev_hash is all zero (per invariant 3 in §3 of the spec).
func (f *Frame) IsChainRoot() bool {
	return f.IsFirst() || f.PrevHash == ([prevHashLen]byte{})
}

// Size returns the total on-wire byte length of f (marker + header +
// payload + trailer), not including any preamble/sync prefix.
func (f *Frame) Size() int {
	return MarkerSize + HeaderSize + len(f.Payload) + f.Trailer.Size()
}

// LocatedFrame is a Frame plus the byte offset at which its marker was
// found in a scanned source buffer, and a confidence score in [0, 1].
type LocatedFrame struct {
	Frame      Frame
	Offset     int
	Confidence float64
}

// ScanStatistics summarizes one Scan invocation.
type ScanStatistics struct {
	BytesScanned   int
	MarkersFound   int
	FramesFound    int
	DecodeFailures int
	Truncations    int
}

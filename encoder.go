/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the Durapack frame builder and encoder: it
  assembles marker‖header‖payload‖trailer (optionally preceded by a
  preamble run and/or sync word) into a deterministic byte sequence.

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
	"encoding/binary"

	"github.com/ausocean/durapack/internal/integrity"
	"github.com/ausocean/durapack/internal/logging"
)

// FrameBuilder accumulates the options needed to encode one frame.
// Construct one with NewFrameBuilder and chain the option/flag setters;
// each setter returns the receiver so calls can be chained, mirroring
// the functional-option style of mts.NewEncoder's option functions but
// applied to a single value rather than threaded through a constructor.
type FrameBuilder struct {
	frameID  uint64
	payload  []byte
	prevHash [prevHashLen]byte
	trailer  Trailer

	first      bool
	last       bool
	superframe bool
	skiplist   bool
	preamble   bool
	syncPrefix bool

	log logging.Logger
}

// NewFrameBuilder starts a builder for the frame with the given
// application-assigned frameID. Payload defaults to empty, prev_hash to
// zero, and no trailer or prefixes.
func NewFrameBuilder(frameID uint64) *FrameBuilder {
	return &FrameBuilder{frameID: frameID, log: logging.Discard}
}

// Payload sets the frame's payload bytes. p is not copied; callers must
// not mutate it until Build has returned.
func (b *FrameBuilder) Payload(p []byte) *FrameBuilder { b.payload = p; return b }

// PrevHash sets the back-link to the previous frame in the chain,
// typically the return value of ComputeFrameHash on that frame.
func (b *FrameBuilder) PrevHash(h [32]byte) *FrameBuilder { b.prevHash = h; return b }

// CRC32C selects a 4-byte CRC32C (Castagnoli) trailer.
func (b *FrameBuilder) CRC32C() *FrameBuilder { b.trailer = TrailerCRC32C; return b }

// BLAKE3 selects a 32-byte BLAKE3-256 trailer.
func (b *FrameBuilder) BLAKE3() *FrameBuilder { b.trailer = TrailerBLAKE3; return b }

// First sets IS_FIRST.
func (b *FrameBuilder) First(v bool) *FrameBuilder { b.first = v; return b }

// Last sets IS_LAST.
func (b *FrameBuilder) Last(v bool) *FrameBuilder { b.last = v; return b }

// Superframe sets IS_SUPERFRAME.
func (b *FrameBuilder) Superframe(v bool) *FrameBuilder { b.superframe = v; return b }

// Skiplist sets HAS_SKIPLIST.
func (b *FrameBuilder) Skiplist(v bool) *FrameBuilder { b.skiplist = v; return b }

// Preamble requests a preamble run of MinPreambleLen PreamblePattern
// bytes ahead of the marker, and sets HAS_PREAMBLE.
func (b *FrameBuilder) Preamble(v bool) *FrameBuilder { b.preamble = v; return b }

// SyncPrefix requests RobustSyncWord ahead of the marker (after any
// preamble run), and sets HAS_SYNC_PREFIX.
func (b *FrameBuilder) SyncPrefix(v bool) *FrameBuilder { b.syncPrefix = v; return b }

// Logger attaches a diagnostic logger; components default to
// logging.Discard when none is supplied.
func (b *FrameBuilder) Logger(l logging.Logger) *FrameBuilder {
	if l != nil {
		b.log = l
	}
	return b
}

// header returns the 46-byte header for the current builder state, and
// the effective flags byte.
func (b *FrameBuilder) header() ([HeaderSize]byte, byte) {
	var flags byte
	switch b.trailer {
	case TrailerCRC32C:
		flags |= FlagHasCRC32C
	case TrailerBLAKE3:
		flags |= FlagHasBLAKE3
	}
	if b.first {
		flags |= FlagIsFirst
	}
	if b.last {
		flags |= FlagIsLast
	}
	if b.preamble {
		flags |= FlagHasPreamble
	}
	if b.syncPrefix {
		flags |= FlagHasSyncFix
	}
	if b.superframe {
		flags |= FlagIsSuperframe
	}
	if b.skiplist {
		flags |= FlagHasSkiplist
	}

	var h [HeaderSize]byte
	h[offVersion] = Version
	binary.BigEndian.PutUint64(h[offFrameID:], b.frameID)
	copy(h[offPrevHash:offPrevHash+prevHashLen], b.prevHash[:])
	binary.BigEndian.PutUint32(h[offPayloadLen:], uint32(len(b.payload)))
	h[offFlags] = flags
	return h, flags
}

// Build assembles the full on-wire byte sequence for b, including any
// requested preamble/sync prefix. Build is deterministic: identical
// builder state always yields byte-identical output (§4.1).
func (b *FrameBuilder) Build() ([]byte, error) {
	if len(b.payload) > MaxPayload {
		return nil, &ErrPayloadTooLarge{Len: uint32(len(b.payload))}
	}

	header, _ := b.header()

	body := make([]byte, 0, MarkerSize+HeaderSize+len(b.payload)+MaxTrailer)
	body = append(body, FrameMarker[:]...)
	body = append(body, header[:]...)
	body = append(body, b.payload...)

	switch b.trailer {
	case TrailerCRC32C:
		body = append(body, integrity.CRC32C(body)...)
	case TrailerBLAKE3:
		body = append(body, integrity.BLAKE3(body)...)
	}

	if !b.preamble && !b.syncPrefix {
		b.log.Debug("built frame", "frame_id", b.frameID, "size", len(body))
		return body, nil
	}

	prefix := make([]byte, 0, MinPreambleLen+len(RobustSyncWord))
	if b.preamble {
		for i := 0; i < MinPreambleLen; i++ {
			prefix = append(prefix, PreamblePattern)
		}
	}
	if b.syncPrefix {
		prefix = append(prefix, RobustSyncWord[:]...)
	}

	out := make([]byte, 0, len(prefix)+len(body))
	out = append(out, prefix...)
	out = append(out, body...)
	b.log.Debug("built frame with prefix", "frame_id", b.frameID, "prefix_len", len(prefix), "size", len(out))
	return out, nil
}

// BuildStruct assembles the frame and also returns it as a Frame value
// (with owned payload/trailer bytes), alongside the raw bytes Build
// would have returned.
func (b *FrameBuilder) BuildStruct() (Frame, []byte, error) {
	raw, err := b.Build()
	if err != nil {
		return Frame{}, nil, err
	}

	header, flags := b.header()
	_ = header

	f := Frame{
		Version:    Version,
		FrameID:    b.frameID,
		PrevHash:   b.prevHash,
		PayloadLen: uint32(len(b.payload)),
		Flags:      flags,
		Payload:    append([]byte(nil), b.payload...),
		Trailer:    b.trailer,
	}
	if n := b.trailer.Size(); n > 0 {
		f.TrailerBytes = append([]byte(nil), raw[len(raw)-n:]...)
	}
	return f, raw, nil
}

// Encode is a free-function equivalent of b.Build, matching the
// contract name in §6 (encode(builder) -> bytes).
func Encode(b *FrameBuilder) ([]byte, error) { return b.Build() }

// ComputeFrameHash returns the BLAKE3-256 hash of a frame's complete
// on-wire bytes (marker‖header‖payload‖trailer), for use as the next
// frame's prev_hash (§4.1, §9 Open Question 2: prev_hash covers the
// complete previous frame including its trailer).
func ComputeFrameHash(raw []byte) [32]byte {
	var out [32]byte
	copy(out[:], integrity.BLAKE3(raw))
	return out
}

/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the typed error values that strict decoding,
  encoding and linking can return, per the error handling design.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package durapack

import "fmt"

// ErrBadMarker indicates the scanner/decoder could not find FrameMarker
// (or a tolerated variant of it) at the expected offset.
type ErrBadMarker struct{ Offset int }

func (e *ErrBadMarker) Error() string {
	return fmt.Sprintf("durapack: bad marker at offset %d", e.Offset)
}

// ErrUnsupportedVersion indicates a header version byte other than the
// one this package understands.
type ErrUnsupportedVersion struct{ Version uint8 }

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("durapack: unsupported version %d", e.Version)
}

// ErrPayloadTooLarge indicates a payload_len exceeding MaxPayload, either
// on encode (requested payload) or decode (declared header field).
type ErrPayloadTooLarge struct{ Len uint32 }

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("durapack: payload too large (%d bytes, max %d)", e.Len, MaxPayload)
}

// ErrUnexpectedEOF indicates the buffer ended before Needed bytes could
// be read.
type ErrUnexpectedEOF struct{ Needed, Got int }

func (e *ErrUnexpectedEOF) Error() string {
	return fmt.Sprintf("durapack: unexpected EOF (needed %d bytes, got %d)", e.Needed, e.Got)
}

// ErrInvalidFlags indicates an illegal flag-bit combination, e.g. both
// integrity trailer flags set while in strict mode.
type ErrInvalidFlags struct{ Flags byte }

func (e *ErrInvalidFlags) Error() string {
	return fmt.Sprintf("durapack: invalid flags 0x%02x", e.Flags)
}

// ErrChecksumMismatch indicates the trailer present on the wire does not
// match the trailer computed over marker‖header‖payload.
type ErrChecksumMismatch struct {
	Expected, Actual []byte
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("durapack: checksum mismatch (expected %x, got %x)", e.Expected, e.Actual)
}

// ErrBackLink describes a frame whose prev_hash does not match the
// full-frame hash of the frame it claims to follow. Link does not return
// or record ErrBackLink values; it reports such a mismatch between
// id-adjacent frames as a Gap with HashLinked false.
type ErrBackLink struct {
	FrameID           uint64
	Expected, Actual  []byte
}

func (e *ErrBackLink) Error() string {
	return fmt.Sprintf("durapack: back-link mismatch at frame %d (expected %x, got %x)", e.FrameID, e.Expected, e.Actual)
}

// DuplicateFrame is a non-fatal warning the linker surfaces when more
// than one frame claims the same frame_id.
type DuplicateFrame struct {
	FrameID uint64
	// Offsets lists the scan offsets of the dropped duplicates (the
	// retained frame's offset is not included).
	Offsets []int
}

func (d *DuplicateFrame) Error() string {
	return fmt.Sprintf("durapack: duplicate frame_id %d at offsets %v", d.FrameID, d.Offsets)
}

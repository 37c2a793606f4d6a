/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the strict Durapack decoder: parsing and full
  validation of exactly one frame at a known buffer offset, in both
  owned-payload and zero-copy forms.

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

	"github.com/cybergarage/go-safecast/safecast"

	"github.com/ausocean/durapack/internal/integrity"
)

// DecodeOptions controls strict-decoder behavior that the spec leaves
// as an implementation choice (§9, Open Question 1).
type DecodeOptions struct {
	// StrictMode, when true, rejects a frame with both FlagHasCRC32C and
	// FlagHasBLAKE3 set (ErrInvalidFlags). When false, such a frame is
	// accepted with BLAKE3 taking precedence for verification, per the
	// spec's recovery-mode allowance.
	StrictMode bool
}

// DefaultDecodeOptions is strict: both-trailer-flags-set is rejected.
var DefaultDecodeOptions = DecodeOptions{StrictMode: true}

// Decode validates and parses exactly one frame assumed to begin at
// offset 0 of buf, returning an owned Frame (payload and trailer bytes
// are copied out of buf). Validation follows the cheapest-first,
// short-circuit order in §4.2.
func Decode(buf []byte) (Frame, error) {
	return DecodeWithOptions(buf, DefaultDecodeOptions)
}

// DecodeWithOptions is Decode with explicit DecodeOptions.
func DecodeWithOptions(buf []byte, opts DecodeOptions) (Frame, error) {
	f, _, err := decode(buf, opts, false)
	return f, err
}

// DecodeZeroCopy validates and parses exactly one frame at the start of
// buf, returning a Frame whose Payload and TrailerBytes alias buf
// instead of being copied. Callers must keep buf alive for as long as
// the returned Frame is used.
func DecodeZeroCopy(buf []byte) (Frame, error) {
	f, _, err := decode(buf, DefaultDecodeOptions, true)
	return f, err
}

// decode performs the shared validation logic. It returns the decoded
// frame and the total number of bytes consumed (marker+header+payload+trailer).
func decode(buf []byte, opts DecodeOptions, zeroCopy bool) (Frame, int, error) {
	// 1. BadMarker.
	if len(buf) < MarkerSize {
		return Frame{}, 0, &ErrUnexpectedEOF{Needed: MarkerSize, Got: len(buf)}
	}
	if buf[0] != FrameMarker[0] || buf[1] != FrameMarker[1] || buf[2] != FrameMarker[2] || buf[3] != FrameMarker[3] {
		return Frame{}, 0, &ErrBadMarker{Offset: 0}
	}

	if len(buf) < MarkerSize+HeaderSize {
		return Frame{}, 0, &ErrUnexpectedEOF{Needed: MarkerSize + HeaderSize, Got: len(buf)}
	}
	header := buf[MarkerSize : MarkerSize+HeaderSize]

	// 2. UnsupportedVersion.
	version := header[offVersion]
	if version != Version {
		return Frame{}, 0, &ErrUnsupportedVersion{Version: version}
	}

	frameID := binary.BigEndian.Uint64(header[offFrameID:])
	var prevHash [prevHashLen]byte
	copy(prevHash[:], header[offPrevHash:offPrevHash+prevHashLen])
	payloadLen := binary.BigEndian.Uint32(header[offPayloadLen:])
	flags := header[offFlags]

	// 3. PayloadTooLarge.
	if payloadLen > MaxPayload {
		return Frame{}, 0, &ErrPayloadTooLarge{Len: payloadLen}
	}

	// 4. InvalidFlags.
	hasCRC := flags&FlagHasCRC32C != 0
	hasBLAKE3 := flags&FlagHasBLAKE3 != 0
	if hasCRC && hasBLAKE3 && opts.StrictMode {
		return Frame{}, 0, &ErrInvalidFlags{Flags: flags}
	}

	var trailer Trailer
	switch {
	case hasBLAKE3:
		trailer = TrailerBLAKE3 // BLAKE3 precedence when both set and non-strict.
	case hasCRC:
		trailer = TrailerCRC32C
	default:
		trailer = TrailerNone
	}
	trailerLen := trailer.Size()

	var n int
	if err := safecast.ToInt(payloadLen, &n); err != nil {
		return Frame{}, 0, &ErrPayloadTooLarge{Len: payloadLen}
	}

	// 5. UnexpectedEof.
	total := MarkerSize + HeaderSize + n + trailerLen
	if len(buf) < total {
		return Frame{}, 0, &ErrUnexpectedEOF{Needed: total, Got: len(buf)}
	}

	payloadStart := MarkerSize + HeaderSize
	payloadEnd := payloadStart + n
	covered := buf[:payloadEnd] // marker‖header‖payload

	// 6. ChecksumMismatch.
	var trailerBytes []byte
	if trailerLen > 0 {
		trailerBytes = buf[payloadEnd : payloadEnd+trailerLen]
		var ok bool
		switch trailer {
		case TrailerCRC32C:
			ok = integrity.VerifyCRC32C(covered, trailerBytes)
		case TrailerBLAKE3:
			ok = integrity.VerifyBLAKE3(covered, trailerBytes)
		}
		if !ok {
			return Frame{}, 0, &ErrChecksumMismatch{Expected: integrityExpected(trailer, covered), Actual: trailerBytes}
		}
	}

	f := Frame{
		Version:    version,
		FrameID:    frameID,
		PrevHash:   prevHash,
		PayloadLen: payloadLen,
		Flags:      flags,
		Trailer:    trailer,
		Zerocopy:   zeroCopy,
	}

	if zeroCopy {
		f.Payload = buf[payloadStart:payloadEnd]
		f.TrailerBytes = trailerBytes
	} else {
		f.Payload = append([]byte(nil), buf[payloadStart:payloadEnd]...)
		if trailerBytes != nil {
			f.TrailerBytes = append([]byte(nil), trailerBytes...)
		}
	}

	return f, total, nil
}

func integrityExpected(t Trailer, covered []byte) []byte {
	switch t {
	case TrailerCRC32C:
		return integrity.CRC32C(covered)
	case TrailerBLAKE3:
		return integrity.BLAKE3(covered)
	default:
		return nil
	}
}

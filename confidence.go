/*
NAME
  confidence.go

DESCRIPTION
  confidence.go scores the confidence the scanner assigns to a
  recovered LocatedFrame, combining marker quality, prefix presence,
  trailer class, size sanity and neighbor consistency per §4.3.

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

import "encoding/binary"

// Recommended confidence-signal weights (§4.3). Implementations may
// choose their own weights as long as the relative ordering of signals
// is preserved; these are the defaults this package uses.
const (
	weightMarker   = 0.40
	weightPrefix   = 0.10
	weightTrailer  = 0.20
	weightSize     = 0.10
	weightNeighbor = 0.20
)

// sizeToleranceFraction is the "within ±10% of neighboring frames" band
// from §4.3's size-sanity signal.
const sizeToleranceFraction = 0.10

// scoreConfidence computes the confidence for a just-decoded frame at
// offset, given the Hamming distance used to locate its marker (0 for
// an exact match), whether a sync/preamble prefix preceded it, and the
// frames already accepted earlier in the scan (for neighbor-consistency
// comparison against the immediately prior frame).
func scoreConfidence(f *Frame, hamDist int, hasPrefix bool, offset int, prior []LocatedFrame) float64 {
	marker := markerScore(hamDist)
	prefix := 0.0
	if hasPrefix {
		prefix = 1.0
	}
	trailer := trailerScore(f.Trailer)
	size := sizeScore(f, offset, prior)
	neighbor := neighborScore(f, offset, prior)

	conf := weightMarker*marker + weightPrefix*prefix + weightTrailer*trailer + weightSize*size + weightNeighbor*neighbor
	return clamp01(conf)
}

func markerScore(hamDist int) float64 {
	if hamDist == 0 {
		return 1.0
	}
	return clamp01(1.0 - float64(hamDist)/4.0)
}

func trailerScore(t Trailer) float64 {
	switch t {
	case TrailerBLAKE3:
		return 1.0
	case TrailerCRC32C:
		return 0.7
	default:
		return 0.4
	}
}

func sizeScore(f *Frame, offset int, prior []LocatedFrame) float64 {
	if len(prior) == 0 {
		return 1.0
	}
	prev := prior[len(prior)-1]
	prevSize := float64(prev.Frame.Size())
	if prevSize == 0 {
		return 1.0
	}
	thisSize := float64(f.Size())
	diff := thisSize - prevSize
	if diff < 0 {
		diff = -diff
	}
	if diff <= sizeToleranceFraction*prevSize {
		return 1.0
	}
	return 0.5
}

func neighborScore(f *Frame, offset int, prior []LocatedFrame) float64 {
	if len(prior) == 0 {
		return 0.5
	}
	prev := prior[len(prior)-1]

	prevRaw := rawFrameHashInput(&prev.Frame)
	prevHash := ComputeFrameHash(prevRaw)
	linkMatches := f.PrevHash == prevHash
	spacingMatches := offset == prev.Offset+prev.Frame.Size()

	switch {
	case linkMatches && spacingMatches:
		return 1.0
	case linkMatches || spacingMatches:
		return 0.5
	default:
		return 0.0
	}
}

// rawFrameHashInput reconstructs the marker‖header‖payload‖trailer bytes
// of a decoded Frame so its full-frame hash can be recomputed for
// neighbor-consistency checks. It does not re-run FrameBuilder so it
// stays cheap and side-effect free.
func rawFrameHashInput(f *Frame) []byte {
	raw := make([]byte, 0, f.Size())
	raw = append(raw, FrameMarker[:]...)

	var h [HeaderSize]byte
	h[offVersion] = f.Version
	binary.BigEndian.PutUint64(h[offFrameID:], f.FrameID)
	copy(h[offPrevHash:offPrevHash+prevHashLen], f.PrevHash[:])
	binary.BigEndian.PutUint32(h[offPayloadLen:], f.PayloadLen)
	h[offFlags] = f.Flags

	raw = append(raw, h[:]...)
	raw = append(raw, f.Payload...)
	raw = append(raw, f.TrailerBytes...)
	return raw
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

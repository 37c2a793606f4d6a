/*
NAME
  redundancy.go

DESCRIPTION
  redundancy.go declares the capability interfaces an optional forward
  error correction backend would implement. The core neither requires
  nor depends on a concrete backend (Reed-Solomon or otherwise); FEC
  backend implementations are explicitly out of scope (§1).

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

// RedundancyBlock is the sidecar index entry a RedundancyEncoder
// produces for one batch of data frames: which frame IDs the parity
// frames were computed over, and the frame IDs assigned to the parity
// frames themselves. The core treats this as opaque bookkeeping; it
// never interprets it.
type RedundancyBlock struct {
	BlockStartID   uint64
	DataCount      int
	ParityCount    int
	ParityFrameIDs []uint64
}

// RedundancyEncoder accepts a contiguous run of encoded data frames and
// produces parity frames plus a sidecar index describing them. The core
// treats parity frames as ordinary Durapack frames once produced: they
// flow through Encode/Decode/Scan/Link like any other frame.
type RedundancyEncoder interface {
	EncodeBatch(frames []Frame, startID uint64) (parity []Frame, block RedundancyBlock, err error)
}

// RedundancyDecoder reconstructs missing data frames from a set of
// recovered frames (data and/or parity) belonging to one RedundancyBlock.
type RedundancyDecoder interface {
	DecodeBatch(frames []Frame, nData int) ([]Frame, error)
}

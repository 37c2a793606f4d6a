/*
NAME
  doc.go

DESCRIPTION
  doc.go holds the package documentation for durapack.

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

// Package durapack provides encoding, strict decoding, stream scanning
// and chain reconstruction for the Durapack frame format: a sequence of
// self-describing, back-linked frames intended to survive storage on
// damaged disks, lossy links and partially corrupted flash.
//
// A frame is MARKER‖HEADER‖PAYLOAD‖TRAILER. Encode produces this byte
// sequence from a FrameBuilder; Decode validates it at a known offset;
// Scan recovers frames from an arbitrary, possibly corrupted buffer;
// Link threads recovered frames into a Timeline via their prev_hash
// back-links; Analyze derives a Report of gaps, conflicts, orphan
// clusters and repair hints from a Timeline.
package durapack

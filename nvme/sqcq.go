// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvme

// SQEntry is a 64-byte NVMe admin/I/O submission queue entry. Only its
// size and field layout are ported here, for admin queue sizing and
// IOSQES/IOCQES exponent derivation; building and submitting commands is
// out of scope.
type SQEntry struct {
	CDW0  uint32 // opcode, fuse, psdt, cid
	NSID  uint32
	_     uint64 // reserved
	MPTR  uint64
	DPTR1 uint64 // PRP entry 1 / SGL descriptor low
	DPTR2 uint64 // PRP entry 2 / SGL descriptor high
	CDW10 uint32
	CDW11 uint32
	CDW12 uint32
	CDW13 uint32
	CDW14 uint32
	CDW15 uint32
}

// SQEntrySize is the wire size of SQEntry, per the NVMe base specification.
const SQEntrySize = 64

// CQEntry is a 16-byte NVMe completion queue entry.
type CQEntry struct {
	CommandSpecific uint32
	_               uint32 // reserved
	SQHD            uint16
	SQID            uint16
	CID             uint16
	StatusAndPhase  uint16 // bit0 = phase tag, bits 1:15 = status field
}

// CQEntrySize is the wire size of CQEntry, per the NVMe base specification.
const CQEntrySize = 16

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvme

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dswarbrick/vfionvme/bitcodec"
)

// ErrRegisterFile is returned when the supplied MMIO window is shorter
// than registerFileLength.
var ErrRegisterFile = errors.New("nvme: register file shorter than required")

// registerFileLength is the offset one past CMBSZ (0x3C + 4).
const registerFileLength = 0x40

// register file offsets, per the NVMe base specification.
const (
	offCAP    = 0x00
	offVS     = 0x08
	offINTMS  = 0x0C
	offINTMC  = 0x10
	offCC     = 0x14
	offCSTS   = 0x1C
	offNSSR   = 0x20
	offAQA    = 0x24
	offASQ    = 0x28
	offACQ    = 0x30
	offCMBLOC = 0x38
	offCMBSZ  = 0x3C
)

// Capabilities is the decoded 64-bit CAP register at offset 0x00.
type Capabilities struct {
	CMBS      bool
	PMRS      bool
	MPSMAX    uint8 // 4 bits
	MPSMIN    uint8 // 4 bits
	BPS       bool
	CSS       uint8 // 8 bits, command sets supported bitmap
	NSSRS     bool
	DSTRD     uint8 // 4 bits, doorbell stride
	TO        uint8 // 8 bits, worst-case ready time in 500ms units
	AMSWRRUP  bool
	AMSVendor bool
	CQR       bool
	MQES      uint16 // 16 bits, zero-based
}

func decodeCapabilities(raw uint64) (Capabilities, error) {
	r := bitcodec.NewReader(bitcodec.BEBytesFromUint64(raw))
	var c Capabilities
	var err error

	if _, err = r.ReadUint(6); err != nil {
		return c, err
	}
	if c.CMBS, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.PMRS, err = r.ReadBool(); err != nil {
		return c, err
	}
	v, err := r.ReadUint(4)
	if err != nil {
		return c, err
	}
	c.MPSMAX = uint8(v)
	if v, err = r.ReadUint(4); err != nil {
		return c, err
	}
	c.MPSMIN = uint8(v)
	if _, err = r.ReadUint(2); err != nil {
		return c, err
	}
	if c.BPS, err = r.ReadBool(); err != nil {
		return c, err
	}
	if v, err = r.ReadUint(8); err != nil {
		return c, err
	}
	c.CSS = uint8(v)
	if c.NSSRS, err = r.ReadBool(); err != nil {
		return c, err
	}
	if v, err = r.ReadUint(4); err != nil {
		return c, err
	}
	c.DSTRD = uint8(v)
	if v, err = r.ReadUint(8); err != nil {
		return c, err
	}
	c.TO = uint8(v)
	if _, err = r.ReadUint(5); err != nil {
		return c, err
	}
	if c.AMSWRRUP, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.AMSVendor, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.CQR, err = r.ReadBool(); err != nil {
		return c, err
	}
	if v, err = r.ReadUint(16); err != nil {
		return c, err
	}
	c.MQES = uint16(v)

	return c, r.Done()
}

// Version is the decoded 32-bit VS register at offset 0x08.
type Version struct {
	Major    uint16
	Minor    uint8
	Tertiary uint8
}

func decodeVersion(raw uint32) Version {
	b := bitcodec.BEBytesFromUint32(raw)
	return Version{
		Major:    binary.BigEndian.Uint16(b[0:2]),
		Minor:    b[2],
		Tertiary: b[3],
	}
}

// String renders the version as "major.minor.tertiary", e.g. "1.4.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Tertiary)
}

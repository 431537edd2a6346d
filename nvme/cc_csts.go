// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvme

import "github.com/dswarbrick/vfionvme/bitcodec"

// ShutdownNotification is the CC.SHN field.
type ShutdownNotification uint8

const (
	ShutdownNone ShutdownNotification = iota
	ShutdownNormal
	ShutdownAbrupt
)

// ArbitrationMechanism is the CC.AMS field.
type ArbitrationMechanism uint8

const (
	ArbitrationRoundRobin         ArbitrationMechanism = 0b000
	ArbitrationWeightedRoundRobin ArbitrationMechanism = 0b001
	ArbitrationVendorSpecific     ArbitrationMechanism = 0b111
)

// CommandSetSelected is the CC.CSS field.
type CommandSetSelected uint8

const (
	CommandSetNVM       CommandSetSelected = 0b000
	CommandSetAdminOnly CommandSetSelected = 0b111
)

// ControllerConfiguration is the decoded 32-bit CC register at offset 0x14.
type ControllerConfiguration struct {
	IOCQES uint8 // 4 bits, I/O completion queue entry size exponent
	IOSQES uint8 // 4 bits, I/O submission queue entry size exponent
	SHN    ShutdownNotification
	AMS    ArbitrationMechanism
	MPS    uint8 // 4 bits, memory page size exponent
	CSS    CommandSetSelected
	EN     bool
}

func decodeControllerConfiguration(raw uint32) (ControllerConfiguration, error) {
	r := bitcodec.NewReader(bitcodec.BEBytesFromUint32(raw))
	var c ControllerConfiguration
	var err error

	if _, err = r.ReadUint(8); err != nil {
		return c, err
	}
	v, err := r.ReadUint(4)
	if err != nil {
		return c, err
	}
	c.IOCQES = uint8(v)
	if v, err = r.ReadUint(4); err != nil {
		return c, err
	}
	c.IOSQES = uint8(v)
	if v, err = r.ReadUint(2); err != nil {
		return c, err
	}
	c.SHN = ShutdownNotification(v)
	if v, err = r.ReadUint(3); err != nil {
		return c, err
	}
	c.AMS = ArbitrationMechanism(v)
	if v, err = r.ReadUint(4); err != nil {
		return c, err
	}
	c.MPS = uint8(v)
	if v, err = r.ReadUint(3); err != nil {
		return c, err
	}
	c.CSS = CommandSetSelected(v)
	if _, err = r.ReadUint(3); err != nil {
		return c, err
	}
	if c.EN, err = r.ReadBool(); err != nil {
		return c, err
	}
	return c, r.Done()
}

func encodeControllerConfiguration(c ControllerConfiguration) uint32 {
	w := bitcodec.NewWriter(4)
	w.WriteUint(0, 8)
	w.WriteUint(uint64(c.IOCQES), 4)
	w.WriteUint(uint64(c.IOSQES), 4)
	w.WriteUint(uint64(c.SHN), 2)
	w.WriteUint(uint64(c.AMS), 3)
	w.WriteUint(uint64(c.MPS), 4)
	w.WriteUint(uint64(c.CSS), 3)
	w.WriteUint(0, 3)
	w.WriteBool(c.EN)
	return bitcodec.Uint32FromBEBytes(w.Bytes())
}

// ShutdownStatus is the CSTS.SHST field.
type ShutdownStatus uint8

const (
	ShutdownStatusNormalOperation ShutdownStatus = 0b00
	ShutdownStatusOccurring       ShutdownStatus = 0b01
	ShutdownStatusComplete        ShutdownStatus = 0b10
)

func (s ShutdownStatus) String() string {
	switch s {
	case ShutdownStatusNormalOperation:
		return "Normal Operation"
	case ShutdownStatusOccurring:
		return "Shutdown Occurring"
	case ShutdownStatusComplete:
		return "Shutdown Complete"
	default:
		return "unknown"
	}
}

// ControllerStatus is the decoded 32-bit CSTS register at offset 0x1C.
type ControllerStatus struct {
	PP    bool
	NSSRO bool
	SHST  ShutdownStatus
	CFS   bool
	RDY   bool
}

func decodeControllerStatus(raw uint32) (ControllerStatus, error) {
	r := bitcodec.NewReader(bitcodec.BEBytesFromUint32(raw))
	var c ControllerStatus
	var err error

	if _, err = r.ReadUint(26); err != nil {
		return c, err
	}
	if c.PP, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.NSSRO, err = r.ReadBool(); err != nil {
		return c, err
	}
	v, err := r.ReadUint(2)
	if err != nil {
		return c, err
	}
	c.SHST = ShutdownStatus(v)
	if c.CFS, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.RDY, err = r.ReadBool(); err != nil {
		return c, err
	}
	return c, r.Done()
}

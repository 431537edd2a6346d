// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciconfig

import "encoding/binary"

// Type0Body is the 48-byte body of a Type 0 (endpoint) configuration
// header, offsets 0x10-0x3F.
type Type0Body struct {
	BAR                    [6]uint32
	CardbusCISPointer      uint32
	SubsystemVendorID      uint16
	SubsystemDeviceID      uint16
	ExpansionROMBase       uint32
	CapabilitiesPointer    uint8
	InterruptLine          uint8
	InterruptPin           uint8
	MinGrant               uint8
	MaxLatency             uint8
}

func decodeType0Body(b []byte) (*Type0Body, error) {
	t := &Type0Body{}
	for i := 0; i < 6; i++ {
		t.BAR[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	t.CardbusCISPointer = binary.LittleEndian.Uint32(b[24:28])
	t.SubsystemVendorID = binary.LittleEndian.Uint16(b[28:30])
	t.SubsystemDeviceID = binary.LittleEndian.Uint16(b[30:32])
	t.ExpansionROMBase = binary.LittleEndian.Uint32(b[32:36])
	t.CapabilitiesPointer = b[36]
	// b[37:44] reserved
	t.InterruptLine = b[44]
	t.InterruptPin = b[45]
	t.MinGrant = b[46]
	t.MaxLatency = b[47]
	return t, nil
}

func encodeType0Body(t *Type0Body) ([]byte, error) {
	b := make([]byte, 48)
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], t.BAR[i])
	}
	binary.LittleEndian.PutUint32(b[24:28], t.CardbusCISPointer)
	binary.LittleEndian.PutUint16(b[28:30], t.SubsystemVendorID)
	binary.LittleEndian.PutUint16(b[30:32], t.SubsystemDeviceID)
	binary.LittleEndian.PutUint32(b[32:36], t.ExpansionROMBase)
	b[36] = t.CapabilitiesPointer
	b[44] = t.InterruptLine
	b[45] = t.InterruptPin
	b[46] = t.MinGrant
	b[47] = t.MaxLatency
	return b, nil
}

// Type1Body is the 48-byte body of a Type 1 (PCI-to-PCI bridge)
// configuration header, offsets 0x10-0x3F.
type Type1Body struct {
	BAR                         [2]uint32
	PrimaryBus                  uint8
	SecondaryBus                uint8
	SubordinateBus              uint8
	SecondaryLatencyTimer       uint8
	IOBase                      uint8
	IOLimit                     uint8
	SecondaryStatus             uint16
	MemoryBase                  uint16
	MemoryLimit                 uint16
	PrefetchableMemoryBase      uint16
	PrefetchableMemoryLimit     uint16
	PrefetchableBaseUpper32     uint32
	PrefetchableLimitUpper32    uint32
	IOBaseUpper16               uint16
	IOLimitUpper16              uint16
	CapabilitiesPointer         uint8
	ExpansionROMBase            uint32
	InterruptLine               uint8
	InterruptPin                uint8
	BridgeControl               uint16
}

func decodeType1Body(b []byte) (*Type1Body, error) {
	t := &Type1Body{}
	t.BAR[0] = binary.LittleEndian.Uint32(b[0:4])
	t.BAR[1] = binary.LittleEndian.Uint32(b[4:8])
	t.PrimaryBus = b[8]
	t.SecondaryBus = b[9]
	t.SubordinateBus = b[10]
	t.SecondaryLatencyTimer = b[11]
	t.IOBase = b[12]
	t.IOLimit = b[13]
	t.SecondaryStatus = binary.LittleEndian.Uint16(b[14:16])
	t.MemoryBase = binary.LittleEndian.Uint16(b[16:18])
	t.MemoryLimit = binary.LittleEndian.Uint16(b[18:20])
	t.PrefetchableMemoryBase = binary.LittleEndian.Uint16(b[20:22])
	t.PrefetchableMemoryLimit = binary.LittleEndian.Uint16(b[22:24])
	t.PrefetchableBaseUpper32 = binary.LittleEndian.Uint32(b[24:28])
	t.PrefetchableLimitUpper32 = binary.LittleEndian.Uint32(b[28:32])
	t.IOBaseUpper16 = binary.LittleEndian.Uint16(b[32:34])
	t.IOLimitUpper16 = binary.LittleEndian.Uint16(b[34:36])
	t.CapabilitiesPointer = b[36]
	// b[37:40] reserved
	t.ExpansionROMBase = binary.LittleEndian.Uint32(b[40:44])
	t.InterruptLine = b[44]
	t.InterruptPin = b[45]
	t.BridgeControl = binary.LittleEndian.Uint16(b[46:48])
	return t, nil
}

func encodeType1Body(t *Type1Body) ([]byte, error) {
	b := make([]byte, 48)
	binary.LittleEndian.PutUint32(b[0:4], t.BAR[0])
	binary.LittleEndian.PutUint32(b[4:8], t.BAR[1])
	b[8] = t.PrimaryBus
	b[9] = t.SecondaryBus
	b[10] = t.SubordinateBus
	b[11] = t.SecondaryLatencyTimer
	b[12] = t.IOBase
	b[13] = t.IOLimit
	binary.LittleEndian.PutUint16(b[14:16], t.SecondaryStatus)
	binary.LittleEndian.PutUint16(b[16:18], t.MemoryBase)
	binary.LittleEndian.PutUint16(b[18:20], t.MemoryLimit)
	binary.LittleEndian.PutUint16(b[20:22], t.PrefetchableMemoryBase)
	binary.LittleEndian.PutUint16(b[22:24], t.PrefetchableMemoryLimit)
	binary.LittleEndian.PutUint32(b[24:28], t.PrefetchableBaseUpper32)
	binary.LittleEndian.PutUint32(b[28:32], t.PrefetchableLimitUpper32)
	binary.LittleEndian.PutUint16(b[32:34], t.IOBaseUpper16)
	binary.LittleEndian.PutUint16(b[34:36], t.IOLimitUpper16)
	b[36] = t.CapabilitiesPointer
	binary.LittleEndian.PutUint32(b[40:44], t.ExpansionROMBase)
	b[44] = t.InterruptLine
	b[45] = t.InterruptPin
	binary.LittleEndian.PutUint16(b[46:48], t.BridgeControl)
	return b, nil
}

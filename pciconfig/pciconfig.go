// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package pciconfig decodes the first 64 bytes of PCI configuration space
// into typed structures, classifying the device via the generated
// pciclass tree.
package pciconfig

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dswarbrick/vfionvme/bitcodec"
	"github.com/dswarbrick/vfionvme/pciclass"
)

// ErrUnsupportedHeaderType is returned when header_type.layout names
// anything other than Type 0 (endpoint) or Type 1 (PCI-to-PCI bridge).
// Type 2 (CardBus bridge) is not decoded.
var ErrUnsupportedHeaderType = errors.New("pciconfig: unsupported header layout")

// ErrTruncated is returned when fewer than HeaderLength bytes are supplied.
var ErrTruncated = errors.New("pciconfig: config space shorter than 64 bytes")

// HeaderLength is the size of the common PCI configuration header that
// this package decodes.
const HeaderLength = 64

// CommandRegister is the 16-bit command register at offset 0x04.
type CommandRegister struct {
	IOSpace                        bool
	MemorySpace                    bool
	BusMaster                      bool
	SpecialCycles                  bool
	MemoryWriteAndInvalidateEnable bool
	VGAPaletteSnoop                bool
	ParityErrorResponse            bool
	InterruptDisable                bool
	FastBackToBackEnable           bool
	SERREnable                     bool
}

func decodeCommand(b []byte) (CommandRegister, error) {
	r := bitcodec.NewReader(b)
	var c CommandRegister
	if _, err := r.ReadUint(1); err != nil {
		return c, err
	}
	var err error
	if c.ParityErrorResponse, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.VGAPaletteSnoop, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.MemoryWriteAndInvalidateEnable, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.SpecialCycles, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.BusMaster, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.MemorySpace, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.IOSpace, err = r.ReadBool(); err != nil {
		return c, err
	}
	if _, err := r.ReadUint(5); err != nil {
		return c, err
	}
	if c.InterruptDisable, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.FastBackToBackEnable, err = r.ReadBool(); err != nil {
		return c, err
	}
	if c.SERREnable, err = r.ReadBool(); err != nil {
		return c, err
	}
	return c, r.Done()
}

func encodeCommand(c CommandRegister) []byte {
	w := bitcodec.NewWriter(2)
	w.WriteUint(0, 1)
	w.WriteBool(c.ParityErrorResponse)
	w.WriteBool(c.VGAPaletteSnoop)
	w.WriteBool(c.MemoryWriteAndInvalidateEnable)
	w.WriteBool(c.SpecialCycles)
	w.WriteBool(c.BusMaster)
	w.WriteBool(c.MemorySpace)
	w.WriteBool(c.IOSpace)
	w.WriteUint(0, 5)
	w.WriteBool(c.InterruptDisable)
	w.WriteBool(c.FastBackToBackEnable)
	w.WriteBool(c.SERREnable)
	return w.Bytes()
}

// DevSelTiming is the decoded DEVSEL# timing field of StatusRegister.
type DevSelTiming uint8

const (
	DevSelFast DevSelTiming = iota
	DevSelMedium
	DevSelSlow
)

// StatusRegister is the 16-bit status register at offset 0x06.
type StatusRegister struct {
	InterruptStatus         bool
	CapabilitiesList        bool
	Is66MHzCapable          bool
	FastBackToBackCapable   bool
	DetectedParityError     bool
	SignalledSystemError    bool
	ReceivedMasterAbort     bool
	ReceivedTargetAbort     bool
	SignalledTargetAbort    bool
	DEVSELTiming            DevSelTiming
	MasterDataParityError   bool
}

func decodeStatus(b []byte) (StatusRegister, error) {
	r := bitcodec.NewReader(b)
	var s StatusRegister
	var err error
	if s.FastBackToBackCapable, err = r.ReadBool(); err != nil {
		return s, err
	}
	if _, err := r.ReadUint(1); err != nil {
		return s, err
	}
	if s.Is66MHzCapable, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.CapabilitiesList, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.InterruptStatus, err = r.ReadBool(); err != nil {
		return s, err
	}
	if _, err := r.ReadUint(3); err != nil {
		return s, err
	}
	if s.DetectedParityError, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.SignalledSystemError, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.ReceivedMasterAbort, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.ReceivedTargetAbort, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.SignalledTargetAbort, err = r.ReadBool(); err != nil {
		return s, err
	}
	tv, err := r.ReadUint(2)
	if err != nil {
		return s, err
	}
	s.DEVSELTiming = DevSelTiming(tv)
	if s.MasterDataParityError, err = r.ReadBool(); err != nil {
		return s, err
	}
	return s, r.Done()
}

func encodeStatus(s StatusRegister) []byte {
	w := bitcodec.NewWriter(2)
	w.WriteBool(s.FastBackToBackCapable)
	w.WriteUint(0, 1)
	w.WriteBool(s.Is66MHzCapable)
	w.WriteBool(s.CapabilitiesList)
	w.WriteBool(s.InterruptStatus)
	w.WriteUint(0, 3)
	w.WriteBool(s.DetectedParityError)
	w.WriteBool(s.SignalledSystemError)
	w.WriteBool(s.ReceivedMasterAbort)
	w.WriteBool(s.ReceivedTargetAbort)
	w.WriteBool(s.SignalledTargetAbort)
	w.WriteUint(uint64(s.DEVSELTiming), 2)
	w.WriteBool(s.MasterDataParityError)
	return w.Bytes()
}

// HeaderType is the byte at offset 0x0E.
type HeaderType struct {
	MultiFunction bool
	Layout        uint8 // 7 bits: 0 = endpoint, 1 = PCI-to-PCI bridge, 2 = CardBus bridge
}

func decodeHeaderType(b byte) (HeaderType, error) {
	r := bitcodec.NewReader([]byte{b})
	var ht HeaderType
	var err error
	if ht.MultiFunction, err = r.ReadBool(); err != nil {
		return ht, err
	}
	v, err := r.ReadUint(7)
	if err != nil {
		return ht, err
	}
	ht.Layout = uint8(v)
	return ht, r.Done()
}

func encodeHeaderType(ht HeaderType) byte {
	w := bitcodec.NewWriter(1)
	w.WriteBool(ht.MultiFunction)
	w.WriteUint(uint64(ht.Layout), 7)
	return w.Bytes()[0]
}

// BIST is the byte at offset 0x0F.
type BIST struct {
	Supported   bool
	StartTest   bool
	FailureCode uint8 // 4 bits
}

func decodeBIST(b byte) (BIST, error) {
	r := bitcodec.NewReader([]byte{b})
	var bi BIST
	var err error
	if bi.Supported, err = r.ReadBool(); err != nil {
		return bi, err
	}
	if bi.StartTest, err = r.ReadBool(); err != nil {
		return bi, err
	}
	if _, err := r.ReadUint(2); err != nil {
		return bi, err
	}
	v, err := r.ReadUint(4)
	if err != nil {
		return bi, err
	}
	bi.FailureCode = uint8(v)
	return bi, r.Done()
}

func encodeBIST(bi BIST) byte {
	w := bitcodec.NewWriter(1)
	w.WriteBool(bi.Supported)
	w.WriteBool(bi.StartTest)
	w.WriteUint(0, 2)
	w.WriteUint(uint64(bi.FailureCode), 4)
	return w.Bytes()[0]
}

// Header is the common 64-byte PCI configuration header.
type Header struct {
	VendorID       uint16
	DeviceID       uint16
	Command        CommandRegister
	Status         StatusRegister
	RevisionID     uint8
	ProgIf         uint8
	Subclass       uint8
	ClassCode      uint8
	CacheLineSize  uint8
	LatencyTimer   uint8
	HeaderType     HeaderType
	BIST           BIST
	Type0          *Type0Body
	Type1          *Type1Body
	PciID          pciclass.PciDeviceClass
}

// Decode parses a 64-byte PCI configuration space window.
func Decode(data []byte) (*Header, error) {
	if len(data) < HeaderLength {
		return nil, ErrTruncated
	}

	h := &Header{
		VendorID:      binary.LittleEndian.Uint16(data[0x00:0x02]),
		DeviceID:      binary.LittleEndian.Uint16(data[0x02:0x04]),
		RevisionID:    data[0x08],
		ProgIf:        data[0x09],
		Subclass:      data[0x0A],
		ClassCode:     data[0x0B],
		CacheLineSize: data[0x0C],
		LatencyTimer:  data[0x0D],
	}

	var err error
	if h.Command, err = decodeCommand(data[0x04:0x06]); err != nil {
		return nil, fmt.Errorf("pciconfig: command register: %w", err)
	}
	if h.Status, err = decodeStatus(data[0x06:0x08]); err != nil {
		return nil, fmt.Errorf("pciconfig: status register: %w", err)
	}
	if h.HeaderType, err = decodeHeaderType(data[0x0E]); err != nil {
		return nil, fmt.Errorf("pciconfig: header_type: %w", err)
	}
	if h.BIST, err = decodeBIST(data[0x0F]); err != nil {
		return nil, fmt.Errorf("pciconfig: bist: %w", err)
	}

	switch h.HeaderType.Layout {
	case 0:
		h.Type0, err = decodeType0Body(data[0x10:0x40])
	case 1:
		h.Type1, err = decodeType1Body(data[0x10:0x40])
	default:
		return nil, fmt.Errorf("%w: layout %d", ErrUnsupportedHeaderType, h.HeaderType.Layout)
	}
	if err != nil {
		return nil, err
	}

	if h.PciID, err = pciclass.Decode(h.ClassCode, h.Subclass, h.ProgIf); err != nil {
		return nil, fmt.Errorf("pciconfig: pci_id: %w", err)
	}

	return h, nil
}

// Encode re-serializes a Header back to 64 wire bytes.
func Encode(h *Header) ([]byte, error) {
	data := make([]byte, HeaderLength)
	binary.LittleEndian.PutUint16(data[0x00:0x02], h.VendorID)
	binary.LittleEndian.PutUint16(data[0x02:0x04], h.DeviceID)
	copy(data[0x04:0x06], encodeCommand(h.Command))
	copy(data[0x06:0x08], encodeStatus(h.Status))
	data[0x08] = h.RevisionID
	data[0x09] = h.ProgIf
	data[0x0A] = h.Subclass
	data[0x0B] = h.ClassCode
	data[0x0C] = h.CacheLineSize
	data[0x0D] = h.LatencyTimer
	data[0x0E] = encodeHeaderType(h.HeaderType)
	data[0x0F] = encodeBIST(h.BIST)

	switch {
	case h.Type0 != nil:
		body, err := encodeType0Body(h.Type0)
		if err != nil {
			return nil, err
		}
		copy(data[0x10:0x40], body)
	case h.Type1 != nil:
		body, err := encodeType1Body(h.Type1)
		if err != nil {
			return nil, err
		}
		copy(data[0x10:0x40], body)
	default:
		return nil, ErrUnsupportedHeaderType
	}

	return data, nil
}

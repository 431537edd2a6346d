// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNVMeController(t *testing.T) {
	got, err := Decode(0x01, 0x08, 0x02)
	require.NoError(t, err)
	assert.Equal(t, PciDeviceClass{
		ClassID: 0x01, ClassName: "Mass storage controller",
		SubclassID: 0x08, SubclassName: "Non-Volatile memory controller",
		ProgIfID: 0x02, ProgIfName: "NVM Express",
	}, got)
}

func TestDecodeClassWithNoSubclassTable(t *testing.T) {
	got, err := Decode(0x40, 0x00, 0x00)
	require.NoError(t, err)
	assert.Equal(t, "Coprocessor", got.ClassName)
	assert.Zero(t, got.SubclassName)
}

func TestDecodeSubclassWithNoProgIfTable(t *testing.T) {
	got, err := Decode(0x02, 0x00, 0x07)
	require.NoError(t, err)
	assert.Equal(t, "Ethernet controller", got.SubclassName)
	assert.Zero(t, got.ProgIfName)
}

func TestDecodeUnknownClassFallsBackToUnassigned(t *testing.T) {
	got, err := Decode(0xAB, 0x00, 0x00)
	require.NoError(t, err)
	assert.Equal(t, uint8(UnassignedClassID), got.ClassID)
	assert.Equal(t, "Unassigned class", got.ClassName)
}

func TestDecodeUnknownSubclassOnKnownClass(t *testing.T) {
	_, err := Decode(0x0B, 0xAA, 0x00)
	assert.ErrorIs(t, err, ErrUnknownDiscriminant)
}

func TestDecodeUnknownProgIfOnKnownSubclass(t *testing.T) {
	_, err := Decode(0x01, 0x08, 0xFF)
	assert.ErrorIs(t, err, ErrUnknownDiscriminant)
}

func TestDecodeCXLMemoryDevice(t *testing.T) {
	got, err := Decode(0x05, 0x02, 0x10)
	require.NoError(t, err)
	assert.Equal(t, "CXL Memory Device (CXL 2.x)", got.ProgIfName)
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package vfio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupStatusWireSize(t *testing.T) {
	b := groupStatus{Argsz: groupStatusSize}.bytes()
	assert.Len(t, b, 8)
}

func TestDeviceInfoWireSize(t *testing.T) {
	b := deviceInfoBytes(deviceInfoSize)
	assert.Len(t, b, 24)
}

func TestRegionInfoWireSize(t *testing.T) {
	b := regionInfoBytes(regionInfoSize, 0)
	assert.Len(t, b, 32)
}

// TestGroupStatusDecode mirrors the literal byte vectors from the
// original Rust test suite's embedded VfioGroupStatus tests.
func TestGroupStatusDecode(t *testing.T) {
	for _, tc := range []struct {
		name          string
		input         []byte
		wantArgsz     uint32
		wantViable    bool
		wantContainer bool
	}{
		{"both flags", []byte{0x10, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00}, 0x10, true, true},
		{"viable only", []byte{0x08, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}, 0x08, true, false},
		{"no flags", []byte{0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0x04, false, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := groupStatusFromBytes(tc.input)
			require.Equal(t, tc.wantArgsz, s.Argsz)
			assert.Equal(t, tc.wantViable, s.Flags&GroupStatusViable != 0)
			assert.Equal(t, tc.wantContainer, s.Flags&GroupStatusContainerSet != 0)
		})
	}
}

func TestDeviceInfoFlagBits(t *testing.T) {
	b := deviceInfoBytes(deviceInfoSize)
	// set bit0 (RESET) and bit8 (CDX) of the flags word
	b[4] = 0x01
	b[5] = 0x01
	info := deviceInfoFromBytes(b)
	assert.NotZero(t, info.Flags&DeviceInfoReset)
	assert.NotZero(t, info.Flags&DeviceInfoCDX)
	assert.Zero(t, info.Flags&DeviceInfoPCI)
}

func TestRegionInfoFlagBits(t *testing.T) {
	b := regionInfoBytes(regionInfoSize, 7)
	b[4] = byte(RegionInfoRead | RegionInfoMmap) // 0x05
	info := regionInfoFromBytes(b)
	assert.NotZero(t, info.Flags&RegionInfoRead)
	assert.NotZero(t, info.Flags&RegionInfoMmap)
	assert.Zero(t, info.Flags&RegionInfoWrite)
	assert.EqualValues(t, 7, info.Index)
}

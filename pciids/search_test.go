// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *PciIds {
	return &PciIds{
		Vendors: []Vendor{
			{
				ID:   0x10f0,
				Name: "Example Peripherals Inc.",
				Devices: []Device{
					{
						ID:   0x1234,
						Name: "Turbo Widget Adapter",
						Subsystems: []Subsystem{
							{SubvendorID: 0xdead, SubdeviceID: 0xbeef, Name: "OEM Turbo Widget"},
						},
					},
				},
			},
		},
		Classes: []Class{
			{ID: 0x01, Name: "Mass storage controller", SubClasses: []SubClass{
				{ID: 0x08, Name: "Non-Volatile memory controller", ProgIfs: []ProgIf{
					{ID: 0x02, Name: "NVM Express"},
				}},
			}},
		},
	}
}

func TestSearchByName(t *testing.T) {
	// "Turbo Widget Adapter" and its subsystem "OEM Turbo Widget" both match.
	hits := sampleTree().Search("turbo")
	require.Len(t, hits, 2)
	assert.Equal(t, EntityDevice, hits[0].Kind)
	assert.Equal(t, uint16(0x1234), hits[0].Device.ID)
	assert.Equal(t, EntitySubsystem, hits[1].Kind)
}

func TestSearchByVendorID(t *testing.T) {
	hits := sampleTree().Search("10f0")
	require.Len(t, hits, 1)
	assert.Equal(t, EntityVendor, hits[0].Kind)
}

func TestSearchBySubsystemPair(t *testing.T) {
	hits := sampleTree().Search("dead:beef")
	require.Len(t, hits, 1)
	assert.Equal(t, EntitySubsystem, hits[0].Kind)
	assert.Equal(t, "OEM Turbo Widget", hits[0].Subsystem.Name)
}

func TestSearchByClassID(t *testing.T) {
	hits := sampleTree().Search("01")
	require.Len(t, hits, 1)
	assert.Equal(t, EntityClass, hits[0].Kind)
}

func TestSearchANDSemantics(t *testing.T) {
	hits := sampleTree().Search("turbo widget")
	require.Len(t, hits, 2)

	hits = sampleTree().Search("turbo nonexistentterm")
	assert.Empty(t, hits)
}

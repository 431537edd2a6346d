// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeHex8(t *testing.T) {
	assert := assert.New(t)

	for _, tc := range []struct {
		in   string
		want uint8
	}{
		{"FF", 0xFF}, {"ff", 0xFF}, {"00", 0}, {"01", 1}, {"Ab", 0xAB},
	} {
		v, rest, err := TakeHex8(tc.in)
		require.NoError(t, err)
		assert.Equal(tc.want, v)
		assert.Empty(rest)
	}
}

func TestTakeHex8BadLength(t *testing.T) {
	for _, in := range []string{"0", "1", "b", "d"} {
		_, _, err := TakeHex8(in)
		assert.ErrorIsf(t, err, ErrHexWidth, "input %q", in)
	}
}

func TestTakeHex16(t *testing.T) {
	assert := assert.New(t)

	for _, tc := range []struct {
		in   string
		want uint16
	}{
		{"FFFF", 0xFFFF}, {"ffff", 0xFFFF}, {"0000", 0}, {"0123", 0x0123}, {"AbCd", 0xABCD},
	} {
		v, rest, err := TakeHex16(tc.in)
		require.NoError(t, err)
		assert.Equal(tc.want, v)
		assert.Empty(rest)
	}
}

func TestTakeHex16BadLength(t *testing.T) {
	for _, in := range []string{"0", "12", "bad", "dEa"} {
		_, _, err := TakeHex16(in)
		assert.ErrorIsf(t, err, ErrHexWidth, "input %q", in)
	}
}

func TestParseVendorOnly(t *testing.T) {
	assert := assert.New(t)

	ids, err := Parse([]byte("01de  Oxide Computer Company"))
	require.NoError(t, err)
	require.Len(t, ids.Vendors, 1)
	assert.EqualValues(0x01de, ids.Vendors[0].ID)
	assert.Equal("Oxide Computer Company", ids.Vendors[0].Name)
	assert.Empty(ids.Vendors[0].Devices)
}

func TestParseFullVendorDeviceAndSubsystems(t *testing.T) {
	assert := assert.New(t)

	input := "0e11  Compaq Computer Corporation\n" +
		"\ta0f0  Advanced System Management Controller\n" +
		"\t\t0e11 b0f3  ProLiant DL360\n" +
		"\ta0f3  Triflex PCI to ISA Bridge\n" +
		"\ta0f7  PCI Hotplug Controller\n" +
		"\t\t8086 002a  PCI Hotplug Controller A\n" +
		"\t\t8086 002b  PCI Hotplug Controller B"

	ids, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, ids.Vendors, 1)

	v := ids.Vendors[0]
	assert.EqualValues(0x0e11, v.ID)
	assert.Equal("Compaq Computer Corporation", v.Name)
	require.Len(t, v.Devices, 3)

	assert.EqualValues(0xa0f0, v.Devices[0].ID)
	assert.Equal("Advanced System Management Controller", v.Devices[0].Name)
	require.Len(t, v.Devices[0].Subsystems, 1)
	assert.Equal(Subsystem{SubvendorID: 0x0e11, SubdeviceID: 0xb0f3, Name: "ProLiant DL360"}, v.Devices[0].Subsystems[0])

	assert.EqualValues(0xa0f3, v.Devices[1].ID)
	assert.Empty(v.Devices[1].Subsystems)

	assert.EqualValues(0xa0f7, v.Devices[2].ID)
	require.Len(t, v.Devices[2].Subsystems, 2)
	assert.Equal(Subsystem{SubvendorID: 0x8086, SubdeviceID: 0x002a, Name: "PCI Hotplug Controller A"}, v.Devices[2].Subsystems[0])
	assert.Equal(Subsystem{SubvendorID: 0x8086, SubdeviceID: 0x002b, Name: "PCI Hotplug Controller B"}, v.Devices[2].Subsystems[1])
}

func TestParseDeviceWithSubsystems(t *testing.T) {
	assert := assert.New(t)

	input := "8086  Intel Corporation\n" +
		"\t0b60  NVMe DC SSD [Sentinel Rock Plus controller]\n" +
		"\t\t025e 8008  NVMe DC SSD U.2 15mm [D7-P5510]\n" +
		"\t\t025e 8208  NVMe DC SSD U.2 15mm [D7-P5810]"

	ids, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, ids.Vendors, 1)
	d := ids.Vendors[0].Devices[0]
	assert.EqualValues(0x0b60, d.ID)
	assert.Equal("NVMe DC SSD [Sentinel Rock Plus controller]", d.Name)
	require.Len(t, d.Subsystems, 2)
	assert.Equal(uint16(0x025e), d.Subsystems[0].SubvendorID)
	assert.Equal(uint16(0x8008), d.Subsystems[0].SubdeviceID)
}

func TestParseFullClassSubclassAndProgIfs(t *testing.T) {
	assert := assert.New(t)

	input := "C 03  Display controller\n" +
		"\t00  VGA compatible controller\n" +
		"\t\t00  VGA controller\n" +
		"\t\t01  8514 controller\n" +
		"\t01  XGA compatible controller\n" +
		"\t02  3D controller\n" +
		"\t80  Display controller"

	ids, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, ids.Classes, 1)

	c := ids.Classes[0]
	assert.EqualValues(0x03, c.ID)
	assert.Equal("Display controller", c.Name)
	require.Len(t, c.SubClasses, 4)

	assert.EqualValues(0x00, c.SubClasses[0].ID)
	require.Len(t, c.SubClasses[0].ProgIfs, 2)
	assert.Equal(ProgIf{ID: 0x00, Name: "VGA controller"}, c.SubClasses[0].ProgIfs[0])
	assert.Equal(ProgIf{ID: 0x01, Name: "8514 controller"}, c.SubClasses[0].ProgIfs[1])

	assert.EqualValues(0x01, c.SubClasses[1].ID)
	assert.Empty(c.SubClasses[1].ProgIfs)
	assert.EqualValues(0x02, c.SubClasses[2].ID)
	assert.EqualValues(0x80, c.SubClasses[3].ID)
}

func TestParseProgIfVector(t *testing.T) {
	assert := assert.New(t)

	ids, err := Parse([]byte("C 0C  Serial bus controller\n\t03  USB controller\n\t\t10  CXL Memory Device (CXL 2.x)"))
	require.NoError(t, err)
	pi := ids.Classes[0].SubClasses[0].ProgIfs[0]
	assert.EqualValues(0x10, pi.ID)
	assert.Equal("CXL Memory Device (CXL 2.x)", pi.Name)
}

func TestParseSkipsBlankLinesAndComments(t *testing.T) {
	assert := assert.New(t)

	input := "# header comment\n\n01de  Oxide Computer Company\n\n# mid-file comment\n\nC 03  Display controller"

	ids, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Len(ids.Vendors, 1)
	assert.Len(ids.Classes, 1)
}

func TestParseMustConsumeEntireFile(t *testing.T) {
	_, err := Parse([]byte("01de  Oxide Computer Company\nbogus trailing garbage that matches nothing"))
	assert.ErrorIs(t, err, ErrUnexpected)
}

func TestParseRejectsNonUTF8(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrEncoding)
}

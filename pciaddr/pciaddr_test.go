// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithoutDomain(t *testing.T) {
	assert := assert.New(t)

	addr, err := Parse("02:00.0")
	require.NoError(t, err)
	assert.Equal(Address{Domain: 0, Bus: 0x02, Device: 0x00, Function: 0}, addr)
	assert.Equal("0000:02:00.0", addr.String())
}

func TestParseWithDomain(t *testing.T) {
	assert := assert.New(t)

	addr, err := Parse("0001:0a:1f.7")
	require.NoError(t, err)
	assert.Equal(Address{Domain: 1, Bus: 0x0a, Device: 0x1f, Function: 7}, addr)
	assert.Equal("0001:0a:1f.7", addr.String())
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"0000:02:00.0", "0001:ff:1f.7", "ffff:00:00.0"} {
		addr, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, addr.String())
	}
}

func TestParseRejectsOutOfRangeDevice(t *testing.T) {
	_, err := Parse("00:20.0")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseRejectsOutOfRangeFunction(t *testing.T) {
	_, err := Parse("00:00.8")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseRejectsEmptyTokens(t *testing.T) {
	_, err := Parse("00:.0")
	assert.Error(t, err)
}

func TestParseRejectsThreeDigitTokens(t *testing.T) {
	_, err := Parse("00:100.0")
	assert.Error(t, err)
}

func TestParseRejectsBadFormat(t *testing.T) {
	for _, s := range []string{"", "00", "00:00", "1:2:3:4:00.0"} {
		_, err := Parse(s)
		assert.Errorf(t, err, "expected error for %q", s)
	}
}

func TestParseRejectsBadHex(t *testing.T) {
	_, err := Parse("gg:00.0")
	assert.Error(t, err)
}

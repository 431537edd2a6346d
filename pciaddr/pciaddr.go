// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package pciaddr parses and formats PCI bus/device/function addresses.
package pciaddr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadFormat is returned when the separators or token count of a BDF
	// string don't match "b:d.f" or "dom:b:d.f".
	ErrBadFormat = errors.New("pciaddr: invalid bdf format")

	// ErrOutOfRange is returned when device > 31 or function > 7.
	ErrOutOfRange = errors.New("pciaddr: device or function out of range")

	// ErrBadHex is returned when a numeric token is not valid hexadecimal.
	ErrBadHex = errors.New("pciaddr: invalid hex token")
)

// Address is an immutable PCI bus/device/function address, optionally
// qualified by a 16-bit domain.
type Address struct {
	Domain   uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// Parse accepts "bus:device.function" or "domain:bus:device.function",
// all tokens hexadecimal. A missing domain defaults to 0x0000.
func Parse(s string) (Address, error) {
	busTokens := strings.Split(s, ":")

	var domTok, busTok, dfTok string
	switch len(busTokens) {
	case 2:
		domTok, busTok, dfTok = "0", busTokens[0], busTokens[1]
	case 3:
		domTok, busTok, dfTok = busTokens[0], busTokens[1], busTokens[2]
	default:
		return Address{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}

	dfTokens := strings.Split(dfTok, ".")
	if len(dfTokens) != 2 {
		return Address{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}

	domain, err := parseHex16(domTok)
	if err != nil {
		return Address{}, err
	}
	bus, err := parseHex8(busTok)
	if err != nil {
		return Address{}, err
	}
	device, err := parseHex8(dfTokens[0])
	if err != nil {
		return Address{}, err
	}
	function, err := parseHex8(dfTokens[1])
	if err != nil {
		return Address{}, err
	}

	if device > 31 {
		return Address{}, fmt.Errorf("%w: device %d > 31", ErrOutOfRange, device)
	}
	if function > 7 {
		return Address{}, fmt.Errorf("%w: function %d > 7", ErrOutOfRange, function)
	}

	return Address{Domain: domain, Bus: bus, Device: device, Function: function}, nil
}

func parseHex8(tok string) (uint8, error) {
	if tok == "" {
		return 0, fmt.Errorf("%w: empty token", ErrBadFormat)
	}
	v, err := strconv.ParseUint(tok, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadHex, tok)
	}
	return uint8(v), nil
}

func parseHex16(tok string) (uint16, error) {
	if tok == "" {
		return 0, fmt.Errorf("%w: empty token", ErrBadFormat)
	}
	v, err := strconv.ParseUint(tok, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadHex, tok)
	}
	return uint16(v), nil
}

// String renders the canonical "dddd:bb:dd.f" form: lowercase zero-padded
// hex for domain/bus/device, decimal for function.
func (a Address) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%d", a.Domain, a.Bus, a.Device, a.Function)
}

// SysfsPath returns the /sys/bus/pci/devices path for this address.
func (a Address) SysfsPath() string {
	return "/sys/bus/pci/devices/" + a.String()
}

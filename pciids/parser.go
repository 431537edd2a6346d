// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrHexWidth is returned when a numeric token does not have exactly
	// the required number of hex digits (2 for u8 fields, 4 for u16).
	ErrHexWidth = errors.New("pciids: wrong hex digit width")

	// ErrEncoding is returned when the input is not valid UTF-8.
	ErrEncoding = errors.New("pciids: input is not valid UTF-8")

	// ErrUnexpected is returned when a line matches no grammar rule.
	ErrUnexpected = errors.New("pciids: line matches no grammar rule")
)

// TakeHex8 consumes exactly two hex digits from the front of s.
func TakeHex8(s string) (uint8, string, error) {
	if len(s) < 2 || !isHexDigit(s[0]) || !isHexDigit(s[1]) {
		return 0, "", ErrHexWidth
	}
	v, err := strconv.ParseUint(s[:2], 16, 8)
	if err != nil {
		return 0, "", ErrHexWidth
	}
	return uint8(v), s[2:], nil
}

// TakeHex16 consumes exactly four hex digits from the front of s.
func TakeHex16(s string) (uint16, string, error) {
	if len(s) < 4 {
		return 0, "", ErrHexWidth
	}
	for i := 0; i < 4; i++ {
		if !isHexDigit(s[i]) {
			return 0, "", ErrHexWidth
		}
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, "", ErrHexWidth
	}
	return uint16(v), s[4:], nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// splitHex8AndRest parses "<2 hex digits> SP+ rest-of-line".
func splitHex8AndRest(s string) (uint8, string, error) {
	id, rest, err := TakeHex8(s)
	if err != nil {
		return 0, "", err
	}
	name, err := consumeSpacesRequired(rest)
	return id, name, err
}

// splitHex16AndRest parses "<4 hex digits> SP+ rest-of-line".
func splitHex16AndRest(s string) (uint16, string, error) {
	id, rest, err := TakeHex16(s)
	if err != nil {
		return 0, "", err
	}
	name, err := consumeSpacesRequired(rest)
	return id, name, err
}

func consumeSpacesRequired(s string) (string, error) {
	if len(s) == 0 || !isSpace(s[0]) {
		return "", ErrUnexpected
	}
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:], nil
}

func tabDepth(line string) int {
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	return n
}

// parser walks pci.ids text line by line, in the same shape as the
// original nom grammar: many(Vendor) followed by many(Class), with blank
// lines and "#"-comment lines skipped between records.
type parser struct {
	lines []string
	pos   int
}

func newParser(data []byte) (*parser, error) {
	if !utf8.Valid(data) {
		return nil, ErrEncoding
	}
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &parser{lines: lines}, nil
}

func (p *parser) skipNoise() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if line == "" || strings.HasPrefix(line, "#") {
			p.pos++
			continue
		}
		return
	}
}

func (p *parser) peek() (string, bool) {
	p.skipNoise()
	if p.pos >= len(p.lines) {
		return "", false
	}
	return p.lines[p.pos], true
}

func isClassMarker(line string) bool {
	return line == "C" || (len(line) > 1 && line[0] == 'C' && isSpace(line[1]))
}

// Parse parses the entire pci.ids text database. The full input MUST be
// consumed; any non-empty residue is a parse error.
func Parse(data []byte) (*PciIds, error) {
	p, err := newParser(data)
	if err != nil {
		return nil, err
	}

	ids := &PciIds{}

	for {
		v, ok := p.tryParseVendor()
		if !ok {
			break
		}
		ids.Vendors = append(ids.Vendors, v)
	}

	for {
		c, ok := p.tryParseClass()
		if !ok {
			break
		}
		ids.Classes = append(ids.Classes, c)
	}

	p.skipNoise()
	if p.pos < len(p.lines) {
		return nil, fmt.Errorf("%w: at line %d: %q", ErrUnexpected, p.pos+1, p.lines[p.pos])
	}

	return ids, nil
}

func (p *parser) tryParseVendor() (Vendor, bool) {
	line, ok := p.peek()
	if !ok || tabDepth(line) != 0 || isClassMarker(line) {
		return Vendor{}, false
	}

	id, name, err := splitHex16AndRest(line)
	if err != nil {
		return Vendor{}, false
	}
	p.pos++

	v := Vendor{ID: id, Name: name}
	for {
		d, ok := p.tryParseDevice()
		if !ok {
			break
		}
		v.Devices = append(v.Devices, d)
	}
	return v, true
}

func (p *parser) tryParseDevice() (Device, bool) {
	line, ok := p.peek()
	if !ok || tabDepth(line) != 1 {
		return Device{}, false
	}

	id, name, err := splitHex16AndRest(line[1:])
	if err != nil {
		return Device{}, false
	}
	p.pos++

	d := Device{ID: id, Name: name}
	for {
		s, ok := p.tryParseSubsystem()
		if !ok {
			break
		}
		d.Subsystems = append(d.Subsystems, s)
	}
	return d, true
}

func (p *parser) tryParseSubsystem() (Subsystem, bool) {
	line, ok := p.peek()
	if !ok || tabDepth(line) != 2 {
		return Subsystem{}, false
	}

	body := line[2:]
	subvendor, rest, err := TakeHex16(body)
	if err != nil {
		return Subsystem{}, false
	}
	rest, err = consumeSpacesRequired(rest)
	if err != nil {
		return Subsystem{}, false
	}
	subdevice, name, err := splitHex16AndRest(rest)
	if err != nil {
		return Subsystem{}, false
	}
	p.pos++

	return Subsystem{SubvendorID: subvendor, SubdeviceID: subdevice, Name: name}, true
}

func (p *parser) tryParseClass() (Class, bool) {
	line, ok := p.peek()
	if !ok || !isClassMarker(line) {
		return Class{}, false
	}

	body, err := consumeSpacesRequired(line[1:])
	if err != nil {
		return Class{}, false
	}
	id, name, err := splitHex8AndRest(body)
	if err != nil {
		return Class{}, false
	}
	p.pos++

	c := Class{ID: id, Name: name}
	for {
		sc, ok := p.tryParseSubClass()
		if !ok {
			break
		}
		c.SubClasses = append(c.SubClasses, sc)
	}
	return c, true
}

func (p *parser) tryParseSubClass() (SubClass, bool) {
	line, ok := p.peek()
	if !ok || tabDepth(line) != 1 {
		return SubClass{}, false
	}

	id, name, err := splitHex8AndRest(line[1:])
	if err != nil {
		return SubClass{}, false
	}
	p.pos++

	sc := SubClass{ID: id, Name: name}
	for {
		pi, ok := p.tryParseProgIf()
		if !ok {
			break
		}
		sc.ProgIfs = append(sc.ProgIfs, pi)
	}
	return sc, true
}

func (p *parser) tryParseProgIf() (ProgIf, bool) {
	line, ok := p.peek()
	if !ok || tabDepth(line) != 2 {
		return ProgIf{}, false
	}

	id, name, err := splitHex8AndRest(line[2:])
	if err != nil {
		return ProgIf{}, false
	}
	p.pos++

	return ProgIf{ID: id, Name: name}, true
}

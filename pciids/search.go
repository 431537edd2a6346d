// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciids

import "strings"

// EntityKind distinguishes the concrete type held by an Entity search hit.
type EntityKind int

const (
	EntityClass EntityKind = iota
	EntitySubClass
	EntityProgIf
	EntityVendor
	EntityDevice
	EntitySubsystem
)

// Entity is a single search hit, tagged with which tree node it wraps.
type Entity struct {
	Kind      EntityKind
	Class     *Class
	SubClass  *SubClass
	ProgIf    *ProgIf
	Vendor    *Vendor
	Device    *Device
	Subsystem *Subsystem
}

// term is one atomic filter extracted from a search query.
type term struct {
	name      string // substring match against any name field, lowercased
	id8       *uint8
	id16      *uint16
	subvendor *uint16 // set together with subdevice for a "vendor:device" pair
	subdevice *uint16
}

// parseQuery splits a whitespace-separated query string into terms,
// combined with AND semantics: every term must match for an entity to be
// reported. A "vendor:device" hex pair matches Subsystem entries; a bare
// hex or decimal token matches an 8- or 16-bit numeric ID depending on its
// magnitude; anything else is a case-insensitive substring name match.
func parseQuery(q string) []term {
	var terms []term
	for _, tok := range strings.Fields(q) {
		if v, d, ok := parseSubsystemPair(tok); ok {
			terms = append(terms, term{subvendor: &v, subdevice: &d})
			continue
		}
		if v, ok := parseNumeric(tok); ok {
			if v <= 0xFF {
				v8 := uint8(v)
				terms = append(terms, term{id8: &v8})
			} else {
				v16 := uint16(v)
				terms = append(terms, term{id16: &v16})
			}
			continue
		}
		terms = append(terms, term{name: strings.ToLower(tok)})
	}
	return terms
}

func parseSubsystemPair(tok string) (uint16, uint16, bool) {
	a, b, found := strings.Cut(tok, ":")
	if !found {
		return 0, 0, false
	}
	v, ok1 := parseHexOnly(a)
	d, ok2 := parseHexOnly(b)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return uint16(v), uint16(d), true
}

func parseHexOnly(s string) (uint64, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, false
	}
	var v uint64
	for _, c := range s {
		if !isHexDigit(byte(c)) {
			return 0, false
		}
		v = v*16 + uint64(hexVal(byte(c)))
	}
	return v, true
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func parseNumeric(tok string) (uint64, bool) {
	hasPrefix := strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X")
	if !hasPrefix {
		if v, ok := parseDecimalOnly(tok); ok {
			return v, true
		}
	}
	return parseHexOnly(tok)
}

func parseDecimalOnly(tok string) (uint64, bool) {
	if tok == "" {
		return 0, false
	}
	var v uint64
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
	}
	return v, true
}

func matchesAll(terms []term, name string, ids8 []uint8, ids16 []uint16) bool {
	lname := strings.ToLower(name)
	for _, t := range terms {
		hit := false
		switch {
		case t.name != "":
			hit = strings.Contains(lname, t.name)
		case t.id8 != nil:
			for _, id := range ids8 {
				if id == *t.id8 {
					hit = true
					break
				}
			}
		case t.id16 != nil:
			for _, id := range ids16 {
				if id == *t.id16 {
					hit = true
					break
				}
			}
		case t.subvendor != nil:
			// only meaningful for Subsystem entries; handled by caller
			hit = false
		}
		if !hit {
			return false
		}
	}
	return true
}

// Search walks the whole tree, matching classes/subclasses/prog-ifs by
// name or 8-bit id, and vendors/devices/subsystems by name, 16-bit id, or
// (for subsystems) an exact vendor:device pair. All terms in the query
// must match (AND semantics).
func (ids *PciIds) Search(query string) []Entity {
	terms := parseQuery(query)
	var found []Entity

	for ci := range ids.Classes {
		c := &ids.Classes[ci]
		if matchesAll(terms, c.Name, []uint8{c.ID}, nil) {
			found = append(found, Entity{Kind: EntityClass, Class: c})
		}
		for si := range c.SubClasses {
			sc := &c.SubClasses[si]
			if matchesAll(terms, sc.Name, []uint8{sc.ID}, nil) {
				found = append(found, Entity{Kind: EntitySubClass, SubClass: sc})
			}
			for pi := range sc.ProgIfs {
				p := &sc.ProgIfs[pi]
				if matchesAll(terms, p.Name, []uint8{p.ID}, nil) {
					found = append(found, Entity{Kind: EntityProgIf, ProgIf: p})
				}
			}
		}
	}

	for vi := range ids.Vendors {
		v := &ids.Vendors[vi]
		if matchesAll(terms, v.Name, nil, []uint16{v.ID}) {
			found = append(found, Entity{Kind: EntityVendor, Vendor: v})
		}
		for di := range v.Devices {
			d := &v.Devices[di]
			if matchesAll(terms, d.Name, nil, []uint16{d.ID}) {
				found = append(found, Entity{Kind: EntityDevice, Device: d})
			}
			for ssi := range d.Subsystems {
				s := &d.Subsystems[ssi]
				if subsystemMatches(terms, s) {
					found = append(found, Entity{Kind: EntitySubsystem, Subsystem: s})
				}
			}
		}
	}

	return found
}

func subsystemMatches(terms []term, s *Subsystem) bool {
	lname := strings.ToLower(s.Name)
	for _, t := range terms {
		hit := false
		switch {
		case t.name != "":
			hit = strings.Contains(lname, t.name)
		case t.id16 != nil:
			hit = *t.id16 == s.SubvendorID || *t.id16 == s.SubdeviceID
		case t.subvendor != nil:
			hit = *t.subvendor == s.SubvendorID && *t.subdevice == s.SubdeviceID
		}
		if !hit {
			return false
		}
	}
	return true
}

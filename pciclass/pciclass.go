// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package pciclass is the generated-style class tree for PCI config space
// class_code/subclass/prog_if decoding. Structurally it is a checked-in
// instance of what cmd/genpciclass would emit from a live pci.ids database:
// a static table walked by Decode, rather than a literal sum type, since Go
// has no direct equivalent of a tagged union with per-variant payloads.
package pciclass

import (
	"errors"
	"fmt"
)

// ErrUnknownDiscriminant is returned when a class is recognized but its
// subclass, or a recognized subclass's prog_if, has no table entry.
var ErrUnknownDiscriminant = errors.New("pciclass: unknown subclass or prog_if discriminant")

// ProgIf is a programming-interface entry scoped to one subclass.
type ProgIf struct {
	ID   uint8
	Name string
}

// Subclass is a subclass entry scoped to one class. ProgIfs is nil when
// this subclass carries no prog-if enum at all; in that case any prog_if
// byte on the wire is decoded but not interpreted.
type Subclass struct {
	ID      uint8
	Name    string
	ProgIfs []ProgIf
}

// ClassDef is one top-level PCI device class. Subclasses is nil for
// classes with no subclass enum (NonEssentialInstrumentation, Coprocessor,
// UnassignedClass).
type ClassDef struct {
	ID         uint8
	Name       string
	Subclasses []Subclass
}

// PciDeviceClass is the fully decoded classification of a PCI device's
// class_code/subclass/prog_if triple, with human-readable names resolved
// at every level that applies.
type PciDeviceClass struct {
	ClassID      uint8
	ClassName    string
	SubclassID   uint8
	SubclassName string // empty if ClassDef carries no subclass table
	ProgIfID     uint8
	ProgIfName   string // empty if the matched Subclass carries no prog-if table
}

func findSubclass(subclasses []Subclass, id uint8) (Subclass, bool) {
	for _, sc := range subclasses {
		if sc.ID == id {
			return sc, true
		}
	}
	return Subclass{}, false
}

func findProgIf(progIfs []ProgIf, id uint8) (ProgIf, bool) {
	for _, p := range progIfs {
		if p.ID == id {
			return p, true
		}
	}
	return ProgIf{}, false
}

func findClass(id uint8) (ClassDef, bool) {
	for _, c := range classTable {
		if c.ID == id {
			return c, true
		}
	}
	return ClassDef{}, false
}

// Decode classifies a (class_code, subclass, prog_if) triple read from PCI
// config space offsets 0x0B/0x0A/0x09. An unrecognized class_code decodes
// as UnassignedClass (0xFF) with no error, matching the original Rust
// DekuRead implementation's Default fallback. An unrecognized subclass or
// prog_if on an otherwise-known class returns ErrUnknownDiscriminant.
func Decode(classCode, subclass, progIf uint8) (PciDeviceClass, error) {
	class, ok := findClass(classCode)
	if !ok {
		class, _ = findClass(UnassignedClassID)
		return PciDeviceClass{ClassID: class.ID, ClassName: class.Name}, nil
	}

	out := PciDeviceClass{ClassID: class.ID, ClassName: class.Name}
	if class.Subclasses == nil {
		return out, nil
	}

	sc, ok := findSubclass(class.Subclasses, subclass)
	if !ok {
		return out, fmt.Errorf("%w: class %#02x subclass %#02x", ErrUnknownDiscriminant, classCode, subclass)
	}
	out.SubclassID = sc.ID
	out.SubclassName = sc.Name
	if sc.ProgIfs == nil {
		return out, nil
	}

	p, ok := findProgIf(sc.ProgIfs, progIf)
	if !ok {
		return out, fmt.Errorf("%w: class %#02x subclass %#02x prog_if %#02x", ErrUnknownDiscriminant, classCode, subclass, progIf)
	}
	out.ProgIfID = p.ID
	out.ProgIfName = p.Name
	return out, nil
}

// UnassignedClassID is the PCI class code reserved for devices with no
// assigned class.
const UnassignedClassID = 0xFF

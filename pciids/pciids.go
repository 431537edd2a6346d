// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package pciids parses the hierarchical pci.ids vendor/device/class text
// database into a typed, ordered tree.
package pciids

// ProgIf is a programming-interface leaf under a SubClass.
type ProgIf struct {
	ID   uint8
	Name string
}

// SubClass is a subclass leaf under a Class, carrying zero or more ProgIfs.
type SubClass struct {
	ID      uint8
	Name    string
	ProgIfs []ProgIf
}

// Class is a top-level PCI device class, carrying zero or more SubClasses.
type Class struct {
	ID         uint8
	Name       string
	SubClasses []SubClass
}

// Subsystem identifies a vendor/device subsystem pairing under a Device.
type Subsystem struct {
	SubvendorID uint16
	SubdeviceID uint16
	Name        string
}

// Device is a device leaf under a Vendor, carrying zero or more Subsystems.
type Device struct {
	ID         uint16
	Name       string
	Subsystems []Subsystem
}

// Vendor is a top-level PCI vendor, carrying zero or more Devices.
type Vendor struct {
	ID      uint16
	Name    string
	Devices []Device
}

// PciIds is the full parsed database: classes and vendors, each in file
// order. IDs within a parent are not re-sorted or deduplicated.
type PciIds struct {
	Classes []Class
	Vendors []Vendor
}

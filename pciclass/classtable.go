// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package pciclass

// classTable is the checked-in class tree, ported in meaning from the
// upstream project's own committed generated output. cmd/genpciclass
// produces the same shape from a live pci.ids file.
var classTable = []ClassDef{
	{
		ID:   0x00,
		Name: "Unclassified device",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Non-VGA unclassified device"},
			{ID: 0x01, Name: "VGA compatible unclassified device"},
			{ID: 0x05, Name: "Image coprocessor"},
		},
	},
	{
		ID:   0x01,
		Name: "Mass storage controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "SCSI storage controller"},
			{ID: 0x01, Name: "IDE interface", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "ISA Compatibility mode-only controller"},
				{ID: 0x05, Name: "PCI native mode-only controller"},
				{ID: 0x0A, Name: "ISA Compatibility mode controller, supports both channels switched to PCI native mode"},
				{ID: 0x0F, Name: "PCI native mode controller, supports both channels switched to ISA compatibility mode"},
				{ID: 0x80, Name: "ISA Compatibility mode-only controller, supports bus mastering"},
				{ID: 0x85, Name: "PCI native mode-only controller, supports bus mastering"},
				{ID: 0x8A, Name: "ISA Compatibility mode controller, supports both channels switched to PCI native mode, supports bus mastering"},
				{ID: 0x8F, Name: "PCI native mode controller, supports both channels switched to ISA compatibility mode, supports bus mastering"},
			}},
			{ID: 0x02, Name: "Floppy disk controller"},
			{ID: 0x03, Name: "IPI bus controller"},
			{ID: 0x04, Name: "RAID bus controller"},
			{ID: 0x05, Name: "ATA controller", ProgIfs: []ProgIf{
				{ID: 0x20, Name: "ADMA single stepping"},
				{ID: 0x30, Name: "ADMA continuous operation"},
			}},
			{ID: 0x06, Name: "SATA controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Vendor specific"},
				{ID: 0x01, Name: "AHCI 1.0"},
				{ID: 0x02, Name: "Serial Storage Bus"},
			}},
			{ID: 0x07, Name: "Serial Attached SCSI controller", ProgIfs: []ProgIf{
				{ID: 0x01, Name: "Serial Storage Bus"},
			}},
			{ID: 0x08, Name: "Non-Volatile memory controller", ProgIfs: []ProgIf{
				{ID: 0x01, Name: "NVMHCI"},
				{ID: 0x02, Name: "NVM Express"},
			}},
			{ID: 0x09, Name: "Universal Flash Storage controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Vendor specific"},
				{ID: 0x01, Name: "UFSHCI"},
			}},
			{ID: 0x80, Name: "Mass storage controller"},
		},
	},
	{
		ID:   0x02,
		Name: "Network controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Ethernet controller"},
			{ID: 0x01, Name: "Token ring network controller"},
			{ID: 0x02, Name: "FDDI network controller"},
			{ID: 0x03, Name: "ATM network controller"},
			{ID: 0x04, Name: "ISDN controller"},
			{ID: 0x05, Name: "WorldFip controller"},
			{ID: 0x06, Name: "PICMG controller"},
			{ID: 0x07, Name: "Infiniband controller"},
			{ID: 0x08, Name: "Fabric controller"},
			{ID: 0x80, Name: "Network controller"},
		},
	},
	{
		ID:   0x03,
		Name: "Display controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "VGA compatible controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "VGA controller"},
				{ID: 0x01, Name: "8514 controller"},
			}},
			{ID: 0x01, Name: "XGA compatible controller"},
			{ID: 0x02, Name: "3D controller"},
			{ID: 0x80, Name: "Display controller"},
		},
	},
	{
		ID:   0x04,
		Name: "Multimedia controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Multimedia video controller"},
			{ID: 0x01, Name: "Multimedia audio controller"},
			{ID: 0x02, Name: "Computer telephony device"},
			{ID: 0x03, Name: "Audio device"},
			{ID: 0x80, Name: "Multimedia controller"},
		},
	},
	{
		ID:   0x05,
		Name: "Memory controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "RAM memory"},
			{ID: 0x01, Name: "FLASH memory"},
			{ID: 0x02, Name: "CXL", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "CXL Memory Device (Vendor specific)"},
				{ID: 0x10, Name: "CXL Memory Device (CXL 2.x)"},
			}},
			{ID: 0x80, Name: "Memory controller"},
		},
	},
	{
		ID:   0x06,
		Name: "Bridge",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Host bridge"},
			{ID: 0x01, Name: "ISA bridge"},
			{ID: 0x02, Name: "EISA bridge"},
			{ID: 0x03, Name: "MicroChannel bridge"},
			{ID: 0x04, Name: "PCI bridge", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Normal decode"},
				{ID: 0x01, Name: "Subtractive decode"},
			}},
			{ID: 0x05, Name: "PCMCIA bridge"},
			{ID: 0x06, Name: "NuBus bridge"},
			{ID: 0x07, Name: "CardBus bridge"},
			{ID: 0x08, Name: "RACEway bridge", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Transparent mode"},
				{ID: 0x01, Name: "Endpoint mode"},
			}},
			{ID: 0x09, Name: "Semi-transparent PCI-to-PCI bridge", ProgIfs: []ProgIf{
				{ID: 0x40, Name: "Primary bus towards host CPU"},
				{ID: 0x80, Name: "Secondary bus towards host CPU"},
			}},
			{ID: 0x0A, Name: "InfiniBand to PCI host bridge"},
			{ID: 0x80, Name: "Bridge"},
		},
	},
	{
		ID:   0x07,
		Name: "Communication controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Serial controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "8250"},
				{ID: 0x01, Name: "16450"},
				{ID: 0x02, Name: "16550"},
				{ID: 0x03, Name: "16650"},
				{ID: 0x04, Name: "16750"},
				{ID: 0x05, Name: "16850"},
				{ID: 0x06, Name: "16950"},
			}},
			{ID: 0x01, Name: "Parallel controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "SPP"},
				{ID: 0x01, Name: "BiDir"},
				{ID: 0x02, Name: "ECP"},
				{ID: 0x03, Name: "IEEE1284"},
				{ID: 0xFE, Name: "IEEE1284 Target"},
			}},
			{ID: 0x02, Name: "Multiport serial controller"},
			{ID: 0x03, Name: "Modem", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Generic"},
				{ID: 0x01, Name: "Hayes/16450"},
				{ID: 0x02, Name: "Hayes/16550"},
				{ID: 0x03, Name: "Hayes/16650"},
				{ID: 0x04, Name: "Hayes/16750"},
			}},
			{ID: 0x04, Name: "GPIB controller"},
			{ID: 0x05, Name: "Smard Card controller"},
			{ID: 0x80, Name: "Communication controller"},
		},
	},
	{
		ID:   0x08,
		Name: "Generic system peripheral",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "PIC", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "8259"},
				{ID: 0x01, Name: "ISA PIC"},
				{ID: 0x02, Name: "EISA PIC"},
				{ID: 0x10, Name: "IO-APIC"},
				{ID: 0x20, Name: "IO(X)-APIC"},
			}},
			{ID: 0x01, Name: "DMA controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "8237"},
				{ID: 0x01, Name: "ISA DMA"},
				{ID: 0x02, Name: "EISA DMA"},
			}},
			{ID: 0x02, Name: "Timer", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "8254"},
				{ID: 0x01, Name: "ISA Timer"},
				{ID: 0x02, Name: "EISA Timers"},
				{ID: 0x03, Name: "HPET"},
			}},
			{ID: 0x03, Name: "RTC", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Generic"},
				{ID: 0x01, Name: "ISA RTC"},
			}},
			{ID: 0x04, Name: "PCI Hot-plug controller"},
			{ID: 0x05, Name: "SD Host controller"},
			{ID: 0x06, Name: "IOMMU"},
			{ID: 0x80, Name: "System peripheral"},
			{ID: 0x99, Name: "Timing Card", ProgIfs: []ProgIf{
				{ID: 0x01, Name: "TAP Timing Card"},
			}},
		},
	},
	{
		ID:   0x09,
		Name: "Input device controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Keyboard controller"},
			{ID: 0x01, Name: "Digitizer Pen"},
			{ID: 0x02, Name: "Mouse controller"},
			{ID: 0x03, Name: "Scanner controller"},
			{ID: 0x04, Name: "Gameport controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Generic"},
				{ID: 0x10, Name: "Extended"},
			}},
			{ID: 0x80, Name: "Input device controller"},
		},
	},
	{
		ID:   0x0A,
		Name: "Docking station",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Generic Docking Station"},
			{ID: 0x80, Name: "Docking Station"},
		},
	},
	{
		ID:   0x0B,
		Name: "Processor",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "386"},
			{ID: 0x01, Name: "486"},
			{ID: 0x02, Name: "Pentium"},
			{ID: 0x10, Name: "Alpha"},
			{ID: 0x20, Name: "PowerPC"},
			{ID: 0x30, Name: "MIPS"},
			{ID: 0x40, Name: "Co-processor"},
		},
	},
	{
		ID:   0x0C,
		Name: "Serial bus controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "FireWire (IEEE 1394)", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "Generic"},
				{ID: 0x10, Name: "OHCI"},
			}},
			{ID: 0x01, Name: "ACCESS Bus"},
			{ID: 0x02, Name: "SSA"},
			{ID: 0x03, Name: "USB controller", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "UHCI"},
				{ID: 0x10, Name: "OHCI"},
				{ID: 0x20, Name: "EHCI"},
				{ID: 0x30, Name: "XHCI"},
				{ID: 0x40, Name: "USB4 Host Interface"},
				{ID: 0x80, Name: "Unspecified"},
				{ID: 0xFE, Name: "USB Device"},
			}},
			{ID: 0x04, Name: "Fibre Channel"},
			{ID: 0x05, Name: "SMBus"},
			{ID: 0x06, Name: "InfiniBand"},
			{ID: 0x07, Name: "IPMI Interface", ProgIfs: []ProgIf{
				{ID: 0x00, Name: "SMIC"},
				{ID: 0x01, Name: "KCS"},
				{ID: 0x02, Name: "BT (Block Transfer)"},
			}},
			{ID: 0x08, Name: "SERCOS interface"},
			{ID: 0x09, Name: "CANBUS"},
			{ID: 0x80, Name: "Serial bus controller"},
		},
	},
	{
		ID:   0x0D,
		Name: "Wireless controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "IRDA controller"},
			{ID: 0x01, Name: "Consumer IR controller"},
			{ID: 0x10, Name: "RF controller"},
			{ID: 0x11, Name: "Bluetooth"},
			{ID: 0x12, Name: "Broadband"},
			{ID: 0x20, Name: "802.1a controller"},
			{ID: 0x21, Name: "802.1b controller"},
			{ID: 0x80, Name: "Wireless controller"},
		},
	},
	{
		ID:   0x0E,
		Name: "Intelligent controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "I2O"},
		},
	},
	{
		ID:   0x0F,
		Name: "Satellite communications controller",
		Subclasses: []Subclass{
			{ID: 0x01, Name: "Satellite TV controller"},
			{ID: 0x02, Name: "Satellite audio communication controller"},
			{ID: 0x03, Name: "Satellite voice communication controller"},
			{ID: 0x04, Name: "Satellite data communication controller"},
		},
	},
	{
		ID:   0x10,
		Name: "Encryption controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Network and computing encryption device"},
			{ID: 0x10, Name: "Entertainment encryption device"},
			{ID: 0x80, Name: "Encryption controller"},
		},
	},
	{
		ID:   0x11,
		Name: "Signal processing controller",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "DPIO module"},
			{ID: 0x01, Name: "Performance counters"},
			{ID: 0x10, Name: "Communication synchronizer"},
			{ID: 0x20, Name: "Signal processing management"},
			{ID: 0x80, Name: "Signal processing controller"},
		},
	},
	{
		ID:   0x12,
		Name: "Processing accelerators",
		Subclasses: []Subclass{
			{ID: 0x00, Name: "Processing accelerators"},
			{ID: 0x01, Name: "SNIA Smart Data Accelerator Interface (SDXI) controller"},
		},
	},
	{
		ID: 0x13,
		Name: "Non-Essential Instrumentation",
	},
	{
		ID:   0x40,
		Name: "Coprocessor",
	},
	{
		ID:   UnassignedClassID,
		Name: "Unassigned class",
	},
}

// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

// ClassOfDevice decodes the 24-bit class-of-device value carried by the
// adapter and device Class properties.
type ClassOfDevice uint32

// Major service class bits (bits 13-23).
var majorServiceClasses = []struct {
	bit  uint
	name string
}{
	{13, "Limited Discoverable Mode"},
	{16, "Positioning"},
	{17, "Networking"},
	{18, "Rendering"},
	{19, "Capturing"},
	{20, "Object Transfer"},
	{21, "Audio"},
	{22, "Telephony"},
	{23, "Information"},
}

// Major device classes (bits 8-12).
var majorDeviceClasses = map[uint32]string{
	0x00: "Miscellaneous",
	0x01: "Computer",
	0x02: "Phone",
	0x03: "LAN/Network Access Point",
	0x04: "Audio/Video",
	0x05: "Peripheral",
	0x06: "Imaging",
	0x07: "Wearable",
	0x08: "Toy",
	0x09: "Health",
	0x1f: "Uncategorized",
}

// Minor device classes (bits 2-7), keyed by major class.
var minorDeviceClasses = map[uint32]map[uint32]string{
	0x01: { // Computer
		0x00: "Uncategorized",
		0x01: "Desktop workstation",
		0x02: "Server-class computer",
		0x03: "Laptop",
		0x04: "Handheld PC/PDA",
		0x05: "Palm sized PC/PDA",
		0x06: "Wearable computer",
	},
	0x02: { // Phone
		0x00: "Uncategorized",
		0x01: "Cellular",
		0x02: "Cordless",
		0x03: "Smart phone",
		0x04: "Wired modem or voice gateway",
		0x05: "Common ISDN Access",
	},
	0x04: { // Audio/Video
		0x00: "Uncategorized",
		0x01: "Wearable Headset Device",
		0x02: "Hands-free Device",
		0x04: "Microphone",
		0x05: "Loudspeaker",
		0x06: "Headphones",
		0x07: "Portable Audio",
		0x08: "Car audio",
		0x09: "Set-top box",
		0x0a: "HiFi Audio Device",
		0x0b: "VCR",
		0x0c: "Video Camera",
		0x0d: "Camcorder",
		0x0e: "Video Monitor",
		0x0f: "Video Display and Loudspeaker",
		0x10: "Video Conferencing",
		0x12: "Gaming/Toy",
	},
	0x05: { // Peripheral; keyboard/pointing bits 6-7 handled separately
		0x01: "Joystick",
		0x02: "Gamepad",
		0x03: "Remote control",
		0x04: "Sensing device",
		0x05: "Digitizer tablet",
		0x06: "Card Reader",
	},
}

// MajorServiceClasses lists the names of all service class bits set in the
// value.
func (c ClassOfDevice) MajorServiceClasses() []string {
	var classes []string
	for _, sc := range majorServiceClasses {
		if uint32(c)&(1<<sc.bit) != 0 {
			classes = append(classes, sc.name)
		}
	}
	return classes
}

func (c ClassOfDevice) majorDeviceValue() uint32 {
	return (uint32(c) >> 8) & 0x1f
}

// MajorDeviceClass returns the major device class name.
func (c ClassOfDevice) MajorDeviceClass() string {
	name, ok := majorDeviceClasses[c.majorDeviceValue()]
	if !ok {
		return "Reserved"
	}
	return name
}

// MinorDeviceClass returns the minor device class name, which depends on
// the major class.
func (c ClassOfDevice) MinorDeviceClass() string {
	major := c.majorDeviceValue()
	minor := (uint32(c) >> 2) & 0x3f

	if major == 0x05 {
		// bits 6-7 carry the keyboard/pointing combination
		switch minor >> 4 {
		case 0x01:
			return "Keyboard"
		case 0x02:
			return "Pointing device"
		case 0x03:
			return "Combo keyboard/pointing device"
		}
		minor &= 0x0f
	}

	table, ok := minorDeviceClasses[major]
	if !ok {
		return "Uncategorized"
	}
	name, ok := table[minor]
	if !ok {
		return "Uncategorized"
	}
	return name
}

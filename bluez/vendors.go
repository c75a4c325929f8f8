// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

// Company identifiers from the Bluetooth assigned numbers, as found in the
// Vendor device property and in EIR data. Only the commonly seen ones are
// carried here.
var vendorNames = map[uint16]string{
	0x0000: "Ericsson Technology Licensing",
	0x0001: "Nokia Mobile Phones",
	0x0002: "Intel Corp.",
	0x0003: "IBM Corp.",
	0x0004: "Toshiba Corp.",
	0x0005: "3Com",
	0x0006: "Microsoft",
	0x0007: "Lucent",
	0x0008: "Motorola",
	0x0009: "Infineon Technologies AG",
	0x000a: "Cambridge Silicon Radio",
	0x000d: "Texas Instruments Inc.",
	0x000f: "Broadcom Corporation",
	0x0010: "Mitel Semiconductor",
	0x0012: "Zeevo, Inc.",
	0x0013: "Atmel Corporation",
	0x001d: "Qualcomm",
	0x0025: "NXP Semiconductors",
	0x002b: "Tenovis",
	0x002f: "CSR",
	0x0036: "Renesas Technology Corp.",
	0x003b: "Gennum Corporation",
	0x0039: "Spansion",
	0x0046: "MediaTek, Inc.",
	0x0047: "Bluegiga",
	0x004c: "Apple, Inc.",
	0x0056: "Sony Ericsson Mobile Communications",
	0x005d: "Realtek Semiconductor Corporation",
	0x0075: "Samsung Electronics Co. Ltd.",
	0x0078: "Nike, Inc.",
	0x0085: "BlueRadios, Inc.",
	0x0087: "Garmin International, Inc.",
	0x00c4: "LG Electronics",
	0x00d7: "Qualcomm Atheros Communications",
	0x00e0: "Google",
	0x0131: "Cypress Semiconductor",
	0x015d: "Estimote, Inc.",
	0x02e5: "Espressif Incorporated",
}

// VendorName returns the company name for a bluetooth company identifier,
// or "" when unknown.
func VendorName(id uint16) string {
	return vendorNames[id]
}

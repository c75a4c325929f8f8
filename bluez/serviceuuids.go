// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

// Well-known 16-bit service and profile UUIDs from the Bluetooth assigned
// numbers.
const (
	UUIDServiceDiscoveryServer uint16 = 0x1000
	UUIDSerialPort             uint16 = 0x1101
	UUIDDialupNetworking       uint16 = 0x1103
	UUIDObexObjectPush         uint16 = 0x1105
	UUIDObexFileTransfer       uint16 = 0x1106
	UUIDAudioSource            uint16 = 0x110a
	UUIDAudioSink              uint16 = 0x110b
	UUIDAVRemoteControlTarget  uint16 = 0x110c
	UUIDAdvancedAudio          uint16 = 0x110d
	UUIDAVRemoteControl        uint16 = 0x110e
	UUIDHeadset                uint16 = 0x1108
	UUIDHeadsetAudioGateway    uint16 = 0x1112
	UUIDPANU                   uint16 = 0x1115
	UUIDNAP                    uint16 = 0x1116
	UUIDGN                     uint16 = 0x1117
	UUIDHandsfree              uint16 = 0x111e
	UUIDHandsfreeAudioGateway  uint16 = 0x111f
	UUIDHumanInterfaceDevice   uint16 = 0x1124
	UUIDSIMAccess              uint16 = 0x112d
	UUIDPhonebookAccess        uint16 = 0x112f
	UUIDMessageAccessServer    uint16 = 0x1132
	UUIDPnPInformation         uint16 = 0x1200
	UUIDGenericNetworking      uint16 = 0x1201
	UUIDGenericAudio           uint16 = 0x1203
	UUIDGenericTelephony       uint16 = 0x1204
)

var serviceNames = map[uint16]string{
	UUIDServiceDiscoveryServer: "ServiceDiscoveryServerServiceClassID",
	0x1001:                     "BrowseGroupDescriptorServiceClassID",
	0x1002:                     "PublicBrowseGroup",
	UUIDSerialPort:             "SerialPort",
	0x1102:                     "LANAccessUsingPPP",
	UUIDDialupNetworking:       "DialupNetworking",
	0x1104:                     "IrMCSync",
	UUIDObexObjectPush:         "OBEXObjectPush",
	UUIDObexFileTransfer:       "OBEXFileTransfer",
	0x1107:                     "IrMCSyncCommand",
	UUIDHeadset:                "Headset",
	0x1109:                     "CordlessTelephony",
	UUIDAudioSource:            "AudioSource",
	UUIDAudioSink:              "AudioSink",
	UUIDAVRemoteControlTarget:  "AVRemoteControlTarget",
	UUIDAdvancedAudio:          "AdvancedAudioDistribution",
	UUIDAVRemoteControl:        "AVRemoteControl",
	0x110f:                     "AVRemoteControlController",
	0x1110:                     "Intercom",
	0x1111:                     "Fax",
	UUIDHeadsetAudioGateway:    "HeadsetAudioGateway",
	0x1113:                     "WAP",
	0x1114:                     "WAPClient",
	UUIDPANU:                   "PANU",
	UUIDNAP:                    "NAP",
	UUIDGN:                     "GN",
	0x1118:                     "DirectPrinting",
	0x1119:                     "ReferencePrinting",
	0x111a:                     "BasicImagingProfile",
	0x111b:                     "ImagingResponder",
	0x111c:                     "ImagingAutomaticArchive",
	0x111d:                     "ImagingReferencedObjects",
	UUIDHandsfree:              "Handsfree",
	UUIDHandsfreeAudioGateway:  "HandsfreeAudioGateway",
	0x1120:                     "DirectPrintingReferenceObjectsService",
	0x1121:                     "ReflectedUI",
	0x1122:                     "BasicPrinting",
	0x1123:                     "PrintingStatus",
	UUIDHumanInterfaceDevice:   "HumanInterfaceDeviceService",
	0x1125:                     "HardcopyCableReplacement",
	0x1126:                     "HCRPrint",
	0x1127:                     "HCRScan",
	UUIDSIMAccess:              "SIMAccess",
	0x112e:                     "PhonebookAccessPCE",
	UUIDPhonebookAccess:        "PhonebookAccessPSE",
	0x1130:                     "PhonebookAccess",
	0x1131:                     "HeadsetHS",
	UUIDMessageAccessServer:    "MessageAccessServer",
	0x1133:                     "MessageNotificationServer",
	0x1134:                     "MessageAccessProfile",
	UUIDPnPInformation:         "PnPInformation",
	UUIDGenericNetworking:      "GenericNetworking",
	0x1202:                     "GenericFileTransfer",
	UUIDGenericAudio:           "GenericAudio",
	UUIDGenericTelephony:       "GenericTelephony",
}

// ServiceName returns the profile name of a well-known service UUID or ""
// when the UUID is vendor specific or unknown.
func ServiceName(u UUID) string {
	value, ok := u.UUID16Value()
	if !ok {
		return ""
	}
	return serviceNames[value]
}

// ServiceUUID returns the canonical 128-bit UUID for a well-known 16-bit
// service id.
func ServiceUUID(id uint16) UUID {
	return UUID16(id)
}

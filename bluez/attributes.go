// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

// SDP universal attribute identifiers.
const (
	AttrServiceRecordHandle               uint16 = 0x0000
	AttrServiceClassIDList                uint16 = 0x0001
	AttrServiceRecordState                uint16 = 0x0002
	AttrServiceID                         uint16 = 0x0003
	AttrProtocolDescriptorList            uint16 = 0x0004
	AttrBrowseGroupList                   uint16 = 0x0005
	AttrLanguageBaseAttributeIDList       uint16 = 0x0006
	AttrServiceInfoTimeToLive             uint16 = 0x0007
	AttrServiceAvailability               uint16 = 0x0008
	AttrBluetoothProfileDescriptorList    uint16 = 0x0009
	AttrDocumentationURL                  uint16 = 0x000a
	AttrClientExecutableURL               uint16 = 0x000b
	AttrIconURL                           uint16 = 0x000c
	AttrAdditionalProtocolDescriptorLists uint16 = 0x000d
	AttrServiceName                       uint16 = 0x0100
	AttrServiceDescription                uint16 = 0x0101
	AttrProviderName                      uint16 = 0x0102
)

var attributeNames = map[uint16]string{
	AttrServiceRecordHandle:               "ServiceRecordHandle",
	AttrServiceClassIDList:                "ServiceClassIDList",
	AttrServiceRecordState:                "ServiceRecordState",
	AttrServiceID:                         "ServiceID",
	AttrProtocolDescriptorList:            "ProtocolDescriptorList",
	AttrBrowseGroupList:                   "BrowseGroupList",
	AttrLanguageBaseAttributeIDList:       "LanguageBaseAttributeIDList",
	AttrServiceInfoTimeToLive:             "ServiceInfoTimeToLive",
	AttrServiceAvailability:               "ServiceAvailability",
	AttrBluetoothProfileDescriptorList:    "BluetoothProfileDescriptorList",
	AttrDocumentationURL:                  "DocumentationURL",
	AttrClientExecutableURL:               "ClientExecutableURL",
	AttrIconURL:                           "IconURL",
	AttrAdditionalProtocolDescriptorLists: "AdditionalProtocolDescriptorLists",
	AttrServiceName:                       "ServiceName",
	AttrServiceDescription:                "ServiceDescription",
	AttrProviderName:                      "ProviderName",
}

// AttributeName returns the SDP attribute name for an attribute id, or ""
// for service-specific attributes.
func AttributeName(id uint16) string {
	return attributeNames[id]
}

// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"encoding/xml"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Device.DiscoverServices (BlueZ 4) returns SDP service records in the
// daemon's XML format. ParseServiceRecord decodes one record into typed
// attribute values.

// Attribute value kinds found in service records.
const (
	ValueKindNil      = "nil"
	ValueKindUint     = "uint"
	ValueKindInt      = "int"
	ValueKindBool     = "bool"
	ValueKindText     = "text"
	ValueKindURL      = "url"
	ValueKindUUID     = "uuid"
	ValueKindSequence = "sequence"
)

// AttributeValue is one decoded SDP data element.
type AttributeValue struct {
	Kind     string
	Uint     uint64
	Int      int64
	Bool     bool
	Text     string
	UUID     UUID
	Sequence []AttributeValue
}

// ServiceRecord is a decoded SDP service record, keyed by attribute id.
type ServiceRecord struct {
	Attributes map[uint16]AttributeValue
}

type xmlRecordElement struct {
	XMLName  xml.Name
	ID       string             `xml:"id,attr"`
	Value    string             `xml:"value,attr"`
	Children []xmlRecordElement `xml:",any"`
}

// ParseServiceRecord decodes one XML service record as returned by
// DiscoverServices.
func ParseServiceRecord(record string) (*ServiceRecord, error) {
	var root xmlRecordElement
	err := xml.Unmarshal([]byte(record), &root)
	if err != nil {
		return nil, xerrors.Errorf("malformed service record: %w", err)
	}
	if root.XMLName.Local != "record" {
		return nil, xerrors.Errorf("unexpected root element %q", root.XMLName.Local)
	}

	sr := &ServiceRecord{Attributes: make(map[uint16]AttributeValue)}
	for _, attr := range root.Children {
		if attr.XMLName.Local != "attribute" {
			continue
		}
		id, err := parseRecordNumber(attr.ID)
		if err != nil {
			return nil, xerrors.Errorf("attribute id: %w", err)
		}
		if len(attr.Children) == 0 {
			sr.Attributes[uint16(id)] = AttributeValue{Kind: ValueKindNil}
			continue
		}
		value, err := parseRecordValue(attr.Children[0])
		if err != nil {
			return nil, err
		}
		sr.Attributes[uint16(id)] = value
	}
	return sr, nil
}

func parseRecordNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func parseRecordValue(el xmlRecordElement) (AttributeValue, error) {
	switch el.XMLName.Local {
	case "nil":
		return AttributeValue{Kind: ValueKindNil}, nil
	case "uint8", "uint16", "uint32", "uint64":
		n, err := parseRecordNumber(el.Value)
		if err != nil {
			return AttributeValue{}, xerrors.Errorf("%s value: %w", el.XMLName.Local, err)
		}
		return AttributeValue{Kind: ValueKindUint, Uint: n}, nil
	case "int8", "int16", "int32", "int64":
		n, err := strconv.ParseInt(strings.TrimSpace(el.Value), 0, 64)
		if err != nil {
			return AttributeValue{}, xerrors.Errorf("%s value: %w", el.XMLName.Local, err)
		}
		return AttributeValue{Kind: ValueKindInt, Int: n}, nil
	case "boolean":
		return AttributeValue{
			Kind: ValueKindBool,
			Bool: el.Value == "true" || el.Value == "1",
		}, nil
	case "text":
		return AttributeValue{Kind: ValueKindText, Text: el.Value}, nil
	case "url":
		return AttributeValue{Kind: ValueKindURL, Text: el.Value}, nil
	case "uuid":
		u, err := ParseUUID(el.Value)
		if err != nil {
			return AttributeValue{}, err
		}
		return AttributeValue{Kind: ValueKindUUID, UUID: u}, nil
	case "sequence", "alternate":
		var seq []AttributeValue
		for _, child := range el.Children {
			value, err := parseRecordValue(child)
			if err != nil {
				return AttributeValue{}, err
			}
			seq = append(seq, value)
		}
		return AttributeValue{Kind: ValueKindSequence, Sequence: seq}, nil
	default:
		return AttributeValue{}, xerrors.Errorf("unknown element %q", el.XMLName.Local)
	}
}

// ServiceClasses returns the UUIDs of the ServiceClassIDList attribute.
func (sr *ServiceRecord) ServiceClasses() []UUID {
	attr, ok := sr.Attributes[AttrServiceClassIDList]
	if !ok || attr.Kind != ValueKindSequence {
		return nil
	}
	var classes []UUID
	for _, value := range attr.Sequence {
		if value.Kind == ValueKindUUID {
			classes = append(classes, value.UUID)
		}
	}
	return classes
}

// ServiceName returns the ServiceName attribute. SDP allows a language
// offset on top of the base id; only the primary language entry is looked
// up here.
func (sr *ServiceRecord) ServiceName() string {
	attr, ok := sr.Attributes[AttrServiceName]
	if !ok || attr.Kind != ValueKindText {
		return ""
	}
	return attr.Text
}

// ProfileDescriptors returns (uuid, version) pairs from the
// BluetoothProfileDescriptorList attribute.
func (sr *ServiceRecord) ProfileDescriptors() map[UUID]uint16 {
	attr, ok := sr.Attributes[AttrBluetoothProfileDescriptorList]
	if !ok || attr.Kind != ValueKindSequence {
		return nil
	}
	descriptors := make(map[UUID]uint16)
	for _, pair := range attr.Sequence {
		if pair.Kind != ValueKindSequence || len(pair.Sequence) != 2 {
			continue
		}
		u := pair.Sequence[0]
		version := pair.Sequence[1]
		if u.Kind == ValueKindUUID && version.Kind == ValueKindUint {
			descriptors[u.UUID] = uint16(version.Uint)
		}
	}
	return descriptors
}

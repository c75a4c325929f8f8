// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const audioSinkRecord = `<?xml version="1.0" encoding="UTF-8" ?>
<record>
	<attribute id="0x0000">
		<uint32 value="0x00010001" />
	</attribute>
	<attribute id="0x0001">
		<sequence>
			<uuid value="0x110b" />
		</sequence>
	</attribute>
	<attribute id="0x0004">
		<sequence>
			<sequence>
				<uuid value="0x0100" />
				<uint16 value="0x0019" />
			</sequence>
			<sequence>
				<uuid value="0x0019" />
				<uint16 value="0x0102" />
			</sequence>
		</sequence>
	</attribute>
	<attribute id="0x0009">
		<sequence>
			<sequence>
				<uuid value="0x110d" />
				<uint16 value="0x0102" />
			</sequence>
		</sequence>
	</attribute>
	<attribute id="0x0100">
		<text value="Audio Sink" />
	</attribute>
	<attribute id="0x0311">
		<uint16 value="0x0001" />
	</attribute>
</record>`

func TestParseServiceRecord(t *testing.T) {
	sr, err := ParseServiceRecord(audioSinkRecord)
	require.NoError(t, err)

	handle, ok := sr.Attributes[AttrServiceRecordHandle]
	require.True(t, ok)
	assert.Equal(t, ValueKindUint, handle.Kind)
	assert.Equal(t, uint64(0x00010001), handle.Uint)

	classes := sr.ServiceClasses()
	require.Len(t, classes, 1)
	assert.True(t, classes[0].Equal(UUID16(UUIDAudioSink)))

	assert.Equal(t, "Audio Sink", sr.ServiceName())

	descriptors := sr.ProfileDescriptors()
	require.Len(t, descriptors, 1)
	assert.Equal(t, uint16(0x0102), descriptors[UUID16(UUIDAdvancedAudio)])

	// service-specific attribute is kept with its raw id
	features, ok := sr.Attributes[0x0311]
	require.True(t, ok)
	assert.Equal(t, uint64(1), features.Uint)
}

func TestParseServiceRecordErrors(t *testing.T) {
	_, err := ParseServiceRecord("not xml at all <")
	assert.Error(t, err)

	_, err = ParseServiceRecord("<sequence></sequence>")
	assert.Error(t, err)

	_, err = ParseServiceRecord(
		`<record><attribute id="0x0001"><bogus value="1"/></attribute></record>`)
	assert.Error(t, err)

	_, err = ParseServiceRecord(
		`<record><attribute id="zzz"><uint8 value="1"/></attribute></record>`)
	assert.Error(t, err)
}

func TestAttributeName(t *testing.T) {
	assert.Equal(t, "ServiceClassIDList", AttributeName(AttrServiceClassIDList))
	assert.Equal(t, "", AttributeName(0x0311))
}

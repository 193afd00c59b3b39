package storage

import (
	"testing"

	"github.com/poiesic/rightsdesk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSerialization(t *testing.T) {
	id := core.IDFromContent("rights:Tenant Rights")
	data := MarshalID(id)
	require.Len(t, data, 8)

	decoded, err := UnmarshalID(data)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestIDSerialization_PreservesOrder(t *testing.T) {
	// Big-endian encoding keeps lexicographic key order equal to numeric order
	assert.Less(t, string(MarshalID(2)), string(MarshalID(10)))
	assert.Less(t, string(MarshalID(255)), string(MarshalID(256)))
}

func TestUnmarshalID_WrongLength(t *testing.T) {
	_, err := UnmarshalID([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshal_RoundTrip(t *testing.T) {
	entry := &core.RightsEntry{
		Id:       core.IDFromContent("rights:Security Deposits"),
		Title:    "Security Deposits",
		Summary:  "When a landlord must return your deposit",
		Tags:     []string{"deposit", "tenant"},
		Category: "housing",
	}

	decoded, err := Unmarshal(core.RightsEntryMUS, Marshal(core.RightsEntryMUS, entry))
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestUnmarshal_Truncated(t *testing.T) {
	entry := &core.RightsEntry{Id: 7, Title: "Security Deposits", Summary: "Deposit return deadlines"}
	data := Marshal(core.RightsEntryMUS, entry)

	_, err := Unmarshal(core.RightsEntryMUS, data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarsBremen/leshan/pkg/model"
)

func TestEncodeDecodeResource(t *testing.T) {
	ts := time.Date(2017, 3, 2, 14, 0, 0, 123, time.UTC)
	resources := []Resource{
		NewIntegerResource(6000, -3600),
		NewFloatResource(5700, 10.01),
		NewBooleanResource(6007, true),
		NewStringResource(5701, "%"),
		NewOpaqueResource(6029, []byte{2, 0, 1}),
		NewOpaqueResource(6009, nil),
		NewTimeResource(6003, ts),
		NewObjectLinkResource(1, ObjectLink{ObjectID: 3304, InstanceID: 1}),
	}

	for _, r := range resources {
		t.Run(r.Type().String(), func(t *testing.T) {
			data, err := EncodeResource(r)
			require.NoError(t, err)

			got, err := DecodeResource(data)
			require.NoError(t, err)
			assert.True(t, r.Equal(got), "decoded %v, want %v", got, r)
		})
	}
}

func TestEncodeDecodeMultiResource(t *testing.T) {
	r, err := NewMultiResource(7, map[uint16]any{0: "a", 3: "b"}, model.TypeString)
	require.NoError(t, err)

	data, err := EncodeResource(r)
	require.NoError(t, err)

	got, err := DecodeResource(data)
	require.NoError(t, err)
	assert.True(t, got.IsMultiInstances())
	assert.True(t, r.Equal(got))
}

func TestDecodeResourceRejectsGarbage(t *testing.T) {
	_, err := DecodeResource([]byte{0xFF, 0x00})
	assert.Error(t, err)
}

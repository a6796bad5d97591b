package dataref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dataref/codec"
)

func TestDataRef_EffectiveType(t *testing.T) {
	tests := []struct {
		name string
		ref  *DataRef
		want Type
	}{
		{"declared type wins", &DataRef{Value: map[string]any{"a": 1}, Type: TypeUTF8}, TypeUTF8},
		{"absent type, string value", &DataRef{Value: "aGVsbG8="}, TypeBase64},
		{"absent type, map value", &DataRef{Value: map[string]any{"a": 1}}, TypeJSON},
		{"absent type, slice value", &DataRef{Value: []any{1, 2, 3}}, TypeJSON},
		{"absent type, number value", &DataRef{Value: 42}, TypeJSON},
		{"absent type, nil value", &DataRef{}, TypeJSON},
		{"explicit base64", &DataRef{Value: "eA==", Type: TypeBase64}, TypeBase64},
		{"explicit utf8", &DataRef{Value: "x", Type: TypeUTF8}, TypeUTF8},
		{"explicit json", &DataRef{Value: "x", Type: TypeJSON}, TypeJSON},
		{"explicit url", &DataRef{Value: "https://example.com/x", Type: TypeURL}, TypeURL},
		{"explicit hash", &DataRef{Value: "abc123", Type: TypeHash}, TypeHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.EffectiveType())
		})
	}
}

func TestDataRef_Constructors(t *testing.T) {
	assert.Equal(t, &DataRef{Value: "eA==", Type: TypeBase64}, NewBase64Ref("eA=="))
	assert.Equal(t, &DataRef{Value: "x", Type: TypeUTF8}, NewUTF8Ref("x"))
	assert.Equal(t, &DataRef{Value: map[string]any{"a": 1}, Type: TypeJSON}, NewJSONRef(map[string]any{"a": 1}))
	assert.Equal(t, &DataRef{Value: "https://example.com/x", Type: TypeURL}, NewURLRef("https://example.com/x"))
	assert.Equal(t, &DataRef{Value: "key", Hash: "sum", Type: TypeHash}, NewHashRef("key", "sum"))
}

func TestDataRef_WireShape(t *testing.T) {
	ref := &DataRef{Value: "aGVsbG8=", Hash: "abc123", Type: TypeBase64}

	data, err := codec.Default.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"aGVsbG8=","hash":"abc123","type":"base64"}`, string(data))

	var decoded DataRef
	require.NoError(t, codec.Default.Unmarshal(data, &decoded))
	assert.Equal(t, *ref, decoded)
}

func TestDataRef_WireShapeOptionalFields(t *testing.T) {
	data, err := codec.Default.Marshal(&DataRef{Value: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"x"}`, string(data))

	// A tagless ref off the wire falls back to the default-encoding rule.
	var decoded DataRef
	require.NoError(t, codec.Default.Unmarshal([]byte(`{"value":{"a":1}}`), &decoded))
	assert.Equal(t, TypeJSON, decoded.EffectiveType())
}

package dataref_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dataref"
)

func TestDataRefToBlob_JSON(t *testing.T) {
	ctx := context.Background()

	blob, err := dataref.DataRefToBlob(ctx, dataref.NewJSONRef(map[string]any{"a": 1}))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), blob.Bytes())
}

func TestDataRefToBlob_ImpliedJSON(t *testing.T) {
	ctx := context.Background()

	// No tag, non-string value: the json default applies.
	blob, err := dataref.DataRefToBlob(ctx, &dataref.DataRef{Value: map[string]any{"a": 1}})
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), blob.Bytes())
}

func TestDataRefToBlob_UTF8(t *testing.T) {
	ctx := context.Background()

	blob, err := dataref.DataRefToBlob(ctx, dataref.NewUTF8Ref("héllo ✓"))
	require.NoError(t, err)
	assert.Equal(t, []byte("héllo ✓"), blob.Bytes())
	assert.Equal(t, int64(len("héllo ✓")), blob.Size())
}

func TestDataRefToBlob_Base64RoundTrip(t *testing.T) {
	ctx := context.Background()

	raw := []byte{0x00, 0xFF, 0x10, 0x42, 0x99}
	ref := dataref.NewBase64Ref(base64.StdEncoding.EncodeToString(raw))

	blob, err := dataref.DataRefToBlob(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, raw, blob.Bytes())
}

func TestDataRefToBlob_UntaggedStringDecodesAsBase64(t *testing.T) {
	ctx := context.Background()

	blob, err := dataref.DataRefToBlob(ctx, &dataref.DataRef{Value: "aGVsbG8="})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), blob.Bytes())
}

func TestDataRefToBlob_UnrecognizedTagFallsBackToBase64(t *testing.T) {
	ctx := context.Background()

	blob, err := dataref.DataRefToBlob(ctx, &dataref.DataRef{Value: "aGVsbG8=", Type: dataref.Type("mystery")})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), blob.Bytes())
}

func TestDataRefToBlob_HashAlwaysFails(t *testing.T) {
	ctx := context.Background()

	blob, err := dataref.DataRefToBlob(ctx, dataref.NewHashRef("some-handle", "abc123"))
	require.ErrorIs(t, err, dataref.ErrUnresolvableRef)
	assert.Nil(t, blob)
}

func TestDataRefToBlob_MalformedBase64(t *testing.T) {
	ctx := context.Background()

	_, err := dataref.DataRefToBlob(ctx, dataref.NewBase64Ref("not base64 at all!"))
	var derr *dataref.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dataref.TypeBase64, derr.Encoding)
}

func TestDataRefToBlob_NonStringUTF8Value(t *testing.T) {
	ctx := context.Background()

	_, err := dataref.DataRefToBlob(ctx, &dataref.DataRef{Value: 42, Type: dataref.TypeUTF8})
	var derr *dataref.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dataref.TypeUTF8, derr.Encoding)
}

func TestDataRefToBlob_URL(t *testing.T) {
	ctx := context.Background()

	payload := bytes.Repeat([]byte{0xCA, 0xFE}, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	blob, err := dataref.DataRefToBlob(ctx, dataref.NewURLRef(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, payload, blob.Bytes())
}

func TestBlob_Reader(t *testing.T) {
	blob := dataref.NewBlob([]byte("stream me"))

	var buf bytes.Buffer
	_, err := buf.ReadFrom(blob.Reader())
	require.NoError(t, err)
	assert.Equal(t, "stream me", buf.String())
}

package dataref

// Type identifies how a DataRef's value encodes its payload.
//
// The tag fully determines the meaning of the value; no other field is
// consulted to infer the encoding.
type Type string

const (
	// TypeBase64 is inline binary content, base64 text in the value.
	TypeBase64 Type = "base64"
	// TypeUTF8 is inline text content.
	TypeUTF8 Type = "utf8"
	// TypeJSON is an inline structured value, serialized on demand.
	TypeJSON Type = "json"
	// TypeURL points at a fetchable location; bytes are obtained by a GET.
	TypeURL Type = "url"
	// TypeHash is an opaque content-address handle already resolvable by the
	// remote store. It is never converted further locally.
	TypeHash Type = "hash"
)

// DataRef is a tagged reference to a data payload, either inline-encoded or
// pointing elsewhere.
//
// The wire shape is `{value, hash?, type?}`. Value is a string for the
// base64, utf8, url and hash encodings and an arbitrary JSON-serializable
// structure for json. Hash, when present, is the content digest of the
// original, unencoded bytes and is used for identity and deduplication.
//
// A DataRef is immutable once constructed. Offloading an oversized payload
// produces a new DataRef that replaces the old one; it never mutates it.
type DataRef struct {
	Value any    `json:"value"`
	Hash  string `json:"hash,omitempty"`
	Type  Type   `json:"type,omitempty"`
}

// EffectiveType resolves the encoding of the reference.
//
// A declared type wins. Without one, a non-string value implies json and
// everything else defaults to base64. Refs built through the New*Ref
// constructors always carry an explicit tag; this rule exists for refs
// decoded off the wire where the tag is optional.
func (r *DataRef) EffectiveType() Type {
	if r.Type != "" {
		return r.Type
	}
	if _, ok := r.Value.(string); !ok {
		return TypeJSON
	}
	return TypeBase64
}

// NewBase64Ref creates an inline reference holding base64-encoded bytes.
func NewBase64Ref(value string) *DataRef {
	return &DataRef{Value: value, Type: TypeBase64}
}

// NewUTF8Ref creates an inline reference holding plain text.
func NewUTF8Ref(value string) *DataRef {
	return &DataRef{Value: value, Type: TypeUTF8}
}

// NewJSONRef creates an inline reference holding a structured value that is
// serialized on demand by the configured codec.
func NewJSONRef(value any) *DataRef {
	return &DataRef{Value: value, Type: TypeJSON}
}

// NewURLRef creates a reference whose bytes are fetched from url.
func NewURLRef(url string) *DataRef {
	return &DataRef{Value: url, Type: TypeURL}
}

// NewHashRef creates an opaque content-address reference. It can only be
// resolved through the remote store that issued it.
func NewHashRef(handle, hash string) *DataRef {
	return &DataRef{Value: handle, Hash: hash, Type: TypeHash}
}

// Refs maps stable names to data references, e.g. the named inputs or
// outputs of one unit of work. Names are unique within one mapping and
// insertion order is irrelevant. Entries may be nil.
type Refs map[string]*DataRef

// stringValue extracts the value as a string for the string-carrying
// encodings.
func stringValue(r *DataRef, encoding Type) (string, error) {
	s, ok := r.Value.(string)
	if !ok {
		return "", &DecodeError{Encoding: encoding, cause: errNonStringValue}
	}
	return s, nil
}

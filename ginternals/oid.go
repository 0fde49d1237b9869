package ginternals

import (
	"crypto/sha1" //nolint:gosec // sha1 is the object id format, not a security boundary
	"encoding/hex"
	"errors"
	"strings"
)

const (
	// OidSize is the length of an oid, in bytes
	OidSize = 20
	// OidHexSize is the length of an oid once hex encoded
	OidHexSize = OidSize * 2
)

var (
	// NullOid is the value of an empty Oid, or one that's all 0s
	NullOid = Oid{}

	// ErrInvalidOid is returned when a given value isn't a valid Oid
	ErrInvalidOid = errors.New("invalid Oid")
)

// Oid represents an object id
type Oid [OidSize]byte

// Bytes returns a byte slice of the Oid
func (o Oid) Bytes() []byte {
	return o[:]
}

// String converts an oid to a string
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// Short returns the first 10 chars of the oid
func (o Oid) Short() string {
	return o.String()[:10]
}

// IsZero returns whether the oid has the zero value (NullOid)
func (o Oid) IsZero() bool {
	return o == NullOid
}

// NewOidFromContent returns the Oid of the given content.
// The oid will be the SHA1 sum of the content
func NewOidFromContent(bytes []byte) Oid {
	return sha1.Sum(bytes) //nolint:gosec // see import
}

// NewOidFromChars creates an Oid from the given char bytes
// For the SHA {'9', 'b', '9', '1', 'd', 'a', ...}
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromChars(id []byte) (Oid, error) {
	return NewOidFromStr(string(id))
}

// NewOidFromStr creates an Oid from the given string.
// Upper case chars are accepted.
// For the SHA 9b91da06e69613397b38e0808e0ba5ee6983251b
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromStr(id string) (Oid, error) {
	if len(id) != OidHexSize {
		return NullOid, ErrInvalidOid
	}
	bytes, err := hex.DecodeString(strings.ToLower(id))
	if err != nil {
		return NullOid, ErrInvalidOid
	}

	var oid Oid
	copy(oid[:], bytes)
	return oid, nil
}

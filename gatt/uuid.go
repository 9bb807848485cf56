package gatt

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// UUID is an attribute UUID in wire order (least significant byte first),
// 2 bytes for Bluetooth SIG assigned numbers or 16 bytes for custom UUIDs.
type UUID []byte

// UUID16 builds the UUID of a 16 bit assigned number.
func UUID16(n uint16) UUID {
	return UUID{byte(n), byte(n >> 8)}
}

// String formats a 16 bit UUID as hex number and a 128 bit UUID in the
// canonical form of RFC 4122.
func (u UUID) String() string {
	switch len(u) {
	case 2:
		return fmt.Sprintf("0x%02X%02X", u[1], u[0])
	case 16:
		b := make([]byte, 16)
		for i, v := range u {
			b[15-i] = v
		}
		id, err := uuid.FromBytes(b)
		if err == nil {
			return id.String()
		}
	}
	return hex.EncodeToString(u)
}

// Equal reports whether two UUIDs are the same.
func (u UUID) Equal(other UUID) bool {
	return bytes.Equal(u, other)
}

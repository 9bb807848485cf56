package gatt

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a BLE device address in wire order (least significant byte
// first).
type Address [6]byte

// String formats the address in colon notation, most significant byte
// first.
func (a Address) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[5], a[4], a[3], a[2], a[1], a[0])
}

// ParseAddress parses an address in colon notation, e.g.
// "00:07:80:ab:cd:ef".
func ParseAddress(s string) (Address, error) {
	var a Address
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return a, fmt.Errorf("Invalid device address: %s", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return a, fmt.Errorf("Invalid device address: %s", s)
		}
		a[5-i] = byte(v)
	}
	return a, nil
}

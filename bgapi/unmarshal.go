package bgapi

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Unmarshal decodes the fixed fields of m from data. m must be a pointer
// to a message struct. Bytes beyond the fixed fields are ignored.
func Unmarshal(data []byte, m Message) error {
	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, m)
	if err != nil {
		return fmt.Errorf("Decoding of message %s failed: %w", m.MessageType(), err)
	}
	return nil
}

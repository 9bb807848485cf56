package bgapi

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Marshal encodes the fixed fields of m in wire order: packed little
// endian, no padding.
func Marshal(m Message) ([]byte, error) {
	buf := bytes.Buffer{}
	err := binary.Write(&buf, binary.LittleEndian, m)
	if err != nil {
		return nil, fmt.Errorf("Encoding of message %s failed: %w", m.MessageType(), err)
	}
	return buf.Bytes(), nil
}

// wireSize returns the packed size of the fixed fields of m.
func wireSize(m Message) (int, error) {
	size := binary.Size(m)
	if size < 0 {
		return 0, fmt.Errorf("Message %s has no fixed wire size", m.MessageType())
	}
	return size, nil
}

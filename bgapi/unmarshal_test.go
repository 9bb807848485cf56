package bgapi

import (
	"encoding/hex"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		msg  Message
		want Message
	}{
		{
			"fixed fields",
			"86 01 02",
			&connectResponse{},
			&connectResponse{Result: 0x0186, Connection: 2},
		},
		{
			"little endian words",
			"01 13 02",
			&disconnectedEvent{},
			&disconnectedEvent{Connection: 1, Reason: 0x0213},
		},
		{
			"byte array",
			"01 02 03 04 05 06",
			&connectCommand{},
			&connectCommand{Address: [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			data, err := hex.DecodeString(strings.ReplaceAll(tt.in, " ", ""))
			assert.NoError(t, err)
			err = Unmarshal(data, tt.msg)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, tt.msg)
		})
	}
}

func TestUnmarshalShortData(t *testing.T) {
	err := Unmarshal([]byte{0x86}, &connectResponse{})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   Message
		out  Message
	}{
		{"empty payload", helloCommand{}, &helloCommand{}},
		{"byte array", connectCommand{Address: [6]byte{1, 2, 3, 4, 5, 6}}, &connectCommand{}},
		{"fixed fields", connectResponse{Result: 0x0186, Connection: 2}, &connectResponse{}},
		{"little endian words", disconnectedEvent{Connection: 1, Reason: 0x0213}, &disconnectedEvent{}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.in)
			assert.NoError(t, err)
			err = Unmarshal(data, tt.out)
			assert.NoError(t, err)
			assert.Equal(t, tt.in, reflect.ValueOf(tt.out).Elem().Interface())
		})
	}
}

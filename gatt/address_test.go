package gatt

import (
	"testing"
)

func TestAddressString(t *testing.T) {
	a := Address{0xef, 0xcd, 0xab, 0x80, 0x07, 0x00}
	got := a.String()
	if got != "00:07:80:ab:cd:ef" {
		t.Errorf("Expected: 00:07:80:ab:cd:ef, got: %s", got)
	}
}

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{"00:07:80:ab:cd:ef", Address{0xef, 0xcd, 0xab, 0x80, 0x07, 0x00}, false},
		{"00:07:80:AB:CD:EF", Address{0xef, 0xcd, 0xab, 0x80, 0x07, 0x00}, false},
		{"00:07:80:ab:cd", Address{}, true},
		{"00:07:80:ab:cd:zz", Address{}, true},
		{"", Address{}, true},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Expected: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	a := Address{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	got, err := ParseAddress(a.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Errorf("Expected: %v, got: %v", a, got)
	}
}

// Package bled112 opens the serial port of a BLED112 USB dongle.
package bled112

import (
	"fmt"

	"github.com/mdzio/go-logging"
	"go.bug.st/serial"
)

var log = logging.Get("bled112")

// Open opens the serial port of a BLED112 dongle, e.g. /dev/ttyACM0 on
// Linux or COM3 on Windows. The dongle enumerates as CDC device with fixed
// line settings (115200 8N1, no flow control). Closing the port aborts a
// blocked read on it.
func Open(name string) (serial.Port, error) {
	log.Debugf("Opening serial port %s", name)
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("Opening of serial port %s failed: %w", name, err)
	}
	return port, nil
}

// Ports lists the serial port names of the system.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("Listing of serial ports failed: %w", err)
	}
	return ports, nil
}

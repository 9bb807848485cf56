// Package gatt provides attribute access to a BLE peripheral through a
// BLED112 dongle speaking the BGAPI protocol.
package gatt

import (
	"fmt"

	"github.com/mdzio/go-bgapi/bgapi"
	"github.com/mdzio/go-logging"
)

var clnLog = logging.Get("gatt-client")

// connection parameters for direct connections, in protocol units of
// 1.25 ms (interval) and 10 ms (timeout)
const (
	connIntervalMin = 6
	connIntervalMax = 6
	connTimeout     = 64
	connLatency     = 0
)

// attribute handle range of a device
const (
	firstHandle = 0x0001
	lastHandle  = 0xFFFF
)

// ScanReport is one advertisement received while discovering.
type ScanReport struct {
	RSSI        int8
	PacketType  uint8
	Sender      Address
	AddressType uint8
	Bond        uint8
	Data        []byte
}

// Characteristic is one attribute found on a device.
type Characteristic struct {
	Handle uint16
	UUID   UUID
}

// Client accesses the attributes of a BLE peripheral through a BLED112
// dongle. It drives one command or event flow at a time over the framing
// client and keeps the handle of the current connection. Frames that do
// not belong to the running operation are discarded. Like the framing
// client, a Client must be used by one goroutine at a time.
type Client struct {
	ble        *bgapi.Client
	connection uint8
}

// NewClient creates a Client on the framing client ble.
func NewClient(ble *bgapi.Client) *Client {
	return &Client{ble: ble}
}

// await discards frames until a frame with the message type of m arrives
// and is decoded into m. m must be a pointer to a message struct.
func (c *Client) await(m bgapi.Message) error {
	done := false
	for !done {
		err := c.ble.ReceiveAny(bgapi.On(m, func() error {
			done = true
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

// Discover runs a GAP discovery and reports received advertisements to
// found until it returns false. The discovery procedure is stopped before
// Discover returns.
func (c *Client) Discover(found func(ScanReport) (bool, error)) error {
	clnLog.Debugf("Starting discovery")
	err := c.ble.Send(&DiscoverCommand{Mode: DiscoverGeneric})
	if err != nil {
		return fmt.Errorf("Starting of discovery failed: %w", err)
	}
	var resp DiscoverResponse
	err = c.await(&resp)
	if err != nil {
		return fmt.Errorf("Starting of discovery failed: %w", err)
	}
	if resp.Result != 0 {
		return fmt.Errorf("Starting of discovery failed with result 0x%04x", resp.Result)
	}

	done := false
	for !done {
		var ev ScanResponseEvent
		err = c.ble.ReceiveAny(bgapi.OnPartial(&ev, func(data []byte) error {
			more, err := found(ScanReport{
				RSSI:        ev.RSSI,
				PacketType:  ev.PacketType,
				Sender:      ev.Sender,
				AddressType: ev.AddressType,
				Bond:        ev.Bond,
				Data:        data,
			})
			done = !more
			return err
		}))
		if err != nil {
			return fmt.Errorf("Discovery failed: %w", err)
		}
	}

	clnLog.Debugf("Ending discovery")
	err = c.ble.Send(&EndProcedureCommand{})
	if err != nil {
		return fmt.Errorf("Ending of discovery failed: %w", err)
	}
	var eresp EndProcedureResponse
	err = c.await(&eresp)
	if err != nil {
		return fmt.Errorf("Ending of discovery failed: %w", err)
	}
	if eresp.Result != 0 {
		return fmt.Errorf("Ending of discovery failed with result 0x%04x", eresp.Result)
	}
	return nil
}

// Connect initiates a direct connection to the device addr and blocks
// until the connection is established.
func (c *Client) Connect(addr Address) error {
	clnLog.Debugf("Connecting to %s", addr)
	err := c.ble.Send(&ConnectDirectCommand{
		Address:         addr,
		AddressType:     AddressTypePublic,
		ConnIntervalMin: connIntervalMin,
		ConnIntervalMax: connIntervalMax,
		Timeout:         connTimeout,
		Latency:         connLatency,
	})
	if err != nil {
		return fmt.Errorf("Connecting to %s failed: %w", addr, err)
	}
	var resp ConnectDirectResponse
	err = c.await(&resp)
	if err != nil {
		return fmt.Errorf("Connecting to %s failed: %w", addr, err)
	}
	if resp.Result != 0 {
		return fmt.Errorf("Connecting to %s failed with result 0x%04x", addr, resp.Result)
	}
	c.connection = resp.Connection

	// wait for the link to come up
	for {
		var status StatusEvent
		err = c.await(&status)
		if err != nil {
			return fmt.Errorf("Connecting to %s failed: %w", addr, err)
		}
		if status.Connection == c.connection && status.Flags&FlagConnected != 0 {
			clnLog.Debugf("Connection %d to %s established", c.connection, addr)
			return nil
		}
	}
}

// Disconnect closes the current connection and blocks until the link is
// down.
func (c *Client) Disconnect() error {
	clnLog.Debugf("Disconnecting connection %d", c.connection)
	err := c.ble.Send(&DisconnectCommand{Connection: c.connection})
	if err != nil {
		return fmt.Errorf("Disconnecting failed: %w", err)
	}
	var resp DisconnectResponse
	err = c.await(&resp)
	if err != nil {
		return fmt.Errorf("Disconnecting failed: %w", err)
	}
	if resp.Result != 0 {
		return fmt.Errorf("Disconnecting failed with result 0x%04x", resp.Result)
	}
	for {
		var ev DisconnectedEvent
		err = c.await(&ev)
		if err != nil {
			return fmt.Errorf("Disconnecting failed: %w", err)
		}
		if ev.Connection == c.connection {
			return nil
		}
	}
}

// Characteristics lists the attributes of the connected device over the
// full handle range.
func (c *Client) Characteristics() ([]Characteristic, error) {
	clnLog.Debugf("Reading characteristics on connection %d", c.connection)
	err := c.ble.Send(&FindInformationCommand{
		Connection: c.connection,
		Start:      firstHandle,
		End:        lastHandle,
	})
	if err != nil {
		return nil, fmt.Errorf("Reading of characteristics failed: %w", err)
	}
	var resp FindInformationResponse
	err = c.await(&resp)
	if err != nil {
		return nil, fmt.Errorf("Reading of characteristics failed: %w", err)
	}
	if resp.Result != 0 {
		return nil, fmt.Errorf("Reading of characteristics failed with result 0x%04x", resp.Result)
	}

	var chars []Characteristic
	var completed ProcedureCompletedEvent
	done := false
	for !done {
		var found FindInformationFoundEvent
		err = c.ble.ReceiveAny(
			bgapi.OnPartial(&found, func(uuid []byte) error {
				chars = append(chars, Characteristic{Handle: found.Handle, UUID: UUID(uuid)})
				return nil
			}),
			bgapi.On(&completed, func() error {
				done = true
				return nil
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("Reading of characteristics failed: %w", err)
		}
	}
	if completed.Result != 0 {
		return nil, fmt.Errorf("Reading of characteristics failed with result 0x%04x", completed.Result)
	}
	return chars, nil
}

// ReadAttribute reads the value of the attribute at handle.
func (c *Client) ReadAttribute(handle uint16) ([]byte, error) {
	clnLog.Debugf("Reading attribute %d on connection %d", handle, c.connection)
	err := c.ble.Send(&ReadByHandleCommand{Connection: c.connection, Handle: handle})
	if err != nil {
		return nil, fmt.Errorf("Reading of attribute %d failed: %w", handle, err)
	}
	var resp ReadByHandleResponse
	err = c.await(&resp)
	if err != nil {
		return nil, fmt.Errorf("Reading of attribute %d failed: %w", handle, err)
	}
	if resp.Result != 0 {
		return nil, fmt.Errorf("Reading of attribute %d failed with result 0x%04x", handle, resp.Result)
	}

	// the value arrives as event, a completed event reports a failure
	var value []byte
	var failure uint16
	done := false
	for !done {
		var ev AttributeValueEvent
		var completed ProcedureCompletedEvent
		err = c.ble.ReceiveAny(
			bgapi.OnPartial(&ev, func(data []byte) error {
				if ev.Handle == handle {
					value = data
					done = true
				}
				return nil
			}),
			bgapi.On(&completed, func() error {
				failure = completed.Result
				done = true
				return nil
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("Reading of attribute %d failed: %w", handle, err)
		}
	}
	if value == nil {
		return nil, fmt.Errorf("Reading of attribute %d failed with result 0x%04x", handle, failure)
	}
	return value, nil
}

// WriteAttribute writes value to the attribute at handle and blocks until
// the peripheral acknowledged the write.
func (c *Client) WriteAttribute(handle uint16, value []byte) error {
	clnLog.Debugf("Writing attribute %d on connection %d", handle, c.connection)
	if len(value) > 0xFF {
		return fmt.Errorf("Writing of attribute %d failed: value of %d bytes is too large", handle, len(value))
	}
	err := c.ble.SendPartial(&AttributeWriteCommand{
		Connection: c.connection,
		Handle:     handle,
		DataLen:    uint8(len(value)),
	}, value)
	if err != nil {
		return fmt.Errorf("Writing of attribute %d failed: %w", handle, err)
	}
	var resp AttributeWriteResponse
	err = c.await(&resp)
	if err != nil {
		return fmt.Errorf("Writing of attribute %d failed: %w", handle, err)
	}
	if resp.Result != 0 {
		return fmt.Errorf("Writing of attribute %d failed with result 0x%04x", handle, resp.Result)
	}
	var completed ProcedureCompletedEvent
	err = c.await(&completed)
	if err != nil {
		return fmt.Errorf("Writing of attribute %d failed: %w", handle, err)
	}
	if completed.Result != 0 {
		return fmt.Errorf("Writing of attribute %d failed with result 0x%04x", handle, completed.Result)
	}
	return nil
}

// Notifications blocks and reports pushed attribute values to fn until it
// returns false.
func (c *Client) Notifications(fn func(handle uint16, value []byte) (bool, error)) error {
	done := false
	for !done {
		var ev AttributeValueEvent
		err := c.ble.ReceiveAny(bgapi.OnPartial(&ev, func(data []byte) error {
			more, err := fn(ev.Handle, data)
			done = !more
			return err
		}))
		if err != nil {
			return fmt.Errorf("Receiving of notifications failed: %w", err)
		}
	}
	return nil
}

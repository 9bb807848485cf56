package bgapi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mdzio/go-logging"
)

var clnLog = logging.Get("bgapi-client")

// Client exchanges BGAPI frames over a byte stream, typically the serial
// port of a BLED112 dongle. All calls perform blocking I/O on the calling
// goroutine; the Client buffers no frames and starts no background
// activity. A Client instance must be used by one goroutine at a time.
// There is no timeout at this layer: to interrupt a blocked receive, close
// the transport out-of-band.
type Client struct {
	rw io.ReadWriter
}

// NewClient creates a Client on the transport rw.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw}
}

// Send writes m as a single frame.
func (c *Client) Send(m Message) error {
	return c.send(m, nil)
}

// SendPartial writes m followed by the variable length data tail as a
// single frame. The payload length in the header covers both.
func (c *Client) SendPartial(m Message, tail []byte) error {
	return c.send(m, tail)
}

func (c *Client) send(m Message, tail []byte) error {
	h, err := headerFor(m, len(tail))
	if err != nil {
		return err
	}
	payload, err := Marshal(m)
	if err != nil {
		return err
	}
	// assemble the frame and hand it to the transport in one write
	buf := bytes.Buffer{}
	err = binary.Write(&buf, binary.LittleEndian, h)
	if err != nil {
		return fmt.Errorf("Encoding of header failed: %w", err)
	}
	buf.Write(payload)
	buf.Write(tail)
	clnLog.Tracef("Sending frame: % x", buf.Bytes())
	_, err = c.rw.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("Sending of message %s failed: %w", m.MessageType(), err)
	}
	return nil
}

// Receive reads the next frame, which must carry the message type of m,
// and decodes the payload into m. m must be a pointer to a message struct.
// If m is a partial message type, a possible data tail is read and
// discarded; use ReceivePartial to obtain it.
func (c *Client) Receive(m Message) error {
	_, err := c.receive(m)
	return err
}

// ReceivePartial reads the next frame, which must carry the message type
// of m, decodes the fixed fields into m and returns the variable length
// rest of the payload. The tail length is the announced payload length
// minus the fixed size of m and may be zero.
func (c *Client) ReceivePartial(m Message) ([]byte, error) {
	return c.receive(m)
}

func (c *Client) receive(m Message) ([]byte, error) {
	size, err := wireSize(m)
	if err != nil {
		return nil, err
	}
	h, err := c.readHeader()
	if err != nil {
		return nil, err
	}
	err = validate(h, m.MessageType(), size)
	if err != nil {
		return nil, err
	}
	payload, err := c.readPayload(int(h.Length))
	if err != nil {
		return nil, err
	}
	err = Unmarshal(payload[:size], m)
	if err != nil {
		return nil, err
	}
	return payload[size:], nil
}

// A Handler binds one message type to a callback for ReceiveAny. Create
// handlers with On and OnPartial.
type Handler struct {
	msg    Message
	fn     func() error
	tailFn func(tail []byte) error
}

// On returns a Handler that decodes a matching frame into m and calls fn.
// m must be a pointer to a message struct.
func On(m Message, fn func() error) Handler {
	return Handler{msg: m, fn: fn}
}

// OnPartial returns a Handler that decodes the fixed fields of a matching
// frame into m and calls fn with the variable length rest of the payload.
// m must be a pointer to a message struct.
func OnPartial(m Message, fn func(tail []byte) error) Handler {
	return Handler{msg: m, tailFn: fn}
}

func (hd Handler) invoke(tail []byte) error {
	if hd.tailFn != nil {
		return hd.tailFn(tail)
	}
	return hd.fn()
}

// ReceiveAny reads the next frame and dispatches it to the first handler
// whose message type matches the header: class and command id must be
// equal, and for a message type without tail the announced payload length
// must equal the fixed size. Later handlers are not tried after a match,
// and an error of the callback aborts the call. A frame matching no
// handler is read completely and discarded, keeping the stream aligned on
// frame boundaries, and ReceiveAny returns nil; callers that must know
// whether a handler ran track that in the callback.
func (c *Client) ReceiveAny(handlers ...Handler) error {
	h, err := c.readHeader()
	if err != nil {
		return err
	}
	payload, err := c.readPayload(int(h.Length))
	if err != nil {
		return err
	}
	for _, hd := range handlers {
		t := hd.msg.MessageType()
		if h.ClassID != t.ClassID || h.CommandID != t.CommandID {
			continue
		}
		size, err := wireSize(hd.msg)
		if err != nil {
			return err
		}
		if !t.Partial && int(h.Length) != size {
			continue
		}
		if t.Partial && int(h.Length) < size {
			return fmt.Errorf("%w: message %s needs at least %d payload bytes, header announces %d",
				ErrLengthMismatch, t, size, h.Length)
		}
		err = Unmarshal(payload[:size], hd.msg)
		if err != nil {
			return err
		}
		return hd.invoke(payload[size:])
	}
	clnLog.Debugf("Discarding frame %d/%d with %d payload bytes, no handler matches", h.ClassID, h.CommandID, h.Length)
	return nil
}

func (c *Client) readHeader() (header, error) {
	var h header
	err := binary.Read(c.rw, binary.LittleEndian, &h)
	if err != nil {
		return header{}, fmt.Errorf("Reading of header failed: %w", err)
	}
	clnLog.Tracef("Received header: message %d/%d, %d payload bytes", h.ClassID, h.CommandID, h.Length)
	return h, nil
}

func (c *Client) readPayload(size int) ([]byte, error) {
	payload := make([]byte, size)
	_, err := io.ReadFull(c.rw, payload)
	if err != nil {
		return nil, fmt.Errorf("Reading of payload failed: %w", err)
	}
	clnLog.Tracef("Received payload: % x", payload)
	return payload, nil
}

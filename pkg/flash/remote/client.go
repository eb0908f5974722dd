package remote

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/url"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/benchkit/sftest.go/pkg/flash"
)

// Client drives a remote flash device over a PacketReadWriter. Every
// command is a synchronous request/response exchange; the lock keeps
// exchanges one-at-a-time so replies always match their request.
type Client struct {
	rw   PacketReadWriter
	lock sync.Mutex
}

// NewClient creates a Client over a framed transport.
func NewClient(rw PacketReadWriter) *Client {
	return &Client{rw: rw}
}

// Dial connects to a device endpoint. Supported schemes are
// tcp://host:port and ws://host:port/path.
func Dial(endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "tcp":
		conn, err := net.Dial("tcp", u.Host)
		if err != nil {
			return nil, err
		}
		return NewClient(NewStream(conn)), nil
	case "ws", "wss":
		conn, err := websocket.Dial(endpoint, "", "http://"+u.Host)
		if err != nil {
			return nil, err
		}
		return NewClient(NewWebsocket(conn)), nil
	}
	return nil, fmt.Errorf("unsupported flash endpoint scheme %q", u.Scheme)
}

func (c *Client) exchange(code byte, addr uint32, rest []byte) ([]byte, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.rw.WritePacket(encodeRequest(code, addr, rest)); err != nil {
		return nil, err
	}
	resp, err := c.rw.ReadPacket()
	if err != nil {
		return nil, err
	}
	if len(resp) < 2 {
		return nil, ErrShortReply
	}
	if resp[0] != code {
		return nil, ErrFrame
	}
	if err := errOf(resp[1], resp[2:]); err != nil {
		return nil, err
	}
	return resp[2:], nil
}

// WriteEnable implements flash.Device.
func (c *Client) WriteEnable() error {
	_, err := c.exchange(cmdWriteEnable, 0, nil)
	return err
}

// EraseSector implements flash.Device.
func (c *Client) EraseSector(addr uint32) error {
	_, err := c.exchange(cmdEraseSector, addr, nil)
	return err
}

// ProgramPage implements flash.Device.
func (c *Client) ProgramPage(addr uint32, buf []byte) error {
	_, err := c.exchange(cmdPageProgram, addr, buf)
	return err
}

// ReadPage implements flash.Device.
func (c *Client) ReadPage(addr uint32, buf []byte) error {
	var count [2]byte
	binary.LittleEndian.PutUint16(count[:], uint16(len(buf)))
	data, err := c.exchange(cmdPageRead, addr, count[:])
	if err != nil {
		return err
	}
	if len(data) != len(buf) {
		return ErrShortReply
	}
	copy(buf, data)
	return nil
}

var _ flash.Device = (*Client)(nil)

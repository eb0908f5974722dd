// Package remote implements the flash wire protocol: Device commands
// framed over a byte stream, so the harness can drive a flash device
// (or simulator) attached via TCP, a serial bridge, or a websocket.
package remote

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/benchkit/sftest.go/pkg/flash"
)

// Command codes, matching the serial NOR opcodes they stand in for.
const (
	cmdWriteEnable byte = 0x06
	cmdEraseSector byte = 0x20
	cmdPageProgram byte = 0x02
	cmdPageRead    byte = 0x03
)

// Status codes carried in response frames.
const (
	statusOK byte = iota
	statusOutOfRange
	statusMisaligned
	statusPageSize
	statusWriteDisabled
	statusOther byte = 0x7F
)

// PacketReadWriter sends and receives whole frames.
type PacketReadWriter interface {
	ReadPacket() ([]byte, error)
	WritePacket([]byte) error
}

// StreamRW frames packets over an io.ReadWriter with a 4-byte
// little-endian length prefix.
type StreamRW struct {
	io.ReadWriter
}

// NewStream creates a StreamRW over an io.ReadWriter.
func NewStream(s io.ReadWriter) *StreamRW {
	return &StreamRW{s}
}

// ReadPacket implements PacketReadWriter.
func (p *StreamRW) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(p, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > uint32(flash.PageBytes)+16 {
		return nil, ErrFrame
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(p, pkt)
	return pkt, err
}

// WritePacket implements PacketReadWriter.
func (p *StreamRW) WritePacket(pkt []byte) error {
	if err := binary.Write(p, binary.LittleEndian, uint32(len(pkt))); err != nil {
		return err
	}
	_, err := p.Write(pkt)
	return err
}

// Frame errors.
var (
	// ErrFrame indicates a malformed or oversized frame.
	ErrFrame = errors.New("malformed frame")
	// ErrShortReply indicates a response frame shorter than its header.
	ErrShortReply = errors.New("short reply")
)

// request layout: code(1) addr(4,LE) rest...
// cmdPageProgram: rest = page payload
// cmdPageRead:    rest = count(2,LE)
// response layout: code(1) status(1) rest...
// cmdPageRead OK: rest = page payload
// statusOther:    rest = error text

func encodeRequest(code byte, addr uint32, rest []byte) []byte {
	req := make([]byte, 5+len(rest))
	req[0] = code
	binary.LittleEndian.PutUint32(req[1:], addr)
	copy(req[5:], rest)
	return req
}

func statusOf(err error) (byte, string) {
	switch err {
	case nil:
		return statusOK, ""
	case flash.ErrOutOfRange:
		return statusOutOfRange, ""
	case flash.ErrMisaligned:
		return statusMisaligned, ""
	case flash.ErrPageSize:
		return statusPageSize, ""
	case flash.ErrWriteDisabled:
		return statusWriteDisabled, ""
	}
	return statusOther, err.Error()
}

func errOf(status byte, rest []byte) error {
	switch status {
	case statusOK:
		return nil
	case statusOutOfRange:
		return flash.ErrOutOfRange
	case statusMisaligned:
		return flash.ErrMisaligned
	case statusPageSize:
		return flash.ErrPageSize
	case statusWriteDisabled:
		return flash.ErrWriteDisabled
	}
	if len(rest) > 0 {
		return errors.New(string(rest))
	}
	return fmt.Errorf("device status %d", status)
}

package remote

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/golang/glog"

	"github.com/benchkit/sftest.go/pkg/flash"
)

// Server dispatches wire-protocol frames onto a flash.Device. One
// Server serves one connection; the device may be shared between
// connections since Device implementations serialize internally.
type Server struct {
	Device flash.Device

	rw PacketReadWriter
}

// NewServer creates a Server for one framed connection.
func NewServer(dev flash.Device, rw PacketReadWriter) *Server {
	return &Server{Device: dev, rw: rw}
}

// Serve processes frames until the transport fails or ctx is done.
// The caller is responsible for closing the underlying connection on
// cancellation to unblock the pending read.
func (s *Server) Serve(ctx context.Context) error {
	for {
		req, err := s.rw.ReadPacket()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err = s.serveOne(req); err != nil {
			return err
		}
	}
}

func (s *Server) serveOne(req []byte) error {
	if len(req) < 5 {
		glog.Warningf("dropping malformed request of %d bytes", len(req))
		return s.reply(0, statusOther, []byte(ErrFrame.Error()))
	}
	code := req[0]
	addr := binary.LittleEndian.Uint32(req[1:])
	rest := req[5:]

	switch code {
	case cmdWriteEnable:
		return s.replyErr(code, s.Device.WriteEnable())
	case cmdEraseSector:
		return s.replyErr(code, s.Device.EraseSector(addr))
	case cmdPageProgram:
		return s.replyErr(code, s.Device.ProgramPage(addr, rest))
	case cmdPageRead:
		if len(rest) < 2 {
			return s.reply(code, statusOther, []byte(ErrFrame.Error()))
		}
		count := binary.LittleEndian.Uint16(rest)
		if uint32(count) > flash.PageBytes {
			return s.replyErr(code, flash.ErrPageSize)
		}
		buf := make([]byte, count)
		if err := s.Device.ReadPage(addr, buf); err != nil {
			return s.replyErr(code, err)
		}
		return s.reply(code, statusOK, buf)
	}
	glog.Warningf("unknown command 0x%02x", code)
	return s.reply(code, statusOther, []byte("unknown command"))
}

func (s *Server) replyErr(code byte, err error) error {
	status, text := statusOf(err)
	return s.reply(code, status, []byte(text))
}

func (s *Server) reply(code, status byte, rest []byte) error {
	resp := make([]byte, 2+len(rest))
	resp[0], resp[1] = code, status
	copy(resp[2:], rest)
	return s.rw.WritePacket(resp)
}

package remote

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchkit/sftest.go/pkg/flash"
)

func newPair(t *testing.T) (*Client, func()) {
	cconn, sconn := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewServer(flash.NewMemDevice(), NewStream(sconn)).Serve(ctx)
	}()
	return NewClient(NewStream(cconn)), func() {
		cancel()
		cconn.Close()
		sconn.Close()
		<-done
	}
}

func TestClientRoundTrip(t *testing.T) {
	client, stop := newPair(t)
	defer stop()

	page := make([]byte, flash.PageBytes)
	for i := range page {
		page[i] = byte(i)
	}
	require.NoError(t, client.WriteEnable())
	require.NoError(t, client.EraseSector(flash.SubsectorBytes))
	require.NoError(t, client.WriteEnable())
	require.NoError(t, client.ProgramPage(flash.SubsectorBytes, page))

	got := make([]byte, flash.PageBytes)
	require.NoError(t, client.ReadPage(flash.SubsectorBytes, got))
	require.Equal(t, page, got)
}

func TestClientShortRead(t *testing.T) {
	client, stop := newPair(t)
	defer stop()

	got := make([]byte, 16)
	require.NoError(t, client.ReadPage(0, got))
	for _, b := range got {
		require.Equal(t, byte(0xFF), b)
	}
}

func TestClientErrorMapping(t *testing.T) {
	client, stop := newPair(t)
	defer stop()

	// Status codes come back as the sentinel errors the local device
	// would have returned.
	require.Equal(t, flash.ErrWriteDisabled, client.EraseSector(0))
	require.NoError(t, client.WriteEnable())
	require.Equal(t, flash.ErrMisaligned, client.EraseSector(1))
	require.Equal(t, flash.ErrOutOfRange, client.EraseSector(flash.DeviceBytes))
	require.Equal(t, flash.ErrPageSize, client.ReadPage(0, make([]byte, flash.PageBytes+1)))
}

func TestStreamFraming(t *testing.T) {
	cconn, sconn := net.Pipe()
	defer cconn.Close()
	defer sconn.Close()

	crw, srw := NewStream(cconn), NewStream(sconn)
	go func() {
		crw.WritePacket([]byte{1, 2, 3})
		crw.WritePacket([]byte{4})
	}()
	pkt, err := srw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, pkt)
	pkt, err = srw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{4}, pkt)
}

package remote

import "golang.org/x/net/websocket"

// WebsocketRW implements PacketReadWriter over a websocket connection,
// one binary message per frame.
type WebsocketRW websocket.Conn

// NewWebsocket wraps a websocket.Conn.
func NewWebsocket(conn *websocket.Conn) *WebsocketRW {
	return (*WebsocketRW)(conn)
}

// ReadPacket implements PacketReadWriter.
func (p *WebsocketRW) ReadPacket() (pkt []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(p), &pkt)
	return
}

// WritePacket implements PacketReadWriter.
func (p *WebsocketRW) WritePacket(pkt []byte) error {
	return websocket.Message.Send((*websocket.Conn)(p), pkt)
}

package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/benchkit/sftest.go/pkg/flash"
	"github.com/benchkit/sftest.go/pkg/flash/remote"
	fx "github.com/benchkit/sftest.go/pkg/framework"
)

var (
	listenAddr = ":7320"
	wsAddr     = ""
)

func init() {
	flag.StringVar(&listenAddr, "listen", listenAddr, "TCP listen address.")
	flag.StringVar(&wsAddr, "ws", wsAddr, "Optional websocket (HTTP) listen address.")
}

// listener accepts framed TCP connections and serves the shared device
// on each.
type listener struct {
	dev flash.Device
	ln  net.Listener
}

func (l *listener) Name() string { return "tcp" }

func (l *listener) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.ln.Close()
	}()
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go func(conn net.Conn) {
			defer conn.Close()
			srv := remote.NewServer(l.dev, remote.NewStream(conn))
			if err := srv.Serve(ctx); err != nil && err != context.Canceled {
				glog.Errorf("serve %s: %v", conn.RemoteAddr(), err)
			}
		}(conn)
	}
}

// wsListener serves the same wire protocol with one websocket binary
// message per frame.
type wsListener struct {
	dev  flash.Device
	addr string
}

func (l *wsListener) Name() string { return "ws" }

func (l *wsListener) Run(ctx context.Context) error {
	server := &http.Server{
		Addr: l.addr,
		Handler: websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()
			srv := remote.NewServer(l.dev, remote.NewWebsocket(conn))
			if err := srv.Serve(ctx); err != nil && err != context.Canceled {
				glog.Errorf("serve ws %s: %v", conn.Request().RemoteAddr, err)
			}
		}),
	}
	go func() {
		<-ctx.Done()
		server.Close()
	}()
	err := server.ListenAndServe()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func main() {
	flag.Parse()

	dev := flash.NewMemDevice()

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatalln(err)
	}
	glog.Infof("flash simulator on %s", ln.Addr())

	run := fx.NewRunner().HandleSignals()
	run.Go(&listener{dev: dev, ln: ln})
	if wsAddr != "" {
		run.Go(&wsListener{dev: dev, addr: wsAddr})
	}
	if err := run.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// Package network provides listener helpers for the web server.
package network

import (
	"bufio"
	"net"
	"net/http"
	"net/url"
	"sync"
)

// first byte of every TLS record carrying a handshake message
const tlsHandshakeRecord = 0x16

// AutoHttpsListener sits under a tls listener and answers plain HTTP
// requests with a redirect to the https URL instead of a handshake error.
type AutoHttpsListener struct {
	net.Listener
}

func NewAutoHttpsListener(listener net.Listener) net.Listener {
	return &AutoHttpsListener{Listener: listener}
}

func (l *AutoHttpsListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &AutoHttpsConn{Conn: conn, r: bufio.NewReader(conn)}, nil
}

// AutoHttpsConn sniffs the first byte on the first Read. Anything that is not
// a TLS handshake is parsed as an HTTP request and redirected.
type AutoHttpsConn struct {
	net.Conn

	r    *bufio.Reader
	once sync.Once
	err  error
}

func (c *AutoHttpsConn) Read(buf []byte) (int, error) {
	c.once.Do(c.sniff)
	if c.err != nil {
		return 0, c.err
	}
	return c.r.Read(buf)
}

func (c *AutoHttpsConn) sniff() {
	first, err := c.r.Peek(1)
	if err != nil || first[0] == tlsHandshakeRecord {
		// read errors surface from the next Read
		return
	}

	req, err := http.ReadRequest(c.r)
	if err != nil {
		c.err = err
		_ = c.Conn.Close()
		return
	}
	target := url.URL{Scheme: "https", Host: req.Host, Path: req.URL.Path, RawQuery: req.URL.RawQuery}
	resp := &http.Response{
		StatusCode: http.StatusTemporaryRedirect,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{"Location": {target.String()}},
		Close:      true,
	}
	_ = resp.Write(c.Conn)
	_ = c.Conn.Close()
	c.err = net.ErrClosed
}

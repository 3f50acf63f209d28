package server

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
)

// Transport names reported in logs.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// Conn is one client connection as seen by a session: a source of lines and a
// sink for output. Close must be safe to call more than once and must unblock a
// pending ReadLine.
type Conn interface {
	io.WriteCloser
	ReadLine() (string, error)
	RemoteAddr() string
	Transport() string
}

type tcpConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
	once    sync.Once
	err     error
}

// NewTCPConn wraps a stream connection carrying newline terminated lines.
func NewTCPConn(conn net.Conn) Conn {
	return &tcpConn{
		conn:    conn,
		scanner: bufio.NewScanner(conn),
	}
}

// ReadLine returns the next line without its terminator, or io.EOF once the
// client has closed its side.
func (c *tcpConn) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return strings.TrimSuffix(c.scanner.Text(), "\r"), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *tcpConn) Write(p []byte) (int, error) {
	return c.conn.Write(p)
}

func (c *tcpConn) Close() error {
	c.once.Do(func() {
		c.err = c.conn.Close()
	})
	return c.err
}

func (c *tcpConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *tcpConn) Transport() string {
	return TransportTCP
}

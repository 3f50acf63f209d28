package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Client pumps lines between a local terminal and a quiz server.
type Client struct {
	serverAddr string
	in         io.Reader
	out        io.Writer

	conn net.Conn
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddr sets the server address to connect to.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return errors.Wrapf(err, "parse server address %q failed", addr)
		}
		c.serverAddr = addr
		return nil
	}
}

// WithServerPort sets the server port to connect to on localhost.
func WithServerPort(p uint16) Cfg {
	return func(c *Client) error {
		c.serverAddr = fmt.Sprintf("localhost:%d", p)
		return nil
	}
}

// WithInput sets where user lines are read from.
func WithInput(r io.Reader) Cfg {
	return func(c *Client) error {
		c.in = r
		return nil
	}
}

// WithOutput sets where server output is written to.
func WithOutput(w io.Writer) Cfg {
	return func(c *Client) error {
		c.out = w
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	if client.serverAddr == "" {
		return nil, ErrMissingServerAddr
	}
	if client.in == nil || client.out == nil {
		return nil, ErrMissingIO
	}
	return client, nil
}

// Connect establishes the connection to the server.
func (c *Client) Connect(ctx context.Context) error {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return errors.Wrap(err, "close client connection failed")
		}
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s failed", c.serverAddr)
	}
	c.conn = conn
	logger.WithField("addr", c.serverAddr).Debug("connected")
	return nil
}

// Run copies input lines to the server and server output to the local output
// until the server closes the connection or ctx is done. End of input
// half-closes the connection so the server ends the session.
//
// Reading input is not interruptible. When the server goes first, the goroutine
// reading input stays blocked until the next line or end of input.
func (c *Client) Run(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	defer c.conn.Close()

	go func() {
		if err := c.pump(); err != nil {
			logger.WithError(err).Debug("send input failed")
		}
	}()

	done := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		if _, err := io.Copy(c.out, c.conn); err != nil && !errors.Is(err, net.ErrClosed) {
			return errors.Wrap(err, "receive server output failed")
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return c.conn.Close()
		case <-done:
			return nil
		}
	})
	if err := g.Wait(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// pump sends every input line to the server.
func (c *Client) pump() error {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if _, err := fmt.Fprintf(c.conn, "%s\n", scanner.Text()); err != nil {
			return errors.Wrap(err, "send line failed")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read input failed")
	}
	if tcp, ok := c.conn.(*net.TCPConn); ok {
		return tcp.CloseWrite()
	}
	return nil
}

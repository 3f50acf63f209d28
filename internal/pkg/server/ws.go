package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConn carries one line per text frame in both directions.
type wsConn struct {
	ws     *websocket.Conn
	remote string
	once   sync.Once
	err    error
}

func newWSConn(ws *websocket.Conn, remote string) *wsConn {
	return &wsConn{ws: ws, remote: remote}
}

func (c *wsConn) ReadLine() (string, error) {
	for {
		kind, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", errors.Wrap(err, "websocket closed by client")
			}
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(msg), "\r\n"), nil
	}
}

// Write sends p as one text frame, without the trailing line terminator.
func (c *wsConn) Write(p []byte) (int, error) {
	text := strings.TrimSuffix(string(p), "\n")
	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	c.once.Do(func() {
		deadline := time.Now().Add(time.Second)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
		c.err = c.ws.Close()
	})
	return c.err
}

func (c *wsConn) RemoteAddr() string {
	return c.remote
}

func (c *wsConn) Transport() string {
	return TransportWebSocket
}

// router serves sessions on /ws and a liveness probe on /healthz. Every session
// it starts is counted in sessions.
func (s *Server) router(sessions *sync.WaitGroup) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": s.Sessions(),
		})
	})
	r.GET("/ws", func(c *gin.Context) {
		sessions.Add(1)
		defer sessions.Done()
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.WithError(err).Debug("websocket upgrade failed")
			return
		}
		if err := s.ServeConn(c.Request.Context(), newWSConn(ws, c.Request.RemoteAddr)); err != nil {
			logger.WithError(err).Error("serve websocket connection failed")
		}
	})
	return r
}

// ServeWebSocket runs the WebSocket gateway on ln until ctx is done. It returns
// once every session it started has ended.
func (s *Server) ServeWebSocket(ctx context.Context, ln net.Listener) error {
	gin.SetMode(gin.ReleaseMode)
	var sessions sync.WaitGroup
	srv := &http.Server{
		Handler:           s.router(&sessions),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	logger.WithField("addr", ln.Addr().String()).Info("websocket gateway listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("shutdown websocket gateway failed")
		}
		<-errCh
		// hijacked connections are not tracked by Shutdown
		sessions.Wait()
		logger.Info("websocket gateway stopped")
		return nil
	case err := <-errCh:
		sessions.Wait()
		return errors.Wrap(err, "serve websocket gateway failed")
	}
}

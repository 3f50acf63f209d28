package apps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quiz/internal/pkg/store"

	"github.com/stretchr/testify/require"
)

type serverCfg func(*ServerApp) error

func (f serverCfg) ApplyServerApp(app *ServerApp) error {
	return f(app)
}

type seedCfg func(*SeedApp) error

func (f seedCfg) ApplySeedApp(app *SeedApp) error {
	return f(app)
}

type clientCfg func(*ClientApp) error

func (f clientCfg) ApplyClientApp(app *ClientApp) error {
	return f(app)
}

func freePort(t *testing.T) uint16 {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return uint16(ln.Addr().(*net.TCPAddr).Port)
}

func TestNewServerApp(t *testing.T) {
	_, err := NewServerApp()
	require.Error(t, err, "port is required")

	_, err = NewServerApp(serverCfg(func(app *ServerApp) error {
		app.Port = 3030
		app.Store = store.DriverSQLite
		return nil
	}))
	require.Error(t, err, "sqlite needs a dsn")

	app, err := NewServerApp(serverCfg(func(app *ServerApp) error {
		app.Port = 3030
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, store.DriverMemory, app.Store)
	require.Equal(t, "quiz> ", app.Prompt)
}

func TestNewClientApp(t *testing.T) {
	_, err := NewClientApp()
	require.Error(t, err)

	_, err = NewClientApp(clientCfg(func(app *ClientApp) error {
		app.Addr = "localhost:3030"
		return nil
	}))
	require.NoError(t, err)
}

func TestServerAppRun(t *testing.T) {
	port := freePort(t)
	app, err := NewServerApp(serverCfg(func(app *ServerApp) error {
		app.Port = port
		app.HealthPort = freePort(t)
		app.WSPort = freePort(t)
		return nil
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx, nil)
	}()

	var conn net.Conn
	require.Eventually(t, func() bool {
		conn, err = net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	var out bytes.Buffer
	c := &ClientApp{Addr: fmt.Sprintf("127.0.0.1:%d", port), In: strings.NewReader("list\nquit\n"), Out: &out}
	require.NoError(t, c.Run(ctx, nil))
	require.Contains(t, out.String(), " [1]: Capital of Italy\n")
	require.Contains(t, out.String(), " [4]: Capital of Portugal\n")
	require.True(t, strings.HasSuffix(out.String(), "Bye!\n"))

	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.NotEmpty(t, line)

	cancel()
	require.NoError(t, <-done)
}

func TestSeedApp(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("quizzes:\n  - question: 1+1\n    answer: \"2\"\n"), 0o600))
	dsn := "file:" + filepath.Join(dir, "quiz.db")

	app, err := NewSeedApp(seedCfg(func(app *SeedApp) error {
		app.Store = store.DriverSQLite
		app.StoreDSN = dsn
		return nil
	}))
	require.NoError(t, err)
	require.Error(t, app.Run(context.Background(), nil))
	require.NoError(t, app.Run(context.Background(), []string{seed}))
	require.NoError(t, app.Run(context.Background(), []string{seed}))

	st, err := store.Open(context.Background(), store.DriverSQLite, dsn)
	require.NoError(t, err)
	defer st.Close()
	records, err := st.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "1+1", records[0].Question)
}

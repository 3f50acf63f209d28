//go:build integration

package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"quiz/internal/app/apps"
	"quiz/internal/app/cfg"

	"github.com/stretchr/testify/require"
)

func TestServerClientApps(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip()
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	require.NoError(t, ln.Close())
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s, err := apps.NewServerApp(
			cfg.NewPortCfg(port, 0, 0),
			cfg.NewStoreCfg("memory", "", ""),
			cfg.NewSessionCfg("quiz> ", false, false, 4),
		)
		require.NoError(t, err)
		require.NoError(t, s.Run(ctx, nil))
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		require.Eventually(t, func() bool {
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				return false
			}
			conn.Close()
			return true
		}, 5*time.Second, 20*time.Millisecond)

		var out bytes.Buffer
		in := strings.NewReader("add\nCapital of Greece\nAthens\nshow 5\ntest 5\n athens\nquit\n")
		c, err := apps.NewClientApp(cfg.NewAddrCfg(addr), cfg.NewIOCfg(in, &out))
		require.NoError(t, err)
		require.NoError(t, c.Run(ctx, nil))
		require.Contains(t, out.String(), "Added: [5] Capital of Greece => Athens")
		require.Contains(t, out.String(), " [5]: Capital of Greece => Athens")
		require.Contains(t, out.String(), "Your answer is correct.")
		require.True(t, strings.HasSuffix(out.String(), "Bye!\n"))
	}()
	wg.Wait()
}

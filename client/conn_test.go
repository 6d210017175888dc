package client

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tompro/redis-ts/args"
	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/resp"
)

// pipeServer answers one scripted reply per incoming command frame and
// reports the decoded frames once the script is exhausted.
func pipeServer(t *testing.T, conn net.Conn, replies ...string) <-chan []fakeCall {
	t.Helper()
	callsCh := make(chan []fakeCall, 1)

	go func() {
		var calls []fakeCall
		r := resp.NewReader(conn)
		for _, reply := range replies {
			v, err := r.ReadValue()
			if !assert.NoError(t, err) {
				break
			}

			call := fakeCall{}
			call.command, _ = v.Index(0).Text()
			for _, item := range v.Items()[1:] {
				token, _ := item.Text()
				call.tokens = append(call.tokens, token)
			}
			calls = append(calls, call)

			if _, err := conn.Write([]byte(reply)); !assert.NoError(t, err) {
				break
			}
		}
		callsCh <- calls
	}()

	return callsCh
}

func TestNetConn_RoundTrip(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	callsCh := pipeServer(t, serverSide, ":1500\r\n")

	conn := newNetConn(clientSide, defaultConfig())
	defer conn.Close()

	v, err := conn.Do(context.Background(), "TS.ADD", args.New().Add("k").AddInt(1500).AddFloat(3.5))
	require.NoError(t, err)

	n, err := v.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(1500), n)

	calls := <-callsCh
	require.Equal(t, []fakeCall{{command: "TS.ADD", tokens: []string{"k", "1500", "3.5"}}}, calls)
}

func TestNetConn_ServerErrorReply(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	callsCh := pipeServer(t, serverSide, "-ERR wrong number of arguments\r\n")

	conn := newNetConn(clientSide, defaultConfig())
	defer conn.Close()

	_, err := conn.Do(context.Background(), "TS.GET", args.New())
	require.Error(t, err)

	var srvErr resp.ServerError
	require.ErrorAs(t, err, &srvErr)
	require.Equal(t, "ERR wrong number of arguments", string(srvErr))

	<-callsCh
}

func TestNetConn_Handshake(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	callsCh := pipeServer(t, serverSide, "+OK\r\n", "+OK\r\n")

	cfg := defaultConfig()
	cfg.Password = "secret"
	cfg.Database = 2

	conn := newNetConn(clientSide, cfg)
	defer conn.Close()

	require.NoError(t, conn.handshake(context.Background()))

	calls := <-callsCh
	require.Equal(t, []fakeCall{
		{command: "AUTH", tokens: []string{"secret"}},
		{command: "SELECT", tokens: []string{"2"}},
	}, calls)
}

func TestNetConn_Handshake_AuthRejected(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	callsCh := pipeServer(t, serverSide, "-ERR invalid password\r\n")

	cfg := defaultConfig()
	cfg.Password = "wrong"

	conn := newNetConn(clientSide, cfg)
	defer conn.Close()

	err := conn.handshake(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "auth")

	var srvErr resp.ServerError
	require.ErrorAs(t, err, &srvErr)

	<-callsCh
}

func TestNetConn_ContextCanceled(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	conn := newNetConn(clientSide, defaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.Do(ctx, "PING", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNetConn_ReadTimeout(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer serverSide.Close()

	// Swallow the request and never reply.
	go func() {
		buf := make([]byte, 1024)
		_, _ = serverSide.Read(buf)
	}()

	cfg := defaultConfig()
	cfg.ReadTimeout = 50 * time.Millisecond

	conn := newNetConn(clientSide, cfg)
	defer conn.Close()

	_, err := conn.Do(context.Background(), "PING", nil)
	require.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestNetConn_ClosedRejectsCommands(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer serverSide.Close()

	conn := newNetConn(clientSide, defaultConfig())
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	_, err := conn.Do(context.Background(), "PING", nil)
	require.ErrorIs(t, err, errs.ErrConnClosed)
}

package notify

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerhub/internal/platform/config"
)

// fakeSMTPServer speaks just enough unencrypted SMTP to accept one message.
type fakeSMTPServer struct {
	listener net.Listener
	conns    atomic.Int32
	messages chan string
}

func newFakeSMTPServer(t *testing.T) *fakeSMTPServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &fakeSMTPServer{listener: listener, messages: make(chan string, 4)}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			srv.conns.Add(1)
			go srv.serve(conn)
		}
	}()
	t.Cleanup(func() { listener.Close() })
	return srv
}

func (s *fakeSMTPServer) addr() (host, port string) {
	host, port, _ = net.SplitHostPort(s.listener.Addr().String())
	return host, port
}

func (s *fakeSMTPServer) serve(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	reply := func(line string) { fmt.Fprintf(conn, "%s\r\n", line) }

	reply("220 localhost ESMTP")
	var data strings.Builder
	inData := false
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if inData {
			if line == "." {
				inData = false
				s.messages <- data.String()
				data.Reset()
				reply("250 OK")
				continue
			}
			data.WriteString(line + "\n")
			continue
		}

		switch {
		case strings.HasPrefix(line, "EHLO"):
			fmt.Fprintf(conn, "250-localhost\r\n250 SIZE 35882577\r\n")
		case strings.HasPrefix(line, "HELO"):
			reply("250 localhost")
		case strings.HasPrefix(line, "MAIL FROM"):
			reply("250 OK")
		case strings.HasPrefix(line, "RCPT TO"):
			reply("250 OK")
		case line == "DATA":
			reply("354 go ahead")
			inData = true
		case line == "QUIT":
			reply("221 bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func TestSMTPNotifierSendsOverOneConnection(t *testing.T) {
	srv := newFakeSMTPServer(t)
	host, port := srv.addr()

	notifier := NewSMTP(config.SMTPConfig{
		Host:    host,
		Port:    port,
		From:    "Career Guidance Platform <noreply@careerhub.local>",
		Timeout: 5 * time.Second,
	})

	err := notifier.Send(context.Background(), "s1@example.com", "Admission Update", "Dear Sam, congratulations!")
	require.NoError(t, err)

	select {
	case msg := <-srv.messages:
		assert.Contains(t, msg, "To: s1@example.com")
		assert.Contains(t, msg, "Subject: Admission Update")
		assert.Contains(t, msg, "Dear Sam, congratulations!")
	case <-time.After(time.Second):
		t.Fatal("message never arrived")
	}

	assert.Equal(t, int32(1), srv.conns.Load(), "one message must use one connection")
}

func TestSMTPNotifierRequiresHost(t *testing.T) {
	notifier := NewSMTP(config.SMTPConfig{})
	err := notifier.Send(context.Background(), "s1@example.com", "x", "y")
	require.Error(t, err)
}

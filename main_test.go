package main

import (
	"bytes"
	"log"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownServersLogsAuxiliaryFailure(t *testing.T) {
	var buf bytes.Buffer
	prevOut := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prevOut) })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	aux := &http.Server{
		Addr: ln.Addr().String(),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
		}),
	}
	go aux.Serve(ln)
	t.Cleanup(func() {
		close(release)
		aux.Close()
	})

	go http.Get("http://" + ln.Addr().String() + "/debug/pprof/profile")
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	primary := &http.Server{Addr: ":0"}
	err = shutdownServers(20*time.Millisecond, primary, nil, aux)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Shutdown of "+ln.Addr().String())
	assert.Contains(t, buf.String(), "context deadline exceeded")
}

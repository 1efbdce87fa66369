package bridge

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

func TestLogStreamDeliversRecords(t *testing.T) {
	s := newTestServer(t, `exit 0`)

	ts := httptest.NewServer(s.engine)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/logs/stream"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ready logEvent
	require.NoError(t, ws.ReadJSON(&ready))
	assert.Equal(t, "ready", ready.Event)
	assert.Equal(t, string(models.DaemonOffline), ready.Status)

	// The handler subscribes before sending ready, so a record emitted
	// after ready is observed must be delivered.
	s.sink.Emit(models.LogStatus, "Attempting to start provider worker...")

	var ev logEvent
	require.NoError(t, ws.ReadJSON(&ev))
	assert.Equal(t, "daemon_log", ev.Event)
	require.NotNil(t, ev.Record)
	assert.Equal(t, models.LogStatus, ev.Record.Category)
	assert.Equal(t, "Attempting to start provider worker...", ev.Record.Message)
	assert.Equal(t, uint64(1), ev.Record.ID)
}

func TestLogStreamMultipleClients(t *testing.T) {
	s := newTestServer(t, `exit 0`)

	ts := httptest.NewServer(s.engine)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/logs/stream"

	var conns []*websocket.Conn
	for i := 0; i < 2; i++ {
		ws, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer ws.Close()
		ws.SetReadDeadline(time.Now().Add(5 * time.Second))

		var ready logEvent
		require.NoError(t, ws.ReadJSON(&ready))
		conns = append(conns, ws)
	}

	s.sink.Emit(models.LogStderr, "shared line")

	for i, ws := range conns {
		var ev logEvent
		require.NoError(t, ws.ReadJSON(&ev), "client %d", i)
		require.NotNil(t, ev.Record)
		assert.Equal(t, "shared line", ev.Record.Message)
	}
}

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/isdelr/tagpulse-be/internal/api"
	"github.com/isdelr/tagpulse-be/internal/models"
	"github.com/isdelr/tagpulse-be/internal/services"
	"github.com/isdelr/tagpulse-be/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okHealth struct{ svc *services.EventService }

func (h okHealth) Check() (models.Health, error) {
	return models.Health{Status: "ok", TotalEvents: h.svc.Count()}, nil
}

// newServer starts the full router over a fresh store and a running hub.
func newServer(t *testing.T) (*httptest.Server, *websocket.Hub) {
	t.Helper()
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	svc := services.NewEventService(hub)
	srv := httptest.NewServer(api.NewRouter(hub, svc, okHealth{svc: svc}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, hub
}

func postEvent(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/events", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string, v interface{}) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestCreateAndList_RoundTrip(t *testing.T) {
	srv, _ := newServer(t)

	var created []models.Event
	for _, body := range []string{
		`{"tagId":"A","source":"gate-a","type":"alert"}`,
		`{"tagId":"A","source":"gate-b","type":"status"}`,
		`{"tagId":"B","source":"gate-a","type":"alert"}`,
	} {
		resp := postEvent(t, srv, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var event models.Event
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&event))
		created = append(created, event)
	}
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(3), created[2].ID)

	var listed []models.Event
	getJSON(t, srv, "/api/events", &listed)
	require.Len(t, listed, 3)
	for i := range listed {
		assert.Equal(t, normalize(created[len(created)-1-i]), normalize(listed[i]))
	}

	var stats models.Stats
	getJSON(t, srv, "/api/stats", &stats)
	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 2, stats.UniqueTags)
	assert.Equal(t, map[string]int{"alert": 2, "status": 1}, stats.EventsByType)
	assert.Equal(t, map[string]int{"gate-a": 2, "gate-b": 1}, stats.EventsBySource)
}

func TestCreate_MissingFieldDoesNotStore(t *testing.T) {
	srv, _ := newServer(t)

	resp := postEvent(t, srv, `{"tagId":"A","type":"alert"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["message"])

	var listed []models.Event
	getJSON(t, srv, "/api/events", &listed)
	assert.Empty(t, listed)
}

func TestEmptyStore(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `{}`, string(raw["eventsByType"]))
	assert.JSONEq(t, `{}`, string(raw["eventsBySource"]))
	assert.JSONEq(t, `0`, string(raw["totalEvents"]))
}

func TestEventJSONShape(t *testing.T) {
	srv, _ := newServer(t)

	resp := postEvent(t, srv, `{"tagId":"NFC-1","source":"lobby","type":"check-in"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.ElementsMatch(t, []string{"id", "tagId", "source", "type", "createdAt"}, keys(raw))

	_, err := time.Parse(time.RFC3339Nano, raw["createdAt"].(string))
	assert.NoError(t, err)
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	srv, _ := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)
	postEvent(t, srv, `{"tagId":"A","source":"s","type":"status"}`)

	var health models.Health
	getJSON(t, srv, "/api/health", &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.TotalEvents)
}

func TestLiveFeed_ReceivesCreatedEvents(t *testing.T) {
	srv, hub := newServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp := postEvent(t, srv, `{"tagId":"NFC-9","source":"gate-b","type":"alert"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Action  string       `json:"action"`
		Payload models.Event `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, websocket.ActionEventCreated, msg.Action)
	assert.Equal(t, "NFC-9", msg.Payload.TagID)
	assert.Equal(t, int64(1), msg.Payload.ID)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))
	var pong websocket.Message
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, websocket.ActionPong, pong.Action)
}

// normalize drops the time zone so decoded events compare field for field.
func normalize(e models.Event) models.Event {
	e.CreatedAt = e.CreatedAt.UTC()
	return e
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

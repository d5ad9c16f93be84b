package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/emersion/go-message/mail"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friday/internal/recorder"
)

type fakeProcessor struct {
	mu    sync.Mutex
	reply string
	rule  string
	panic bool
	seen  []string
}

func (f *fakeProcessor) Dispatch(_ context.Context, text string) (string, string) {
	if f.panic {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, text)
	return f.reply, f.rule
}

type memoryJournal struct {
	recorder.NoopRecorder
	mu           sync.Mutex
	interactions []*recorder.Interaction
}

func (m *memoryJournal) RecordInteraction(evt *recorder.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions = append(m.interactions, evt)
	return nil
}

func (m *memoryJournal) all() []*recorder.Interaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*recorder.Interaction(nil), m.interactions...)
}

func newTestServer(t *testing.T, proc Processor) (*httptest.Server, *memoryJournal, string) {
	t.Helper()
	dir := t.TempDir()
	journal := &memoryJournal{}
	s := New(Config{Addr: "127.0.0.1:0", ChartDir: dir}, proc, journal)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, journal, dir
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestMessage_ReturnsReply(t *testing.T) {
	proc := &fakeProcessor{reply: "Hello! How can I help you today?", rule: "greeting"}
	ts, journal, _ := newTestServer(t, proc)

	resp, out := postJSON(t, ts.URL+"/api/friday", `{"message":"hello"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello! How can I help you today?", out["response"])
	assert.Nil(t, out["chart_path"])
	assert.Contains(t, out, "processing_time")
	assert.NotEmpty(t, out["request_id"])
	proc.mu.Lock()
	assert.Equal(t, []string{"hello"}, proc.seen)
	proc.mu.Unlock()

	got := journal.all()
	require.Len(t, got, 1)
	assert.Equal(t, recorder.ChannelHTTP, got[0].Channel)
	assert.Equal(t, "greeting", got[0].Rule)
	assert.Equal(t, out["request_id"], got[0].RequestID)
}

func TestMessage_MissingMessage(t *testing.T) {
	ts, journal, _ := newTestServer(t, &fakeProcessor{})

	for _, body := range []string{`{}`, `not json`, `{"text":"hi"}`} {
		resp, out := postJSON(t, ts.URL+"/api/friday", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, "No message provided", out["error"], body)
	}
	assert.Empty(t, journal.all())
}

func TestMessage_ChartPath(t *testing.T) {
	proc := &fakeProcessor{
		reply: "📊 STOCK CHART: assets/charts/TCS_NSE_20240301093015.pdf\n\n📈 TCS (NSE)\nCurrent Price: ₹3,500.00",
		rule:  "stock_analysis",
	}
	ts, journal, dir := newTestServer(t, proc)

	// The file does not exist yet, so the path is dropped.
	_, out := postJSON(t, ts.URL+"/api/friday", `{"message":"analyze stock tcs"}`)
	assert.Nil(t, out["chart_path"])
	assert.Equal(t, "📈 TCS (NSE)\nCurrent Price: ₹3,500.00", out["response"])

	require.NoError(t, os.WriteFile(filepath.Join(dir, "TCS_NSE_20240301093015.pdf"), []byte("%PDF-1.3"), 0o644))
	_, out = postJSON(t, ts.URL+"/api/friday", `{"message":"analyze stock tcs"}`)
	assert.Equal(t, "assets/charts/TCS_NSE_20240301093015.pdf", out["chart_path"])
	assert.NotContains(t, out["response"], "STOCK CHART")

	got := journal.all()
	require.Len(t, got, 2)
	assert.False(t, got[0].Chart)
	assert.True(t, got[1].Chart)
}

func TestMessage_FailureIsJournaled(t *testing.T) {
	proc := &fakeProcessor{reply: "Error: Could not find stock matching 'zzz'", rule: "stock_analysis"}
	ts, journal, _ := newTestServer(t, proc)

	postJSON(t, ts.URL+"/api/friday", `{"message":"analyze stock zzz"}`)
	got := journal.all()
	require.Len(t, got, 1)
	assert.True(t, got[0].Failed)
}

func TestMessage_PanicRecovered(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{panic: true})

	resp, out := postJSON(t, ts.URL+"/api/friday", `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "An error occurred while processing your request", out["error"])
	assert.Equal(t, "boom", out["details"])
}

func TestMessage_MethodNotAllowed(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{})

	resp, err := http.Get(ts.URL + "/api/friday")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS_Preflight(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/friday", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestChart_Serve(t *testing.T) {
	ts, _, dir := newTestServer(t, &fakeProcessor{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fund_119551_20240301093015.pdf"), []byte("%PDF-1.3 test"), 0o644))

	resp, err := http.Get(ts.URL + "/assets/charts/fund_119551_20240301093015.pdf")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "%PDF-1.3 test", string(body))
}

func TestChart_NotFound(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{})

	for _, path := range []string{"/assets/charts/missing.pdf", "/assets/charts/"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Chart not found", out["error"], path)
	}
}

func TestHealth(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEmail_Draft(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{})

	resp, err := http.Post(ts.URL+"/api/email", "application/json", bytes.NewBufferString(`{"topic":"job application for software engineer"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "message/rfc822", resp.Header.Get("Content-Type"))

	mr, err := mail.CreateReader(resp.Body)
	require.NoError(t, err)
	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(subject), "application")
}

func TestEmail_MissingTopic(t *testing.T) {
	ts, _, _ := newTestServer(t, &fakeProcessor{})

	resp, out := postJSON(t, ts.URL+"/api/email", `{"topic":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No topic provided", out["error"])
}

func TestWebSocket_Conversation(t *testing.T) {
	proc := &fakeProcessor{reply: "My name is FRIDAY.", rule: "name"}
	ts, journal, _ := newTestServer(t, proc)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "what is your name"}))
	var out map[string]any
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "My name is FRIDAY.", out["response"])

	require.NoError(t, conn.WriteJSON(map[string]string{}))
	out = nil
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "No message provided", out["error"])

	got := journal.all()
	require.Len(t, got, 1)
	assert.Equal(t, recorder.ChannelWebSocket, got[0].Channel)
}

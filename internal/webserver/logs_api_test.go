package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
)

func seedLogBuffer(t *testing.T, messages ...string) {
	t.Helper()
	buffer := logger.GetLogBuffer()
	buffer.Clear()
	for _, msg := range messages {
		buffer.Add(logger.LogEntry{Timestamp: time.Now(), Level: "INFO", Message: msg})
	}
	t.Cleanup(buffer.Clear)
}

func TestHandleLogs_GetAndClear(t *testing.T) {
	seedLogBuffer(t, "first", "second", "third")

	rec := httptest.NewRecorder()
	handleLogs(rec, httptest.NewRequest(http.MethodGet, "/api/logs?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	var body struct {
		Logs  []logger.LogEntry `json:"logs"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Count != 2 || body.Logs[0].Message != "second" || body.Logs[1].Message != "third" {
		t.Fatalf("unexpected logs: %+v", body)
	}

	rec = httptest.NewRecorder()
	handleLogs(rec, httptest.NewRequest(http.MethodDelete, "/api/logs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status on DELETE: got=%d", rec.Code)
	}
	if n := len(logger.GetLogBuffer().GetRecent(0)); n != 0 {
		t.Fatalf("buffer should be cleared: got=%d entries", n)
	}

	rec = httptest.NewRecorder()
	handleLogs(rec, httptest.NewRequest(http.MethodPut, "/api/logs", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status on PUT: got=%d", rec.Code)
	}
}

func TestHandleLogsDownload(t *testing.T) {
	seedLogBuffer(t, "download me")

	rec := httptest.NewRecorder()
	handleLogsDownload(rec, httptest.NewRequest(http.MethodGet, "/api/logs/download?format=text", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "download me") {
		t.Fatalf("text download missing entry: %q", rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment; filename=lucky-logs-") {
		t.Fatalf("unexpected Content-Disposition: %q", rec.Header().Get("Content-Disposition"))
	}

	rec = httptest.NewRecorder()
	handleLogsDownload(rec, httptest.NewRequest(http.MethodGet, "/api/logs/download?format=xml", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for bad format: got=%d", rec.Code)
	}
}

func TestHandleLogsStream_SendsRecentThenLive(t *testing.T) {
	seedLogBuffer(t, "before connect")
	startLogStreamer()

	server := httptest.NewServer(http.HandlerFunc(handleLogsStream))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var entry logger.LogEntry
	if err := conn.ReadJSON(&entry); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if entry.Message != "before connect" {
		t.Fatalf("unexpected first entry: %+v", entry)
	}

	// Registration happens asynchronously; keep broadcasting until one arrives.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				BroadcastLog(logger.LogEntry{Level: "INFO", Message: "live"})
			}
		}
	}()

	for {
		if err := conn.ReadJSON(&entry); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if entry.Message == "live" {
			return
		}
	}
}

package webserver

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	// /api/fortune と同じく全オリジンを許可
	CheckOrigin: func(r *http.Request) bool { return true },
}

// logClient is one WebSocket subscriber.
type logClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
	send chan logger.LogEntry
}

// LogStreamer fans captured log entries out to WebSocket clients.
type LogStreamer struct {
	clients    map[*logClient]bool
	broadcast  chan logger.LogEntry
	register   chan *logClient
	unregister chan *logClient
}

var (
	logStreamer = &LogStreamer{
		clients:    make(map[*logClient]bool),
		broadcast:  make(chan logger.LogEntry, 256),
		register:   make(chan *logClient),
		unregister: make(chan *logClient),
	}
	logStreamerOnce sync.Once
)

func startLogStreamer() {
	logStreamerOnce.Do(func() {
		go logStreamer.run()
		logger.SetBroadcastCallback(BroadcastLog)
	})
}

func (ls *LogStreamer) run() {
	for {
		select {
		case client := <-ls.register:
			ls.clients[client] = true
			logger.Info("WebSocket client connected for logs", zap.Int("clients", len(ls.clients)))

		case client := <-ls.unregister:
			if _, ok := ls.clients[client]; ok {
				delete(ls.clients, client)
				close(client.send)
				logger.Info("WebSocket client disconnected from logs", zap.Int("clients", len(ls.clients)))
			}

		case entry := <-ls.broadcast:
			for client := range ls.clients {
				select {
				case client.send <- entry:
				default:
					// 詰まっているクライアントには送らない
				}
			}
		}
	}
}

// BroadcastLog queues entry for every connected client without blocking the caller.
func BroadcastLog(entry logger.LogEntry) {
	select {
	case logStreamer.broadcast <- entry:
	default:
	}
}

// handleLogs は直近のログを返す（DELETEでバッファをクリア）
func handleLogs(w http.ResponseWriter, r *http.Request) {
	buffer := logger.GetLogBuffer()

	switch r.Method {
	case http.MethodGet:
		limit := 100
		if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
			limit = l
		}
		logs := buffer.GetRecent(limit)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"logs":      logs,
			"count":     len(logs),
			"timestamp": time.Now(),
		})
	case http.MethodDelete:
		buffer.Clear()
		logger.Info("Log buffer cleared")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Log buffer cleared",
		})
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// handleLogsDownload serves the buffer as a json or text attachment.
func handleLogsDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	buffer := logger.GetLogBuffer()
	stamp := time.Now().Format("20060102-150405")

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		data, err := buffer.ToJSON()
		if err != nil {
			logger.Error("Failed to encode logs", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=lucky-logs-%s.json", stamp))
		_, _ = w.Write(data)
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=lucky-logs-%s.txt", stamp))
		_, _ = w.Write([]byte(buffer.ToText()))
	default:
		writeJSONError(w, http.StatusBadRequest, "Invalid format. Use 'json' or 'text'")
	}
}

// handleLogsStream streams log entries over a WebSocket, starting with the latest 50.
func handleLogsStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	client := &logClient{
		conn: conn,
		send: make(chan logger.LogEntry, 256),
	}
	for _, entry := range logger.GetLogBuffer().GetRecent(50) {
		client.send <- entry
	}

	logStreamer.register <- client
	defer func() {
		logStreamer.unregister <- client
	}()

	go client.writePump()

	// 読み取りは切断検知のためだけ
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *logClient) writePump() {
	defer c.conn.Close()

	for entry := range c.send {
		c.mu.Lock()
		err := c.conn.WriteJSON(entry)
		c.mu.Unlock()
		if err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

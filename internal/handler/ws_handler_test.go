package handler_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/intervia/intervia-backend/internal/model"
)

// wsReply is the union of every server-to-client message shape, so one
// struct can decode whatever the handler sends back.
type wsReply struct {
	Event    string                  `json:"event"`
	Error    string                  `json:"error"`
	Progress *model.QuestionProgress `json:"progress"`
	Answer   *model.Answer           `json:"answer"`
	Next     *model.QuestionProgress `json:"next"`
	Finished bool                    `json:"finished"`
	Summary  *model.SessionSummary   `json:"summary"`
}

func dialLiveStream(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/sessions/" + sessionID + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func wsRoundTrip(t *testing.T, conn *websocket.Conn, action, text string) wsReply {
	t.Helper()
	if err := conn.WriteJSON(map[string]string{"action": action, "text": text}); err != nil {
		t.Fatalf("write %s: %v", action, err)
	}
	var reply wsReply
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read %s reply: %v", action, err)
	}
	return reply
}

func TestSessionLiveStream(t *testing.T) {
	engine := newTestEngine(testConfig())
	srv := httptest.NewServer(engine)
	defer srv.Close()

	session := createSession(t, engine)
	conn := dialLiveStream(t, srv, session.ID.String())

	t.Run("Progress", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "progress", "")
		if reply.Event != "progress" {
			t.Fatalf("event = %s, want progress", reply.Event)
		}
		if reply.Progress == nil || reply.Progress.QuestionID != 1 {
			t.Fatalf("progress = %+v, want question 1", reply.Progress)
		}
		if reply.Progress.TimeRemaining <= 0 || reply.Progress.TimeRemaining > 120 {
			t.Errorf("time remaining = %v, want within (0, 120]", reply.Progress.TimeRemaining)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if reply := wsRoundTrip(t, conn, "ping", ""); reply.Event != "pong" {
			t.Fatalf("event = %s, want pong", reply.Event)
		}
	})

	t.Run("AnswerAdvances", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "answer", "a list keeps order, a dict maps keys")
		if reply.Event != "recorded" {
			t.Fatalf("event = %s, want recorded", reply.Event)
		}
		if reply.Answer == nil || reply.Answer.QuestionID != 1 {
			t.Fatalf("answer = %+v, want question 1", reply.Answer)
		}
		if reply.Finished || reply.Next == nil || reply.Next.QuestionID != 2 {
			t.Fatalf("next = %+v finished=%v, want question 2", reply.Next, reply.Finished)
		}
	})

	t.Run("SkipFinishes", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "answer", "")
		if reply.Event != "recorded" {
			t.Fatalf("event = %s, want recorded", reply.Event)
		}
		if !reply.Finished || reply.Next != nil {
			t.Fatalf("reply = %+v, want finished with no next question", reply)
		}
	})

	t.Run("ProgressAfterFinishIsNull", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "progress", "")
		if reply.Event != "progress" || reply.Progress != nil {
			t.Fatalf("reply = %+v, want null progress", reply)
		}
	})

	t.Run("AnswerAfterFinishIsAnError", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "answer", "too late")
		if reply.Event != "error" || !strings.Contains(reply.Error, "not active") {
			t.Fatalf("reply = %+v, want not-active error", reply)
		}
	})

	t.Run("SummaryStaysAvailable", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "summary", "")
		if reply.Event != "summary" {
			t.Fatalf("event = %s, want summary", reply.Event)
		}
		if reply.Summary == nil || reply.Summary.AnsweredQuestions != 2 {
			t.Fatalf("summary = %+v, want 2 answered", reply.Summary)
		}
	})

	t.Run("UnknownAction", func(t *testing.T) {
		reply := wsRoundTrip(t, conn, "bogus", "")
		if reply.Event != "error" || !strings.Contains(reply.Error, "unknown action") {
			t.Fatalf("reply = %+v, want unknown-action error", reply)
		}
	})
}

func TestSessionLiveStreamUnknownSession(t *testing.T) {
	engine := newTestEngine(testConfig())
	srv := httptest.NewServer(engine)
	defer srv.Close()

	conn := dialLiveStream(t, srv, uuid.NewString())

	var reply wsReply
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Event != "error" || reply.Error != "session not found" {
		t.Fatalf("reply = %+v, want session-not-found error", reply)
	}
}

func TestSessionLiveStreamInvalidID(t *testing.T) {
	engine := newTestEngine(testConfig())
	srv := httptest.NewServer(engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/sessions/not-a-uuid/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("handshake succeeded for a malformed session ID")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("resp = %+v, want 400", resp)
	}
}

// readFirstSSEData connects to an SSE endpoint and returns the payload
// of the first data line, then drops the connection.
func readFirstSSEData(t *testing.T, url string) []byte {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q, want an event stream", ct)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data:") {
			return []byte(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	t.Fatalf("no data line received: %v", scanner.Err())
	return nil
}

func TestMonitorSSEStreamsSnapshotFirst(t *testing.T) {
	engine := newTestEngine(testConfig())
	srv := httptest.NewServer(engine)
	defer srv.Close()

	session := createSession(t, engine)
	data := readFirstSSEData(t, srv.URL+"/api/v1/sessions/"+session.ID.String()+"/monitor")

	var event struct {
		Type    string         `json:"type"`
		Session *model.Session `json:"session"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode snapshot: %v\ndata: %s", err, data)
	}
	if event.Type != "snapshot" {
		t.Fatalf("type = %s, want snapshot", event.Type)
	}
	if event.Session == nil || event.Session.ID != session.ID {
		t.Fatalf("snapshot session = %+v, want %s", event.Session, session.ID)
	}
	if event.Session.CurrentQuestion == nil || event.Session.CurrentQuestion.QuestionID != 1 {
		t.Errorf("snapshot question = %+v, want question 1", event.Session.CurrentQuestion)
	}
}

func TestMonitorSSERejectsUnknownSession(t *testing.T) {
	engine := newTestEngine(testConfig())

	w := doJSON(t, engine, http.MethodGet, "/api/v1/sessions/"+uuid.NewString()+"/monitor", nil)
	assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")

	w = doJSON(t, engine, http.MethodGet, "/api/v1/sessions/nope/monitor", nil)
	assertErrorCode(t, w, http.StatusBadRequest, "INVALID_ID")
}

func TestSystemMetricsSSE(t *testing.T) {
	engine := newTestEngine(testConfig())
	srv := httptest.NewServer(engine)
	defer srv.Close()

	data := readFirstSSEData(t, srv.URL+"/api/v1/system/metrics")

	var metrics struct {
		Goroutines   int    `json:"goroutines"`
		GoVersion    string `json:"go_version"`
		SessionsHeld int    `json:"sessions_held"`
		Uptime       string `json:"uptime"`
	}
	if err := json.Unmarshal(data, &metrics); err != nil {
		t.Fatalf("decode metrics: %v\ndata: %s", err, data)
	}
	if metrics.Goroutines <= 0 {
		t.Errorf("goroutines = %d, want positive", metrics.Goroutines)
	}
	if metrics.GoVersion == "" {
		t.Error("go version missing")
	}
	if metrics.SessionsHeld != 0 {
		t.Errorf("sessions held = %d, want 0 on a fresh store", metrics.SessionsHeld)
	}
}

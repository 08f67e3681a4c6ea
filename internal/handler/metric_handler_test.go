package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

type stubCollector struct {
	snapshot *protocol.Snapshot
	err      error
	lastTopN int
}

func (s *stubCollector) Collect(ctx context.Context, topN int) (*protocol.Snapshot, error) {
	s.lastTopN = topN
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

func testSnapshot() *protocol.Snapshot {
	return &protocol.Snapshot{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		System:    protocol.SystemInfo{Hostname: "test-host"},
		CPU:       protocol.CPUInfo{Percent: 33.3},
	}
}

func TestGetMetrics(t *testing.T) {
	collector := &stubCollector{snapshot: testSnapshot()}
	h := NewMetricHandler(zap.NewNop(), collector, time.Second)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/metrics?top=5", nil)
	rec := httptest.NewRecorder()

	if err := h.GetMetrics(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码应该是 200，实际 %d", rec.Code)
	}
	if collector.lastTopN != 5 {
		t.Errorf("top 参数应该传给采集器，实际 %d", collector.lastTopN)
	}

	var got protocol.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("响应不是合法的 JSON: %v", err)
	}
	if got.System.Hostname != "test-host" {
		t.Errorf("响应内容不对: %+v", got.System)
	}
}

func TestGetMetricsFatalError(t *testing.T) {
	collector := &stubCollector{err: errors.New("collect cpu: broken")}
	h := NewMetricHandler(zap.NewNop(), collector, time.Second)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()

	if err := h.GetMetrics(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("致命错误应该返回 500，实际 %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "collect cpu") {
		t.Errorf("错误响应应该带原因: %s", rec.Body.String())
	}
}

func TestStreamPushesSnapshots(t *testing.T) {
	collector := &stubCollector{snapshot: testSnapshot()}
	h := NewMetricHandler(zap.NewNop(), collector, 10*time.Millisecond)

	e := echo.New()
	e.GET("/ws", h.Stream)
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("WebSocket 连接失败: %v", err)
	}
	defer conn.Close()

	// 连接建立后应该立刻收到第一份快照，之后按间隔推送
	for i := 0; i < 2; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got protocol.Snapshot
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("读取第 %d 份快照失败: %v", i+1, err)
		}
		if got.System.Hostname != "test-host" {
			t.Errorf("快照内容不对: %+v", got.System)
		}
	}
}

func TestStreamSkipsFailedTick(t *testing.T) {
	collector := &stubCollector{err: errors.New("broken")}
	h := NewMetricHandler(zap.NewNop(), collector, 10*time.Millisecond)

	e := echo.New()
	e.GET("/ws", h.Stream)
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("WebSocket 连接失败: %v", err)
	}
	defer conn.Close()

	// 采集一直失败时连接保持打开，但不会有任何推送（缺拍而不是畸形数据）
	_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("采集失败时不应该推送任何数据")
	} else if websocket.IsUnexpectedCloseError(err) {
		t.Errorf("连接不应该被关闭: %v", err)
	}
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// writeTimeout 单次 WebSocket 写超时
const writeTimeout = 10 * time.Second

// Collector 指标采集引擎
// topN <= 0 时使用引擎自身的默认值
type Collector interface {
	Collect(ctx context.Context, topN int) (*protocol.Snapshot, error)
}

// MetricHandler 指标处理器
type MetricHandler struct {
	logger    *zap.Logger
	collector Collector
	interval  time.Duration
	upgrader  websocket.Upgrader
}

// NewMetricHandler 创建指标处理器
// interval 为 WebSocket 流的推送间隔
func NewMetricHandler(logger *zap.Logger, collector Collector, interval time.Duration) *MetricHandler {
	return &MetricHandler{
		logger:    logger,
		collector: collector,
		interval:  interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// 监控面板可能部署在任意来源后面
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetMetrics 查询当前系统指标
// GET /api/metrics?top=10
// 必备指标读取失败时返回明确的错误，而不是一份残缺的快照
func (h *MetricHandler) GetMetrics(c echo.Context) error {
	topN, _ := strconv.Atoi(c.QueryParam("top"))

	snapshot, err := h.collector.Collect(c.Request().Context(), topN)
	if err != nil {
		h.logger.Error("collect metrics failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, snapshot)
}

// Stream 通过 WebSocket 推送实时指标
// GET /ws
// 每个连接独立的采集循环：按固定间隔采集并推送，直到客户端断开。
// 单次采集失败只跳过这一拍，写失败则终止这一条流
func (h *MetricHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	streamID := uuid.NewString()
	logger := h.logger.With(
		zap.String("streamID", streamID),
		zap.String("remote", conn.RemoteAddr().String()),
	)
	logger.Info("metrics stream connected")

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// 读协程只用来感知客户端断开
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		snapshot, err := h.collector.Collect(ctx, 0)
		if err != nil {
			// 下一拍重试，客户端看到的是一次缺拍而不是畸形数据
			logger.Warn("collect metrics failed, skip tick", zap.Error(err))
		} else {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(snapshot); err != nil {
				logger.Info("metrics stream closed", zap.Error(err))
				return nil
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("metrics stream disconnected")
			return nil
		case <-ticker.C:
		}
	}
}

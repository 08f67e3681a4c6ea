package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// Collector 指标采集引擎
type Collector interface {
	Collect(ctx context.Context, topN int) (*protocol.Snapshot, error)
}

// Heartbeat 心跳任务
// 按固定间隔执行一次完整采集并打印摘要日志，既能确认进程存活，
// 也让没有任何客户端连接时依然有基础的运行记录
type Heartbeat struct {
	cron      *cron.Cron
	collector Collector
	logger    *zap.Logger
	interval  int
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewHeartbeat 创建心跳任务
// interval 单位为秒
func NewHeartbeat(logger *zap.Logger, collector Collector, interval int) *Heartbeat {
	return &Heartbeat{
		cron:      cron.New(cron.WithSeconds()), // 支持秒级调度
		collector: collector,
		logger:    logger,
		interval:  interval,
	}
}

// Start 启动心跳任务
func (h *Heartbeat) Start(ctx context.Context) error {
	h.ctx, h.cancel = context.WithCancel(ctx)

	spec := fmt.Sprintf("@every %ds", h.interval)
	if _, err := h.cron.AddFunc(spec, h.run); err != nil {
		return fmt.Errorf("add heartbeat job: %w", err)
	}

	h.cron.Start()
	h.logger.Info("heartbeat started", zap.Int("interval", h.interval))
	return nil
}

// Stop 停止心跳任务并等待正在执行的任务结束
func (h *Heartbeat) Stop() {
	if h.cancel != nil {
		h.cancel()
	}

	ctx := h.cron.Stop()
	<-ctx.Done()

	h.logger.Info("heartbeat stopped")
}

// run 执行一次采集并打印摘要
// 采集失败只记录日志，下个周期重试
func (h *Heartbeat) run() {
	ctx, cancel := context.WithTimeout(h.ctx, 30*time.Second)
	defer cancel()

	snapshot, err := h.collector.Collect(ctx, 0)
	if err != nil {
		h.logger.Error("heartbeat collect failed", zap.Error(err))
		return
	}

	h.logger.Info("heartbeat",
		zap.Float64("cpuPercent", snapshot.CPU.Percent),
		zap.Float64("memPercent", snapshot.Memory.Virtual.Percent),
		zap.Float64("uploadBytesPerSec", snapshot.Network.Speed.UploadBytesPerSec),
		zap.Float64("downloadBytesPerSec", snapshot.Network.Speed.DownloadBytesPerSec),
		zap.Int("processes", len(snapshot.Processes)),
	)
}

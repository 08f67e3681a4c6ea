// Package collector 实现系统指标采集引擎
// 把 CPU、内存、磁盘、网络、GPU、温度和进程信息合并成一份快照，
// 并维护计算网络速率所需的最小跨周期状态
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// defaultSectionTimeout 单个子采集器的超时上限
// 某个传感器卡住时只降级对应部分，不拖垮整次采集
const defaultSectionTimeout = 5 * time.Second

// Options 采集器配置
type Options struct {
	TopProcesses   int           // 进程排行数量，<=0 时取默认值
	SectionTimeout time.Duration // 单个子采集器超时，<=0 时取默认值
}

// SystemCollector 指标聚合器
// 除速率估算器内部的历史读数外没有任何状态，Collect 可以被
// 多个流并发调用
type SystemCollector struct {
	logger         *zap.Logger
	estimator      *SpeedEstimator
	disk           *diskReader
	gpu            GPUBackend
	topProcesses   int
	sectionTimeout time.Duration

	// 各部分的读取函数，测试里可替换
	systemFn      func(ctx context.Context) (protocol.SystemInfo, error)
	cpuFn         func(ctx context.Context) (protocol.CPUInfo, error)
	memoryFn      func(ctx context.Context) (protocol.MemoryInfo, error)
	networkFn     func(ctx context.Context) (protocol.NetworkInfo, error)
	temperatureFn func(ctx context.Context) protocol.TemperatureInfo
	processFn     func(ctx context.Context, n int) ([]protocol.ProcessInfo, error)
}

// New 创建采集器
// GPU 后端在这里探测一次，之后所有周期复用探测结果
func New(logger *zap.Logger, opts Options) *SystemCollector {
	if opts.TopProcesses <= 0 {
		opts.TopProcesses = defaultTopProcesses
	}
	if opts.SectionTimeout <= 0 {
		opts.SectionTimeout = defaultSectionTimeout
	}

	estimator := NewSpeedEstimator()
	c := &SystemCollector{
		logger:         logger,
		estimator:      estimator,
		disk:           newDiskReader(),
		gpu:            ProbeGPU(),
		topProcesses:   opts.TopProcesses,
		sectionTimeout: opts.SectionTimeout,
		systemFn:       collectSystem,
		cpuFn:          collectCPU,
		memoryFn:       collectMemory,
		temperatureFn:  collectTemperature,
		processFn:      collectProcesses,
	}
	c.networkFn = func(ctx context.Context) (protocol.NetworkInfo, error) {
		return collectNetwork(ctx, estimator)
	}

	if c.gpu != nil {
		logger.Info("gpu backend detected")
	}
	return c
}

// Collect 执行一次完整采集并返回快照
// topN 指定进程排行数量，<=0 时使用配置值。
// CPU 和内存是必备指标，读取失败时整次采集失败；其余部分
// 读取失败只降级成各自的"不可用"形态并记录日志
func (c *SystemCollector) Collect(ctx context.Context, topN int) (*protocol.Snapshot, error) {
	if topN <= 0 {
		topN = c.topProcesses
	}

	snapshot := &protocol.Snapshot{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Processes: []protocol.ProcessInfo{},
	}
	var cpuErr, memErr error

	// 各部分写入快照里互不重叠的字段，可以安全并行
	var wg conc.WaitGroup

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		system, err := c.systemFn(sctx)
		if err != nil {
			c.logger.Warn("read system info failed", zap.Error(err))
			return
		}
		snapshot.System = system
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		snapshot.CPU, cpuErr = c.cpuFn(sctx)
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		snapshot.Memory, memErr = c.memoryFn(sctx)
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		diskInfo, err := c.disk.collect(sctx)
		if err != nil {
			c.logger.Warn("read disk info failed", zap.Error(err))
			diskInfo = protocol.DiskInfo{Partitions: []protocol.PartitionInfo{}}
		}
		snapshot.Disk = diskInfo
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		network, err := c.networkFn(sctx)
		if err != nil {
			c.logger.Warn("read network info failed", zap.Error(err))
			network = protocol.NetworkInfo{Interfaces: map[string]protocol.InterfaceInfo{}}
		}
		snapshot.Network = network
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		snapshot.GPU = collectGPU(sctx, c.gpu)
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		snapshot.Temperature = c.temperatureFn(sctx)
	})

	wg.Go(func() {
		sctx, cancel := c.sectionContext(ctx)
		defer cancel()
		processes, err := c.processFn(sctx, topN)
		if err != nil {
			c.logger.Warn("read processes failed", zap.Error(err))
			return
		}
		snapshot.Processes = processes
	})

	wg.Wait()

	if cpuErr != nil {
		return nil, fmt.Errorf("collect cpu: %w", cpuErr)
	}
	if memErr != nil {
		return nil, fmt.Errorf("collect memory: %w", memErr)
	}

	return snapshot, nil
}

func (c *SystemCollector) sectionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.sectionTimeout)
}

package collector

import (
	"sync"
	"time"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// CounterSample 某一时刻读到的网络累计计数
type CounterSample struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	At          time.Time
}

// SpeedEstimator 网络速率估算器
// 保存上一次的累计计数，用相邻两次读数的差值计算每秒速率。
// 这是整个采集引擎里唯一的跨周期可变状态，用互斥锁保证
// 读取-计算-覆盖是一个原子过程。
//
// 注意：估算器是进程级单例，多个并发的流共享同一份历史，
// 因此所有消费者看到的是同一个"全网"速率视图。
type SpeedEstimator struct {
	mu   sync.Mutex
	prev *CounterSample
}

// NewSpeedEstimator 创建速率估算器
func NewSpeedEstimator() *SpeedEstimator {
	return &SpeedEstimator{}
}

// Estimate 根据当前累计计数计算上行/下行速率
//
// 策略：
//   - 首次调用没有历史，返回零速率（冷启动）
//   - 时间差 <= 0（时钟回拨或同一时间粒度内两次调用）返回零速率
//   - 计数回绕（计数源重启导致当前值小于历史值）按不连续处理，
//     该方向本周期速率为 0，不会报出巨大的负速率
//   - 无论哪种情况，历史都会被替换为当前读数
func (e *SpeedEstimator) Estimate(current CounterSample) protocol.NetworkSpeed {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.prev
	e.prev = &current

	if prev == nil {
		return protocol.NetworkSpeed{}
	}

	seconds := current.At.Sub(prev.At).Seconds()
	if seconds <= 0 {
		return protocol.NetworkSpeed{}
	}

	var upload, download float64
	if current.BytesSent >= prev.BytesSent {
		upload = float64(current.BytesSent-prev.BytesSent) / seconds
	}
	if current.BytesRecv >= prev.BytesRecv {
		download = float64(current.BytesRecv-prev.BytesRecv) / seconds
	}

	return protocol.NetworkSpeed{
		UploadBytesPerSec:   round2(upload),
		DownloadBytesPerSec: round2(download),
		UploadMbps:          round2(upload * 8 / mib),
		DownloadMbps:        round2(download * 8 / mib),
	}
}

// Prev 返回当前保存的历史读数，仅用于测试观察内部状态
func (e *SpeedEstimator) Prev() *CounterSample {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prev == nil {
		return nil
	}
	sample := *e.prev
	return &sample
}

package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// cpuSampleWindow CPU 使用率的采样窗口
// 采样会阻塞这么长时间，总体使用率由每核使用率取均值得出，
// 避免为了两个数字阻塞两个窗口
const cpuSampleWindow = 100 * time.Millisecond

// collectCPU 采集 CPU 负载、频率和核心数
// CPU 是必备指标，读取失败视为本次采集整体失败
func collectCPU(ctx context.Context) (protocol.CPUInfo, error) {
	perCore, err := cpu.PercentWithContext(ctx, cpuSampleWindow, true)
	if err != nil {
		return protocol.CPUInfo{}, fmt.Errorf("read cpu percent: %w", err)
	}

	var total float64
	percents := make([]float64, 0, len(perCore))
	for _, p := range perCore {
		p = clampPercent(round1(p))
		percents = append(percents, p)
		total += p
	}
	if len(percents) > 0 {
		total = round1(total / float64(len(percents)))
	}

	result := protocol.CPUInfo{
		Percent:        clampPercent(total),
		PercentPerCore: percents,
	}

	// 频率报告在部分平台（容器、部分 VM）不可用，缺失时保持为 0
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		// gopsutil 只上报当前频率，最小/最大频率缺失时保持 0
		result.Frequency.Current = infos[0].Mhz
		result.Frequency.Max = infos[0].Mhz
	}

	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		result.Cores.Logical = logical
	}
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		result.Cores.Physical = physical
	}

	return result, nil
}

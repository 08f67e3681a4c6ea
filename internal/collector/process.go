package collector

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// defaultTopProcesses 默认返回的进程数量
const defaultTopProcesses = 10

// collectProcesses 枚举进程并返回 CPU 占用最高的前 n 个
// 进程在枚举和读取字段之间可能退出或无权访问，这类进程直接跳过，
// 不影响整体结果
func collectProcesses(ctx context.Context, n int) ([]protocol.ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	infos := make([]protocol.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}

		info := protocol.ProcessInfo{
			PID:  p.Pid,
			Name: name,
		}

		// CPU/内存读不到时按 0 处理，进程仍然保留在列表里
		if cpuPercent, err := p.CPUPercentWithContext(ctx); err == nil {
			info.CPUPercent = cpuPercent
		}
		if memPercent, err := p.MemoryPercentWithContext(ctx); err == nil {
			info.MemoryPercent = round2(float64(memPercent))
		}
		if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 {
			info.Status = status[0]
		}

		infos = append(infos, info)
	}

	return rankProcesses(infos, n), nil
}

// rankProcesses 按 CPU 使用率降序排序并截断到前 n 个
func rankProcesses(infos []protocol.ProcessInfo, n int) []protocol.ProcessInfo {
	if n <= 0 {
		n = defaultTopProcesses
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CPUPercent > infos[j].CPUPercent
	})
	if len(infos) > n {
		infos = infos[:n]
	}
	return infos
}

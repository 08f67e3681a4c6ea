package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// collectMemory 采集物理内存和交换分区使用情况
// 内存是必备指标，读取失败视为本次采集整体失败
func collectMemory(ctx context.Context) (protocol.MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return protocol.MemoryInfo{}, fmt.Errorf("read virtual memory: %w", err)
	}

	result := protocol.MemoryInfo{
		Virtual: protocol.VirtualMemory{
			Total:       vm.Total,
			Available:   vm.Available,
			Used:        vm.Used,
			Percent:     clampPercent(round1(vm.UsedPercent)),
			TotalGB:     toGB(vm.Total),
			UsedGB:      toGB(vm.Used),
			AvailableGB: toGB(vm.Available),
		},
	}

	// 交换分区可能未配置，读取失败时保持零值而不是中断采集
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		result.Swap = protocol.SwapMemory{
			Total:   swap.Total,
			Used:    swap.Used,
			Free:    swap.Free,
			Percent: clampPercent(round1(swap.UsedPercent)),
			TotalGB: toGB(swap.Total),
			UsedGB:  toGB(swap.Used),
		}
	}

	return result, nil
}

package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// diskReader 磁盘数据源，拆成函数字段便于在测试里替换
type diskReader struct {
	partitions func(ctx context.Context) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	ioCounters func(ctx context.Context, names ...string) (map[string]disk.IOCountersStat, error)
}

func newDiskReader() *diskReader {
	return &diskReader{
		partitions: func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, false)
		},
		usage:      disk.UsageWithContext,
		ioCounters: disk.IOCountersWithContext,
	}
}

// collect 枚举挂载点并读取使用情况
// 单个挂载点读取失败（常见于无权限的特殊文件系统）只跳过该分区，
// 不影响其余分区和整体采集
func (r *diskReader) collect(ctx context.Context) (protocol.DiskInfo, error) {
	stats, err := r.partitions(ctx)
	if err != nil {
		return protocol.DiskInfo{}, fmt.Errorf("enumerate partitions: %w", err)
	}

	partitions := make([]protocol.PartitionInfo, 0, len(stats))
	for _, part := range stats {
		usage, err := r.usage(ctx, part.Mountpoint)
		if err != nil || usage == nil {
			continue
		}
		partitions = append(partitions, protocol.PartitionInfo{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
			Total:      usage.Total,
			Used:       usage.Used,
			Free:       usage.Free,
			Percent:    clampPercent(round1(usage.UsedPercent)),
			TotalGB:    toGB(usage.Total),
			UsedGB:     toGB(usage.Used),
			FreeGB:     toGB(usage.Free),
		})
	}

	result := protocol.DiskInfo{Partitions: partitions}

	// IO 计数按设备汇总成整机视图，读不到时保持零值
	if counters, err := r.ioCounters(ctx); err == nil {
		var io protocol.DiskIO
		for _, c := range counters {
			io.ReadBytes += c.ReadBytes
			io.WriteBytes += c.WriteBytes
			io.ReadCount += c.ReadCount
			io.WriteCount += c.WriteCount
		}
		io.ReadMB = toMB(io.ReadBytes)
		io.WriteMB = toMB(io.WriteBytes)
		result.IO = io
	}

	return result, nil
}

package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// collectSystem 采集主机静态信息（平台、版本、架构、主机名、启动时间）
// 这些信息在采集周期之间不变，每次直接从系统读取，不保存状态
func collectSystem(ctx context.Context) (protocol.SystemInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return protocol.SystemInfo{}, fmt.Errorf("read host info: %w", err)
	}

	system := protocol.SystemInfo{
		Platform:        info.OS,
		PlatformRelease: info.Platform,
		PlatformVersion: info.KernelVersion,
		Architecture:    info.KernelArch,
		Hostname:        info.Hostname,
		BootTime:        time.Unix(int64(info.BootTime), 0).Format(time.RFC3339),
		UptimeSeconds:   float64(info.Uptime),
	}

	// CPU 型号属于尽力而为，部分平台读不到时留空
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		system.Processor = infos[0].ModelName
	}

	return system, nil
}

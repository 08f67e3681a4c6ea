package collector

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// collectNetwork 采集网络累计计数、瞬时速率和网卡列表
// 速率计算依赖 estimator 里保存的上一次读数
func collectNetwork(ctx context.Context, estimator *SpeedEstimator) (protocol.NetworkInfo, error) {
	counters, err := gnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return protocol.NetworkInfo{}, fmt.Errorf("read net io counters: %w", err)
	}
	if len(counters) == 0 {
		return protocol.NetworkInfo{}, fmt.Errorf("net io counters: empty result")
	}

	total := counters[0]
	sample := CounterSample{
		BytesSent:   total.BytesSent,
		BytesRecv:   total.BytesRecv,
		PacketsSent: total.PacketsSent,
		PacketsRecv: total.PacketsRecv,
		At:          time.Now(),
	}

	result := protocol.NetworkInfo{
		IO: protocol.NetworkIO{
			BytesSent:   total.BytesSent,
			BytesRecv:   total.BytesRecv,
			PacketsSent: total.PacketsSent,
			PacketsRecv: total.PacketsRecv,
			BytesSentMB: toMB(total.BytesSent),
			BytesRecvMB: toMB(total.BytesRecv),
		},
		Speed:      estimator.Estimate(sample),
		Interfaces: map[string]protocol.InterfaceInfo{},
	}

	// 网卡枚举失败不影响 IO 和速率部分
	ifaces, err := gnet.InterfacesWithContext(ctx)
	if err != nil {
		return result, nil
	}

	for _, iface := range ifaces {
		info := protocol.InterfaceInfo{
			IsUp:      hasFlag(iface.Flags, "up"),
			Speed:     linkSpeed(iface.Name),
			Addresses: make([]protocol.InterfaceAddress, 0, len(iface.Addrs)),
		}
		for _, addr := range iface.Addrs {
			info.Addresses = append(info.Addresses, protocol.InterfaceAddress{
				Family:  addressFamily(addr.Addr),
				Address: addr.Addr,
			})
		}
		result.Interfaces[iface.Name] = info
	}

	return result, nil
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

// addressFamily 根据地址形态区分 IPv4/IPv6
func addressFamily(addr string) string {
	if strings.Contains(addr, ":") {
		return "ipv6"
	}
	return "ipv4"
}

// linkSpeed 读取网卡链路速率（Mbps）
// 只有 Linux 的 sysfs 暴露这个值，其他平台以及虚拟网卡返回 0
func linkSpeed(name string) int {
	data, err := os.ReadFile("/sys/class/net/" + name + "/speed")
	if err != nil {
		return 0
	}
	speed, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || speed < 0 {
		return 0
	}
	return speed
}

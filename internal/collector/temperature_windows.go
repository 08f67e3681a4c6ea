//go:build windows

package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// readThermalZones 通过 WMI 的 ACPI 热区读取 CPU 温度
// 上报单位是 0.1 开尔文，这里转换成摄氏度
func readThermalZones(ctx context.Context) ([]protocol.TemperatureEntry, error) {
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command",
		"Get-CimInstance -Namespace root/wmi -ClassName MSAcpi_ThermalZoneTemperature | Select-Object -ExpandProperty CurrentTemperature")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("query thermal zone: %w", err)
	}

	entries := make([]protocol.TemperatureEntry, 0, 1)
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		raw, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		entries = append(entries, protocol.TemperatureEntry{
			Label:   "CPU",
			Current: kelvinTenthsToCelsius(raw),
		})
	}

	return entries, nil
}

//go:build !windows

package collector

import (
	"context"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// readThermalZones 平台管理接口只在 Windows 上可用
func readThermalZones(ctx context.Context) ([]protocol.TemperatureEntry, error) {
	return nil, nil
}

package collector

import (
	"context"

	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// collectTemperature 采集温度信息
// 有两个彼此独立的来源：系统传感器接口和平台管理接口（仅 Windows）。
// 两个来源都没有读数时 Available 为 false，让消费者能区分
// "没有温度数据"和"温度为 0 度"
func collectTemperature(ctx context.Context) protocol.TemperatureInfo {
	result := protocol.TemperatureInfo{
		Sensors: map[string][]protocol.TemperatureEntry{},
	}

	if stats, err := sensors.TemperaturesWithContext(ctx); err == nil {
		for _, stat := range stats {
			if stat.SensorKey == "" {
				continue
			}
			entry := protocol.TemperatureEntry{
				Label:   stat.SensorKey,
				Current: round1(stat.Temperature),
				// 传感器没有上报阈值时这里是 0，按缺失处理
				High:     optionalTemp(stat.High),
				Critical: optionalTemp(stat.Critical),
			}
			result.Sensors[stat.SensorKey] = append(result.Sensors[stat.SensorKey], entry)
		}
	}

	// 平台管理接口作为补充来源，读取失败直接忽略
	if entries, err := readThermalZones(ctx); err == nil && len(entries) > 0 {
		result.Sensors["thermal_zone"] = entries
	}

	result.Available = len(result.Sensors) > 0
	return result
}

func optionalTemp(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	v = round1(v)
	return &v
}

// kelvinTenthsToCelsius 平台管理接口以 0.1 开尔文为单位上报温度
func kelvinTenthsToCelsius(raw float64) float64 {
	return round1(raw/10 - 273.15)
}

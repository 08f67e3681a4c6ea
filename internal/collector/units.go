package collector

import "math"

const (
	mib = 1024 * 1024
	gib = 1024 * 1024 * 1024
)

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// clampPercent 把百分比限制在 0-100
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// toGB 字节转 GB，保留两位小数
func toGB(b uint64) float64 {
	return round2(float64(b) / gib)
}

// toMB 字节转 MB，保留两位小数
func toMB(b uint64) float64 {
	return round2(float64(b) / mib)
}

package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

// GPUBackend GPU 查询后端
// GPU 是可选能力，进程启动时探测一次，之后每个周期复用探测结果
type GPUBackend interface {
	// Collect 查询所有 GPU 的状态
	Collect(ctx context.Context) ([]protocol.GPUDevice, error)
}

// ProbeGPU 探测主机上可用的 GPU 后端
// 目前支持 NVIDIA（通过 nvidia-smi），找不到后端时返回 nil
func ProbeGPU() GPUBackend {
	path, err := exec.LookPath("nvidia-smi")
	if err != nil {
		return nil
	}
	return &nvidiaBackend{path: path}
}

// collectGPU 把后端查询结果包装成快照里的 GPU 部分
// 后端缺失和查询失败都不是致命错误：前者返回 available=false，
// 后者额外带上失败原因，绝不中断整体采集
func collectGPU(ctx context.Context, backend GPUBackend) protocol.GPUInfo {
	if backend == nil {
		return protocol.GPUInfo{Available: false, GPUs: []protocol.GPUDevice{}}
	}

	devices, err := backend.Collect(ctx)
	if err != nil {
		return protocol.GPUInfo{
			Available: false,
			Error:     err.Error(),
			GPUs:      []protocol.GPUDevice{},
		}
	}

	return protocol.GPUInfo{Available: true, GPUs: devices}
}

// nvidiaBackend 通过 nvidia-smi 查询 NVIDIA GPU
type nvidiaBackend struct {
	path string
}

// nvidiaQueryFields nvidia-smi 的查询列，和 parseNvidiaSMI 的解析顺序一致
const nvidiaQueryFields = "index,name,utilization.gpu,memory.total,memory.used,memory.free,temperature.gpu,driver_version"

func (b *nvidiaBackend) Collect(ctx context.Context) ([]protocol.GPUDevice, error) {
	cmd := exec.CommandContext(ctx, b.path,
		"--query-gpu="+nvidiaQueryFields,
		"--format=csv,noheader,nounits")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("nvidia-smi: %w", err)
	}
	return parseNvidiaSMI(string(out))
}

// parseNvidiaSMI 解析 nvidia-smi 的 csv 输出，一行一块 GPU
func parseNvidiaSMI(out string) ([]protocol.GPUDevice, error) {
	devices := make([]protocol.GPUDevice, 0, 1)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 8 {
			return nil, fmt.Errorf("nvidia-smi: unexpected output %q", line)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("nvidia-smi: bad gpu index %q", fields[0])
		}

		device := protocol.GPUDevice{
			ID:          id,
			Name:        fields[1],
			Load:        round1(parseFloat(fields[2])),
			MemoryTotal: parseFloat(fields[3]),
			MemoryUsed:  parseFloat(fields[4]),
			MemoryFree:  parseFloat(fields[5]),
			Temperature: parseFloat(fields[6]),
			Driver:      fields[7],
		}
		if device.MemoryTotal > 0 {
			device.MemoryPercent = round1(device.MemoryUsed / device.MemoryTotal * 100)
		}

		devices = append(devices, device)
	}

	return devices, nil
}

// parseFloat 解析数字字段
// nvidia-smi 对不支持的指标输出 [N/A]，这里按 0 处理
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

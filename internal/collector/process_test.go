package collector

import (
	"fmt"
	"testing"

	"github.com/2wldud98/solideo-edu/internal/protocol"
)

func TestRankProcesses(t *testing.T) {
	// 50 个进程，CPU 使用率互不相同
	infos := make([]protocol.ProcessInfo, 0, 50)
	for i := 0; i < 50; i++ {
		infos = append(infos, protocol.ProcessInfo{
			PID:        int32(i + 1),
			Name:       fmt.Sprintf("proc-%d", i),
			CPUPercent: float64(i * 2),
		})
	}

	top := rankProcesses(infos, 10)

	if len(top) != 10 {
		t.Fatalf("应该返回 10 个进程，实际 %d 个", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].CPUPercent < top[i].CPUPercent {
			t.Errorf("第 %d 个进程的 CPU 使用率 %v 小于后一个 %v",
				i-1, top[i-1].CPUPercent, top[i].CPUPercent)
		}
	}
	if top[0].CPUPercent != 98 {
		t.Errorf("排行第一的 CPU 使用率应该是 98，实际 %v", top[0].CPUPercent)
	}
}

func TestRankProcessesFewerThanN(t *testing.T) {
	infos := []protocol.ProcessInfo{
		{PID: 1, CPUPercent: 3},
		{PID: 2, CPUPercent: 7},
	}

	top := rankProcesses(infos, 10)
	if len(top) != 2 {
		t.Fatalf("进程数不足 n 时应该全部返回，实际 %d 个", len(top))
	}
	if top[0].PID != 2 {
		t.Errorf("排行第一的应该是 PID 2，实际 %d", top[0].PID)
	}
}

func TestRankProcessesDefaultN(t *testing.T) {
	infos := make([]protocol.ProcessInfo, 30)
	for i := range infos {
		infos[i] = protocol.ProcessInfo{PID: int32(i + 1)}
	}

	top := rankProcesses(infos, 0)
	if len(top) != defaultTopProcesses {
		t.Errorf("n <= 0 时应该取默认值 %d，实际 %d", defaultTopProcesses, len(top))
	}
}

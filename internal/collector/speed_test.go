package collector

import (
	"sync"
	"testing"
	"time"
)

func sampleAt(sent, recv uint64, at time.Time) CounterSample {
	return CounterSample{BytesSent: sent, BytesRecv: recv, At: at}
}

func TestSpeedEstimatorColdStart(t *testing.T) {
	e := NewSpeedEstimator()
	now := time.Now()

	speed := e.Estimate(sampleAt(1000, 2000, now))
	if speed.UploadBytesPerSec != 0 || speed.DownloadBytesPerSec != 0 {
		t.Errorf("首次调用应该返回零速率，实际 up=%v down=%v",
			speed.UploadBytesPerSec, speed.DownloadBytesPerSec)
	}

	prev := e.Prev()
	if prev == nil {
		t.Fatal("首次调用后应该保存历史读数")
	}
	if prev.BytesSent != 1000 || prev.BytesRecv != 2000 {
		t.Errorf("保存的历史读数不对: %+v", prev)
	}
}

func TestSpeedEstimatorRate(t *testing.T) {
	e := NewSpeedEstimator()
	t0 := time.Now()

	e.Estimate(sampleAt(1000, 2000, t0))
	speed := e.Estimate(sampleAt(3000, 2000, t0.Add(2*time.Second)))

	if speed.UploadBytesPerSec != 1000 {
		t.Errorf("上行速率应该是 1000，实际 %v", speed.UploadBytesPerSec)
	}
	if speed.DownloadBytesPerSec != 0 {
		t.Errorf("下行速率应该是 0，实际 %v", speed.DownloadBytesPerSec)
	}
}

func TestSpeedEstimatorMbps(t *testing.T) {
	e := NewSpeedEstimator()
	t0 := time.Now()

	e.Estimate(sampleAt(0, 0, t0))
	// 1 秒内上行 1 MiB
	speed := e.Estimate(sampleAt(1024*1024, 0, t0.Add(time.Second)))

	if speed.UploadBytesPerSec != 1024*1024 {
		t.Errorf("上行速率应该是 %d，实际 %v", 1024*1024, speed.UploadBytesPerSec)
	}
	if speed.UploadMbps != 8 {
		t.Errorf("上行 Mbps 应该是 8，实际 %v", speed.UploadMbps)
	}
}

func TestSpeedEstimatorNonPositiveInterval(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
	}{
		{"时间相同", 0},
		{"时钟回拨", -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewSpeedEstimator()
			t0 := time.Now()

			e.Estimate(sampleAt(1000, 1000, t0))
			speed := e.Estimate(sampleAt(9000, 9000, t0.Add(tt.offset)))

			if speed.UploadBytesPerSec != 0 || speed.DownloadBytesPerSec != 0 {
				t.Errorf("时间差 <= 0 时应该返回零速率，实际 up=%v down=%v",
					speed.UploadBytesPerSec, speed.DownloadBytesPerSec)
			}

			// 历史仍然要被替换
			prev := e.Prev()
			if prev == nil || prev.BytesSent != 9000 {
				t.Errorf("历史读数没有被替换: %+v", prev)
			}
		})
	}
}

func TestSpeedEstimatorCounterReset(t *testing.T) {
	e := NewSpeedEstimator()
	t0 := time.Now()

	e.Estimate(sampleAt(5000, 5000, t0))
	// 计数源重启，发送方向回绕，接收方向正常
	speed := e.Estimate(sampleAt(100, 7000, t0.Add(time.Second)))

	if speed.UploadBytesPerSec != 0 {
		t.Errorf("计数回绕时上行速率应该是 0，实际 %v", speed.UploadBytesPerSec)
	}
	if speed.DownloadBytesPerSec != 2000 {
		t.Errorf("接收方向不受影响，应该是 2000，实际 %v", speed.DownloadBytesPerSec)
	}

	prev := e.Prev()
	if prev == nil || prev.BytesSent != 100 {
		t.Errorf("回绕后历史读数应该被替换为当前值: %+v", prev)
	}
}

// TestSpeedEstimatorConcurrent 并发调用下历史读数不能被交错读写破坏
// 任何时刻保存的历史都必须是某一次调用完整提交的样本
func TestSpeedEstimatorConcurrent(t *testing.T) {
	e := NewSpeedEstimator()
	base := time.Now()

	const goroutines = 8
	const rounds = 200

	// 每个样本的 BytesSent 和 BytesRecv 保持一致，
	// 如果读写交错，两个字段就可能来自不同的样本
	valid := make(map[uint64]bool)
	var mu sync.Mutex

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				v := uint64(g*rounds + i + 1)
				mu.Lock()
				valid[v] = true
				mu.Unlock()
				e.Estimate(sampleAt(v, v, base.Add(time.Duration(v)*time.Millisecond)))
			}
		}(g)
	}
	wg.Wait()

	prev := e.Prev()
	if prev == nil {
		t.Fatal("并发调用后历史读数不应该为空")
	}
	if prev.BytesSent != prev.BytesRecv {
		t.Fatalf("历史读数被交错写入破坏: sent=%d recv=%d", prev.BytesSent, prev.BytesRecv)
	}
	if !valid[prev.BytesSent] {
		t.Fatalf("历史读数不是任何一次提交的样本: %d", prev.BytesSent)
	}
}

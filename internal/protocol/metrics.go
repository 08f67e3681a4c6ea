package protocol

// Snapshot 一次完整的系统指标快照
// 每个采集周期都会重新构建，构建完成后不再修改
type Snapshot struct {
	Timestamp   string          `json:"timestamp"` // RFC3339 时间戳
	System      SystemInfo      `json:"system"`
	CPU         CPUInfo         `json:"cpu"`
	Memory      MemoryInfo      `json:"memory"`
	Disk        DiskInfo        `json:"disk"`
	Network     NetworkInfo     `json:"network"`
	GPU         GPUInfo         `json:"gpu"`
	Temperature TemperatureInfo `json:"temperature"`
	Processes   []ProcessInfo   `json:"processes"`
}

// SystemInfo 主机静态信息
type SystemInfo struct {
	Platform        string  `json:"platform"`         // 操作系统（Linux/Windows/Darwin）
	PlatformRelease string  `json:"platform_release"` // 发行版本
	PlatformVersion string  `json:"platform_version"` // 内核/系统版本
	Architecture    string  `json:"architecture"`     // 架构（x86_64 等）
	Hostname        string  `json:"hostname"`
	Processor       string  `json:"processor"` // CPU 型号
	BootTime        string  `json:"boot_time"` // 启动时间（RFC3339）
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// CPUFrequency CPU 频率（MHz），平台不支持时为 0
type CPUFrequency struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// CPUCores CPU 核心数
type CPUCores struct {
	Logical  int `json:"logical"`
	Physical int `json:"physical"`
}

// CPUInfo CPU 负载信息
type CPUInfo struct {
	Percent        float64      `json:"percent"`          // 总体使用率 0-100
	PercentPerCore []float64    `json:"percent_per_core"` // 每核使用率
	Frequency      CPUFrequency `json:"frequency"`
	Cores          CPUCores     `json:"cores"`
}

// VirtualMemory 物理内存使用情况
type VirtualMemory struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	Percent     float64 `json:"percent"`
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	AvailableGB float64 `json:"available_gb"`
}

// SwapMemory 交换分区使用情况
type SwapMemory struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
	TotalGB float64 `json:"total_gb"`
	UsedGB  float64 `json:"used_gb"`
}

// MemoryInfo 内存信息
type MemoryInfo struct {
	Virtual VirtualMemory `json:"virtual"`
	Swap    SwapMemory    `json:"swap"`
}

// PartitionInfo 单个挂载点的磁盘使用情况，每个周期重新枚举
type PartitionInfo struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Percent    float64 `json:"percent"`
	TotalGB    float64 `json:"total_gb"`
	UsedGB     float64 `json:"used_gb"`
	FreeGB     float64 `json:"free_gb"`
}

// DiskIO 磁盘 IO 累计值
type DiskIO struct {
	ReadBytes  uint64  `json:"read_bytes"`
	WriteBytes uint64  `json:"write_bytes"`
	ReadCount  uint64  `json:"read_count"`
	WriteCount uint64  `json:"write_count"`
	ReadMB     float64 `json:"read_mb"`
	WriteMB    float64 `json:"write_mb"`
}

// DiskInfo 磁盘信息
type DiskInfo struct {
	Partitions []PartitionInfo `json:"partitions"`
	IO         DiskIO          `json:"io"`
}

// NetworkIO 网络 IO 累计值（自系统启动以来）
type NetworkIO struct {
	BytesSent   uint64  `json:"bytes_sent"`
	BytesRecv   uint64  `json:"bytes_recv"`
	PacketsSent uint64  `json:"packets_sent"`
	PacketsRecv uint64  `json:"packets_recv"`
	BytesSentMB float64 `json:"bytes_sent_mb"`
	BytesRecvMB float64 `json:"bytes_recv_mb"`
}

// NetworkSpeed 网络瞬时速率，由相邻两次累计值计算得出
type NetworkSpeed struct {
	UploadBytesPerSec   float64 `json:"upload_bytes_per_sec"`
	DownloadBytesPerSec float64 `json:"download_bytes_per_sec"`
	UploadMbps          float64 `json:"upload_mbps"`
	DownloadMbps        float64 `json:"download_mbps"`
}

// InterfaceAddress 网卡地址
type InterfaceAddress struct {
	Family  string `json:"family"`
	Address string `json:"address"`
}

// InterfaceInfo 单个网卡的状态
type InterfaceInfo struct {
	IsUp      bool               `json:"is_up"`
	Speed     int                `json:"speed"` // 链路速率（Mbps），未知为 0
	Addresses []InterfaceAddress `json:"addresses"`
}

// NetworkInfo 网络信息
type NetworkInfo struct {
	IO         NetworkIO                `json:"io"`
	Speed      NetworkSpeed             `json:"speed"`
	Interfaces map[string]InterfaceInfo `json:"interfaces"`
}

// GPUDevice 单块 GPU 的状态
type GPUDevice struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Load          float64 `json:"load"`         // 使用率 0-100
	MemoryTotal   float64 `json:"memory_total"` // MB
	MemoryUsed    float64 `json:"memory_used"`  // MB
	MemoryFree    float64 `json:"memory_free"`  // MB
	MemoryPercent float64 `json:"memory_percent"`
	Temperature   float64 `json:"temperature"` // 摄氏度
	Driver        string  `json:"driver"`
}

// GPUInfo GPU 信息
// 没有 GPU 后端时 Available 为 false 且 GPUs 为空列表；
// 后端存在但查询失败时 Error 记录失败原因
type GPUInfo struct {
	Available bool        `json:"available"`
	Error     string      `json:"error,omitempty"`
	GPUs      []GPUDevice `json:"gpus"`
}

// TemperatureEntry 单个温度读数
// High/Critical 可能缺失，用指针区分"没有"和 0 度
type TemperatureEntry struct {
	Label    string   `json:"label"`
	Current  float64  `json:"current"` // 摄氏度
	High     *float64 `json:"high"`
	Critical *float64 `json:"critical"`
}

// TemperatureInfo 温度信息
// Available 为 false 表示主机上没有任何可用的温度源，区别于 0 度
type TemperatureInfo struct {
	Sensors   map[string][]TemperatureEntry `json:"sensors"`
	Available bool                          `json:"available"`
}

// ProcessInfo 单个进程的瞬时视图
// 进程可能在枚举和读取之间退出，这里只是尽力而为的快照
type ProcessInfo struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Status        string  `json:"status"`
}

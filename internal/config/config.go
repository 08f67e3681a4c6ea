package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Collector CollectorConfig `yaml:"collector"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Log       LogConfig       `yaml:"log"`

	// Path 配置文件路径，安装系统服务时写进启动参数
	Path string `yaml:"-"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr            string `yaml:"addr"`            // 监听地址
	StaticDir       string `yaml:"staticDir"`       // 前端静态文件目录（可选）
	StreamInterval  int    `yaml:"streamInterval"`  // WebSocket 推送间隔（秒）
	ShutdownTimeout int    `yaml:"shutdownTimeout"` // 优雅关闭超时（秒）
}

// CollectorConfig 采集配置
type CollectorConfig struct {
	TopProcesses   int `yaml:"topProcesses"`   // 进程排行数量
	SectionTimeout int `yaml:"sectionTimeout"` // 单个子采集器超时（秒）
}

// HeartbeatConfig 心跳日志配置
// 周期性执行一次采集并打印摘要，便于确认进程存活
type HeartbeatConfig struct {
	Enabled  bool `yaml:"enabled"`
	Interval int  `yaml:"interval"` // 间隔（秒）
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // 为空时输出到标准输出
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			StreamInterval:  1,
			ShutdownTimeout: 10,
		},
		Collector: CollectorConfig{
			TopProcesses:   10,
			SectionTimeout: 5,
		},
		Heartbeat: HeartbeatConfig{
			Enabled:  true,
			Interval: 60,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load 加载配置文件
// path 为空时直接使用默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.Path = path
	cfg.normalize()
	return cfg, nil
}

// normalize 把非法的配置值拉回默认
func (c *Config) normalize() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.StreamInterval <= 0 {
		c.Server.StreamInterval = def.Server.StreamInterval
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Collector.TopProcesses <= 0 {
		c.Collector.TopProcesses = def.Collector.TopProcesses
	}
	if c.Collector.SectionTimeout <= 0 {
		c.Collector.SectionTimeout = def.Collector.SectionTimeout
	}
	if c.Heartbeat.Interval <= 0 {
		c.Heartbeat.Interval = def.Heartbeat.Interval
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// StreamInterval 推送间隔
func (c *Config) StreamInterval() time.Duration {
	return time.Duration(c.Server.StreamInterval) * time.Second
}

// SectionTimeout 子采集器超时
func (c *Config) SectionTimeout() time.Duration {
	return time.Duration(c.Collector.SectionTimeout) * time.Second
}

// ShutdownTimeout 优雅关闭超时
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kardianos/service"
	"go.uber.org/zap"

	"github.com/2wldud98/solideo-edu/internal/collector"
	"github.com/2wldud98/solideo-edu/internal/config"
	"github.com/2wldud98/solideo-edu/internal/handler"
	"github.com/2wldud98/solideo-edu/internal/logger"
	"github.com/2wldud98/solideo-edu/internal/scheduler"
	"github.com/2wldud98/solideo-edu/internal/server"
)

// app 运行中的监控实例
type app struct {
	logger    *zap.Logger
	srv       *server.Server
	heartbeat *scheduler.Heartbeat
}

// startApp 组装并启动所有组件（服务模式和前台模式共用）
func startApp(ctx context.Context, cfg *config.Config) *app {
	log := logger.New(cfg.Log)

	coll := collector.New(log, collector.Options{
		TopProcesses:   cfg.Collector.TopProcesses,
		SectionTimeout: cfg.SectionTimeout(),
	})

	metricHandler := handler.NewMetricHandler(log, coll, cfg.StreamInterval())
	srv := server.New(log, cfg, metricHandler)

	a := &app{logger: log, srv: srv}

	if cfg.Heartbeat.Enabled {
		a.heartbeat = scheduler.NewHeartbeat(log, coll, cfg.Heartbeat.Interval)
		if err := a.heartbeat.Start(ctx); err != nil {
			log.Warn("start heartbeat failed", zap.Error(err))
			a.heartbeat = nil
		}
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server exited", zap.Error(err))
		}
	}()

	return a
}

// stop 按启动的相反顺序关闭组件
func (a *app) stop(timeout context.Context) {
	if a.heartbeat != nil {
		a.heartbeat.Stop()
	}
	if err := a.srv.Shutdown(timeout); err != nil {
		a.logger.Warn("http server shutdown failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// program 实现 service.Interface
type program struct {
	cfg    *config.Config
	app    *app
	ctx    context.Context
	cancel context.CancelFunc
}

// Start 启动服务
func (p *program) Start(s service.Service) error {
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.app = startApp(p.ctx, p.cfg)
	return nil
}

// Stop 停止服务
func (p *program) Stop(s service.Service) error {
	if p.cancel != nil {
		p.cancel()
	}
	if p.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.ShutdownTimeout())
		defer cancel()
		p.app.stop(ctx)
	}
	return nil
}

// Manager 系统服务管理器
type Manager struct {
	cfg     *config.Config
	service service.Service
}

// NewManager 创建服务管理器
func NewManager(cfg *config.Config) (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("get executable path: %w", err)
	}

	arguments := []string{"run"}
	if cfg.Path != "" {
		arguments = append(arguments, "--config", cfg.Path)
	}

	svcConfig := &service.Config{
		Name:        "sysmon",
		DisplayName: "System Resource Monitor",
		Description: "采集系统资源指标并通过 HTTP/WebSocket 对外提供",
		Arguments:   arguments,
		Executable:  execPath,
		Option: service.KeyValue{
			// Linux systemd
			"Restart":            "always",
			"RestartSec":         "10",
			"StartLimitInterval": "0",
			"KillMode":           "process",

			// Windows
			"OnFailure":    "restart",
			"ResetPeriod":  86400,
			"RestartDelay": 10000,

			// 其他 Unix (upstart/launchd)
			"KeepAlive": true,
			"RunAtLoad": true,
		},
	}

	s, err := service.New(&program{cfg: cfg}, svcConfig)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	return &Manager{cfg: cfg, service: s}, nil
}

// Install 安装服务
func (m *Manager) Install() error {
	return m.service.Install()
}

// Uninstall 卸载服务（先停止再卸载）
func (m *Manager) Uninstall() error {
	_ = m.service.Stop()
	return m.service.Uninstall()
}

// Start 启动服务
func (m *Manager) Start() error {
	return m.service.Start()
}

// Stop 停止服务
func (m *Manager) Stop() error {
	return m.service.Stop()
}

// Restart 重启服务
func (m *Manager) Restart() error {
	return m.service.Restart()
}

// Status 查看服务状态
func (m *Manager) Status() (string, error) {
	status, err := m.service.Status()
	if err != nil {
		return "", err
	}

	switch status {
	case service.StatusRunning:
		return "运行中 (Running)", nil
	case service.StatusStopped:
		return "已停止 (Stopped)", nil
	default:
		return "未知 (Unknown)", nil
	}
}

// Run 运行服务
// 在服务管理器控制下交给 kardianos 托管，前台模式则监听系统信号
func (m *Manager) Run() error {
	if !service.Interactive() {
		return m.service.Run()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := startApp(ctx, m.cfg)
	a.logger.Info("sysmon started",
		zap.String("addr", m.cfg.Server.Addr),
		zap.Int("streamInterval", m.cfg.Server.StreamInterval))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	a.logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), m.cfg.ShutdownTimeout())
	defer shutdownCancel()
	a.stop(shutdownCtx)

	return nil
}

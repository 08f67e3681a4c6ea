package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2wldud98/solideo-edu/internal/config"
	"github.com/2wldud98/solideo-edu/internal/service"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "sysmon",
		Short: "系统资源监控服务",
		Long:  "采集 CPU、内存、磁盘、网络、GPU、温度和进程指标，通过 HTTP 和 WebSocket 对外提供",
		// 不带子命令时默认前台运行
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManager(func(m *service.Manager) error { return m.Run() })
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "运行监控服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error { return m.Run() })
			},
		},
		&cobra.Command{
			Use:   "install",
			Short: "安装为系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error {
					if err := m.Install(); err != nil {
						return err
					}
					fmt.Println("服务安装成功，使用 sysmon start 启动")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "卸载系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error {
					if err := m.Uninstall(); err != nil {
						return err
					}
					fmt.Println("服务已卸载")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "start",
			Short: "启动系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error { return m.Start() })
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "停止系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error { return m.Stop() })
			},
		},
		&cobra.Command{
			Use:   "restart",
			Short: "重启系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error { return m.Restart() })
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "查看服务状态",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runManager(func(m *service.Manager) error {
					status, err := m.Status()
					if err != nil {
						return err
					}
					fmt.Println(status)
					return nil
				})
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runManager 加载配置并把服务管理器交给回调
func runManager(fn func(*service.Manager) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	manager, err := service.NewManager(cfg)
	if err != nil {
		return err
	}

	return fn(manager)
}

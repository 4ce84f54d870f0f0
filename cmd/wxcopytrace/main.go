package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/WxCopyTrace/internal/core"
	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/server"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string

	// 获取参数
	targetURL      string
	urlFile        string
	timeout        int
	waitTime       int
	headless       bool
	disableBrowser bool
	userAgent      string
	headers        []string
	outputDir      string
	noReport       bool
	jsonOutput     bool

	// 批量处理参数
	batchDelay      int
	continueOnError bool

	// Web服务参数
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "wxcopytrace [url]",
	Short: "网页版权与作者溯源分析工具",
	Long: `WxCopyTrace - 网页版权与作者溯源分析工具 (Go版本)

分析网页HTML源代码,推断页面的作者、版权方和使用的前端框架,支持:
  • 微信公众号文章的结构化信息提取(标题/发布时间/公众号)
  • 静态HTTP获取 + 无头浏览器渲染回退
  • meta标签/脚本/样式/注释/嵌入数据多区域证据提取
  • 批量URL处理与JSON报告输出
  • Web API服务模式

使用示例:
  # 分析单个微信文章
  wxcopytrace https://mp.weixin.qq.com/s/xxxxx

  # 批量分析
  wxcopytrace -f urls.txt

  # 自定义HTTP头部
  wxcopytrace https://example.com -H "Cookie: key=value"

  # 启动Web服务
  wxcopytrace serve --listen :8080

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 初始化日志系统
		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
		}

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		if verbose {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 设置信号处理(Ctrl+C优雅退出)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-sigChan
			utils.Warnf("\n收到中断信号: %v, 正在优雅关闭...", sig)
			os.Exit(0)
		}()

		// 位置参数与 --url 等价,位置参数优先
		if len(args) == 1 {
			targetURL = args[0]
		}

		// 如果没有提供任何目标,显示帮助信息
		if targetURL == "" && urlFile == "" {
			return cmd.Help()
		}

		// 验证参数
		if err := ValidateFlags(targetURL, timeout, waitTime); err != nil {
			return err
		}

		// 解析并校验自定义HTTP头部
		parsedHeaders, err := models.CliHeaders(headers).Parse()
		if err != nil {
			return err
		}
		if len(parsedHeaders) > 0 {
			if err := utils.NewHeaderValidator().Validate(parsedHeaders); err != nil {
				return fmt.Errorf("HTTP头部校验失败: %w", err)
			}
			// 日志里敏感头部值做脱敏
			utils.Infof("自定义HTTP头部: %s", utils.NewHeaderRedactor().RedactToString(parsedHeaders))
		}

		// 加载配置并合并命令行参数
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		config.MergeCLIFlags(timeout, waitTime, headless, disableBrowser, userAgent, parsedHeaders)
		if outputDir != "" {
			config.Output.BaseDir = outputDir
		}
		if noReport {
			config.Output.SaveReports = false
		}

		service := core.NewService(config)
		defer service.Close()

		// 批量处理模式
		if urlFile != "" {
			urls, err := utils.ReadURLsFromFile(urlFile)
			if err != nil {
				return fmt.Errorf("读取URL文件失败: %w", err)
			}

			batchAnalyzer := core.NewBatchAnalyzer(service, batchDelay, continueOnError)
			outcome, err := batchAnalyzer.AnalyzeBatch(urls)
			if err != nil {
				return fmt.Errorf("批量分析失败: %w", err)
			}
			if outcome.FailCount > 0 && outcome.SuccessCount == 0 {
				return fmt.Errorf("批量分析全部失败 (%d个URL)", outcome.FailCount)
			}

			utils.Info("✨ 批量分析任务完成!")
			return nil
		}

		// 单URL分析模式
		result, task := service.Analyze(targetURL)
		if result.Error != "" {
			return fmt.Errorf("分析失败: %s", result.Error)
		}

		if jsonOutput {
			data, err := result.ToJSON()
			if err != nil {
				return fmt.Errorf("序列化分析结果失败: %w", err)
			}
			fmt.Println(string(data))
		} else {
			printResult(result, task)
		}
		utils.Info("✨ 分析任务完成!")
		return nil
	},
}

// printResult 在标准输出打印人类可读的分析摘要
func printResult(result *models.AnalysisResult, task *models.AnalysisTask) {
	info := result.DevelopmentInfo

	fmt.Println("\n==================================================")
	fmt.Println("📊 溯源分析结果")
	fmt.Println("==================================================")
	fmt.Printf("🔗 目标URL: %s\n", result.URL)
	fmt.Printf("📄 HTML大小: %d 字节\n", result.HTMLSize)

	if fields, ok := result.WechatArticleInfo.(*models.StructuredFields); ok {
		fmt.Println("--------------------------------------------------")
		fmt.Printf("📰 文章标题: %s\n", fields.Title)
		fmt.Printf("🕐 发布时间: %s\n", fields.PublishTime)
		fmt.Printf("📣 公众号: %s\n", fields.AccountName)
	}

	fmt.Println("--------------------------------------------------")
	if info.PrimaryAuthor != nil {
		fmt.Printf("👤 主要作者: %s (置信度 %.1f)\n", info.PrimaryAuthor.Name, info.PrimaryAuthor.Confidence)
	} else {
		fmt.Println("👤 主要作者: 未识别")
	}
	if len(info.AllAuthors) > 0 {
		fmt.Printf("✍️  全部作者: %v\n", info.AllAuthors)
	}
	if len(info.CopyrightHolders) > 0 {
		fmt.Printf("©️  版权方: %v\n", info.CopyrightHolders)
	}
	if len(info.FrameworksUsed) > 0 {
		fmt.Printf("🔧 使用框架: %v\n", info.FrameworksUsed)
	}
	fmt.Printf("📈 整体置信度: %.2f\n", info.ConfidenceScore)
	if task != nil {
		fmt.Printf("⏱️  总耗时: %.2f秒 (浏览器渲染: %v)\n", task.Stats.Duration, task.Stats.UsedBrowser)
	}
	fmt.Println("==================================================")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动Web API服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		if listenAddr != "" {
			config.Server.Listen = listenAddr
		}

		service := core.NewService(config)
		defer service.Close()

		return server.NewServer(config, service).Run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("WxCopyTrace %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
		fmt.Println("Go实现版本 - 网页版权与作者溯源工具")
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")

	// 获取参数
	rootCmd.Flags().StringVarP(&targetURL, "url", "u", "", "目标URL (可用位置参数代替)")
	rootCmd.Flags().StringVarP(&urlFile, "url-file", "f", "", "包含URL列表的文件路径")
	rootCmd.Flags().IntVarP(&timeout, "timeout", "t", 30, "HTTP超时时间(秒)")
	rootCmd.Flags().IntVarP(&waitTime, "wait", "w", 3, "浏览器渲染等待时间(秒)")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "无头浏览器模式")
	rootCmd.Flags().BoolVar(&disableBrowser, "no-browser", false, "禁用浏览器回退,仅静态获取")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "自定义User-Agent")
	rootCmd.Flags().StringSliceVarP(&headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "报告输出目录")
	rootCmd.Flags().BoolVar(&noReport, "no-report", false, "不落盘JSON报告")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "以JSON格式输出分析结果")

	// 批量处理参数
	rootCmd.Flags().IntVar(&batchDelay, "batch-delay", 1, "批量处理URL间延迟(秒)")
	rootCmd.Flags().BoolVar(&continueOnError, "continue-on-error", true, "遇到错误继续处理")

	// Web服务参数
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "监听地址 (默认 :8080)")

	// 添加子命令
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

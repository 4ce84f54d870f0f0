package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Fetch   models.FetchConfig `mapstructure:"fetch"`
	Logging LoggingConfig      `mapstructure:"logging"`
	Output  OutputConfig       `mapstructure:"output"`
	Server  ServerConfig       `mapstructure:"server"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	BaseDir     string `mapstructure:"base_dir"`
	SaveReports bool   `mapstructure:"save_reports"`
}

// ServerConfig Web服务配置
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
	Debug  bool   `mapstructure:"debug"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configPath != "" {
		// 使用指定的配置文件
		v.SetConfigFile(configPath)
	} else {
		// 搜索默认位置
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 添加配置搜索路径
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		// 用户主目录
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wxcopytrace"))
		}
	}

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果配置文件不存在,使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在,使用默认值
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 获取配置默认值
	v.SetDefault("fetch.timeout", 30)
	v.SetDefault("fetch.wait_time", 3)
	v.SetDefault("fetch.headless", true)
	v.SetDefault("fetch.disable_browser", false)
	v.SetDefault("fetch.user_agent", models.DefaultUserAgent)

	// 日志配置默认值
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	// 输出配置默认值
	v.SetDefault("output.base_dir", "output")
	v.SetDefault("output.save_reports", true)

	// Web服务默认值
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.debug", false)
}

// GetFetchConfig 从配置中提取获取配置
func (c *Config) GetFetchConfig() models.FetchConfig {
	return c.Fetch
}

// MergeCLIFlags 合并命令行参数到配置
func (c *Config) MergeCLIFlags(
	timeout int,
	waitTime int,
	headless bool,
	disableBrowser bool,
	userAgent string,
	headers map[string]string,
) {
	// 命令行参数优先于配置文件
	if timeout > 0 {
		c.Fetch.Timeout = timeout
	}
	if waitTime >= 0 {
		c.Fetch.WaitTime = waitTime
	}
	c.Fetch.Headless = headless
	c.Fetch.DisableBrowser = disableBrowser
	if userAgent != "" {
		c.Fetch.UserAgent = userAgent
	}
	if len(headers) > 0 {
		if c.Fetch.Headers == nil {
			c.Fetch.Headers = make(map[string]string)
		}
		for name, value := range headers {
			c.Fetch.Headers[name] = value
		}
	}
}

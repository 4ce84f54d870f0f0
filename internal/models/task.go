package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"   // 待执行
	TaskStatusRunning   TaskStatus = "running"   // 执行中
	TaskStatusCompleted TaskStatus = "completed" // 已完成
	TaskStatusFailed    TaskStatus = "failed"    // 失败
)

// FetchConfig 网页获取配置
type FetchConfig struct {
	Timeout        int               `json:"timeout"`         // HTTP超时时间(秒) (默认:30)
	WaitTime       int               `json:"wait_time"`       // 浏览器渲染等待时间(秒) (默认:3)
	Headless       bool              `json:"headless"`        // 无头模式 (默认:true)
	DisableBrowser bool              `json:"disable_browser"` // 禁用浏览器回退,仅静态获取
	UserAgent      string            `json:"user_agent"`      // User-Agent
	Headers        map[string]string `json:"headers"`         // 自定义HTTP头部
}

// DefaultUserAgent 默认User-Agent(与桌面Chrome一致,微信文章页按此返回服务端渲染内容)
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Validate 验证配置
func (c *FetchConfig) Validate() error {
	if c.Timeout < 1 || c.Timeout > 300 {
		return fmt.Errorf("超时时间必须在1-300秒之间")
	}
	if c.WaitTime < 0 || c.WaitTime > 60 {
		return fmt.Errorf("等待时间必须在0-60秒之间")
	}
	return nil
}

// TaskStats 任务统计
type TaskStats struct {
	HTMLSize     int     `json:"html_size"`     // 获取到的HTML大小(字符)
	SignalCount  int     `json:"signal_count"`  // 提取到的原始证据数
	AuthorCount  int     `json:"author_count"`  // 去重后作者数
	UsedBrowser  bool    `json:"used_browser"`  // 是否使用了浏览器回退
	Duration     float64 `json:"duration"`      // 总耗时(秒)
	FetchSeconds float64 `json:"fetch_seconds"` // 获取阶段耗时(秒)
}

// AnalysisTask 分析任务
type AnalysisTask struct {
	// 基本信息
	ID          string     `json:"id"`                     // 任务唯一ID (UUID)
	TargetURL   string     `json:"target_url"`             // 目标URL
	Domain      string     `json:"domain"`                 // 解析的域名
	CreatedAt   time.Time  `json:"created_at"`             // 创建时间
	CompletedAt *time.Time `json:"completed_at,omitempty"` // 完成时间

	// 配置快照
	Config FetchConfig `json:"config"`

	// 执行状态
	Status TaskStatus `json:"status"`

	// 统计信息
	Stats TaskStats `json:"stats"`

	// 错误信息
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewAnalysisTask 创建新任务
func NewAnalysisTask(targetURL string, config FetchConfig) (*AnalysisTask, error) {
	if err := ValidateURL(targetURL); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	parsed, _ := url.Parse(targetURL)

	return &AnalysisTask{
		ID:        generateID(),
		TargetURL: targetURL,
		Domain:    parsed.Host,
		CreatedAt: time.Now(),
		Config:    config,
		Status:    TaskStatusPending,
		Stats:     TaskStats{},
	}, nil
}

// ToJSON 序列化为JSON
func (t *AnalysisTask) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// FromJSON 从JSON反序列化
func (t *AnalysisTask) FromJSON(data []byte) error {
	return json.Unmarshal(data, t)
}

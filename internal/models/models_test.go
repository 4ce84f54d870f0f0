package models

import (
	"encoding/json"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{"合法HTTPS", "https://mp.weixin.qq.com/s/abc", false},
		{"合法HTTP", "http://example.com/page", false},
		{"缺少协议", "example.com", true},
		{"非HTTP协议", "ftp://example.com", true},
		{"缺少主机名", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.expectError {
				t.Errorf("期望错误=%v, 实际错误=%v", tt.expectError, err)
			}
		})
	}
}

func TestIsWechatArticleURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"公众号文章", "https://mp.weixin.qq.com/s/abcdef", true},
		{"微信域名", "https://weixin.qq.com/xxx", true},
		{"普通网站", "https://example.com/page", false},
		{"相似域名", "https://weixin.example.com/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWechatArticleURL(tt.url); got != tt.want {
				t.Errorf("期望=%v, 实际=%v", tt.want, got)
			}
		})
	}
}

func TestCliHeaders_Parse(t *testing.T) {
	tests := []struct {
		name        string
		headers     CliHeaders
		want        map[string]string
		expectError bool
	}{
		{
			"标准格式",
			CliHeaders{"User-Agent: MyBot/1.0", "Cookie: key=value"},
			map[string]string{"User-Agent": "MyBot/1.0", "Cookie": "key=value"},
			false,
		},
		{
			"值含冒号",
			CliHeaders{"Referer: https://example.com"},
			map[string]string{"Referer": "https://example.com"},
			false,
		},
		{"缺少冒号", CliHeaders{"InvalidHeader"}, nil, true},
		{"名称为空", CliHeaders{": value"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.headers.Parse()
			if (err != nil) != tt.expectError {
				t.Fatalf("期望错误=%v, 实际错误=%v", tt.expectError, err)
			}
			if err != nil {
				return
			}
			for name, value := range tt.want {
				if got[name] != value {
					t.Errorf("头部 %s: 期望=%q, 实际=%q", name, value, got[name])
				}
			}
		})
	}
}

func TestFetchConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      FetchConfig
		expectError bool
	}{
		{"默认配置", FetchConfig{Timeout: 30, WaitTime: 3}, false},
		{"超时为零", FetchConfig{Timeout: 0, WaitTime: 3}, true},
		{"超时过大", FetchConfig{Timeout: 301, WaitTime: 3}, true},
		{"等待时间为负", FetchConfig{Timeout: 30, WaitTime: -1}, true},
		{"等待时间过大", FetchConfig{Timeout: 30, WaitTime: 61}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("期望错误=%v, 实际错误=%v", tt.expectError, err)
			}
		})
	}
}

func TestNewAnalysisTask(t *testing.T) {
	config := FetchConfig{Timeout: 30, WaitTime: 3}

	task, err := NewAnalysisTask("https://mp.weixin.qq.com/s/abc", config)
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if task.ID == "" {
		t.Error("任务ID不应为空")
	}
	if task.Domain != "mp.weixin.qq.com" {
		t.Errorf("期望域名=mp.weixin.qq.com, 实际=%s", task.Domain)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("新任务状态应为pending, 实际=%s", task.Status)
	}

	if _, err := NewAnalysisTask("not-a-url", config); err == nil {
		t.Error("无效URL应返回错误")
	}
}

func TestNewSignal_RejectsBlankValue(t *testing.T) {
	if s := NewSignal(KindAuthor, "   ", OriginMetaTag); s != nil {
		t.Errorf("空白值应返回nil, 实际=%+v", s)
	}
	if s := NewSignal(KindAuthor, " 张三 ", OriginMetaTag); s == nil || s.Value != "张三" {
		t.Errorf("应去除首尾空白, 实际=%+v", s)
	}
}

func TestAnalysisResult_ErrorShape(t *testing.T) {
	result := NewErrorResult("https://example.com/", "无法获取网页内容")

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}

	// 错误结果只保留 url / analysis_time / error 三个字段
	for _, key := range []string{"url", "analysis_time", "error"} {
		if _, exists := decoded[key]; !exists {
			t.Errorf("错误结果缺少字段: %s", key)
		}
	}
	for _, key := range []string{"html_analysis", "development_info", "wechat_article_info", "analysis_type"} {
		if _, exists := decoded[key]; exists {
			t.Errorf("错误结果不应包含字段: %s", key)
		}
	}
}

func TestStructuredFields_Sentinels(t *testing.T) {
	fields := NewStructuredFields("https://mp.weixin.qq.com/s/abc")

	if fields.Title != NotFoundTitle {
		t.Errorf("标题缺省应为哨兵值, 实际=%q", fields.Title)
	}
	if fields.PublishTime != NotFoundPublishTime {
		t.Errorf("发布时间缺省应为哨兵值, 实际=%q", fields.PublishTime)
	}
	if fields.AccountName != NotFoundAccountName {
		t.Errorf("公众号缺省应为哨兵值, 实际=%q", fields.AccountName)
	}
	if fields.OriginalURL != "https://mp.weixin.qq.com/s/abc" {
		t.Errorf("原文链接缺省应为请求URL, 实际=%q", fields.OriginalURL)
	}
}

package main

import (
	"fmt"
	"net/url"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

// ValidateURL 验证URL格式
func ValidateURL(urlStr string) error {
	return models.ValidateURL(urlStr)
}

// ValidateFlags 验证命令行标志
func ValidateFlags(targetURL string, timeout int, waitTime int) error {
	// 验证URL
	if targetURL != "" {
		if err := ValidateURL(targetURL); err != nil {
			return fmt.Errorf("无效的目标URL: %w", err)
		}
	}

	// 验证超时时间
	if timeout < 1 || timeout > 300 {
		return fmt.Errorf("超时时间必须在1-300秒之间,当前值: %d", timeout)
	}

	// 验证等待时间
	if waitTime < 0 || waitTime > 60 {
		return fmt.Errorf("等待时间必须在0-60秒之间,当前值: %d", waitTime)
	}

	return nil
}

// NormalizeURL 规范化URL
func NormalizeURL(urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}

	// 如果没有协议,默认使用https
	if parsed.Scheme == "" {
		urlStr = "https://" + urlStr
		parsed, err = url.Parse(urlStr)
		if err != nil {
			return "", err
		}
	}

	return parsed.String(), nil
}

package models

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ValidateURL 验证URL
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("无效的URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL必须是HTTP或HTTPS协议")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL必须包含主机名")
	}
	return nil
}

// 微信文章域名特征
var wechatURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`mp\.weixin\.qq\.com`),
	regexp.MustCompile(`weixin\.qq\.com`),
}

// IsWechatArticleURL 判断URL是否属于微信公众号文章模板
func IsWechatArticleURL(urlStr string) bool {
	for _, pattern := range wechatURLPatterns {
		if pattern.MatchString(urlStr) {
			return true
		}
	}
	return false
}

// CliHeaders 命令行传递的头部列表,每项格式为 "Name: Value"
type CliHeaders []string

// Parse 将字符串列表解析为头部键值对
func (ch CliHeaders) Parse() (map[string]string, error) {
	result := make(map[string]string)
	for i, s := range ch {
		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("参数 --header 第%d项格式错误: 缺少冒号分隔符,应为 'Name: Value'", i+1)
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if name == "" {
			return nil, fmt.Errorf("参数 --header 第%d项格式错误: 头部名称不能为空", i+1)
		}
		result[name] = value
	}
	return result, nil
}

// generateID 生成唯一ID
func generateID() string {
	return uuid.New().String()
}

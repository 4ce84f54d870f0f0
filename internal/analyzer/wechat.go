package analyzer

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

// 微信文章模板的结构化选择器,按优先级排列,首个非空文本命中即停
var (
	wechatTitleSelectors = []string{
		"h1#activity-name",
		".rich_media_title",
		"h1",
		"title",
	}
	wechatPublishTimeSelectors = []string{
		"#publish_time",
		".rich_media_meta_text",
		"[data-time]",
		".time",
	}
	wechatAccountSelectors = []string{
		"#js_name",
		".rich_media_meta_nickname",
		".account_nickname",
		".profile_nickname",
	}
)

// 部分模板变体只把字段渲染进页面脚本状态,选择器取不到时扫描原始文本兜底
var (
	msgTitlePattern   = regexp.MustCompile(`var msg_title = ([^;]+);`)
	nicknamePattern   = regexp.MustCompile(`var nickname = ([^;]+);`)
	htmlDecodePattern = regexp.MustCompile(`htmlDecode\(["']([^"']*)["']\)`)
	htmlCallPattern   = regexp.MustCompile(`^["'](.*)["']\.html\(false\)$`)

	// 发布时间的三级原始文本兜底,固定优先级
	createTimePattern    = regexp.MustCompile(`var createTime = ['"]([^'"]*)['"];`)
	unixTimestampPattern = regexp.MustCompile(`var publish_time = (\d{10})`)
	looseDateTimePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2})`)
)

// ExtractWechatArticle 提取微信文章的结构化字段
//
// 每个字段逐级尝试选择器与原始文本兜底,全部失败时落到
// 明确的"未找到"哨兵值,调用方无需判空
func ExtractWechatArticle(doc *Document, pageURL string) *models.StructuredFields {
	fields := models.NewStructuredFields(pageURL)
	if doc == nil {
		return fields
	}

	raw := doc.Raw()

	if title := doc.FirstText(wechatTitleSelectors); title != "" {
		fields.Title = title
	} else if title := extractScriptVariable(raw, msgTitlePattern); title != "" {
		fields.Title = title
	}

	if publishTime := doc.FirstText(wechatPublishTimeSelectors); publishTime != "" {
		fields.PublishTime = publishTime
	} else if publishTime := extractPublishTimeFallback(raw); publishTime != "" {
		fields.PublishTime = publishTime
	}

	if account := doc.FirstText(wechatAccountSelectors); account != "" {
		fields.AccountName = account
	} else if account := extractScriptVariable(raw, nicknamePattern); account != "" {
		fields.AccountName = account
	}

	// 转载页的 canonical 链接指向原文
	if canonical, exists := doc.Find(`link[rel="canonical"]`).Attr("href"); exists {
		if canonical = strings.TrimSpace(canonical); canonical != "" {
			fields.OriginalURL = canonical
		}
	}

	return fields
}

// extractScriptVariable 从脚本变量赋值中取值
//
// 赋值右侧可能是字符串字面量,也可能包了一层 htmlDecode 调用
// 或形如 '标题'.html(false) 的链式调用
func extractScriptVariable(raw string, pattern *regexp.Regexp) string {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	value := strings.TrimSpace(match[1])

	if unwrapped := htmlCallPattern.FindStringSubmatch(value); unwrapped != nil {
		value = unwrapped[1]
	} else if decoded := htmlDecodePattern.FindStringSubmatch(value); decoded != nil {
		value = decoded[1]
	} else {
		value = strings.Trim(value, `"'`)
	}

	return strings.TrimSpace(html.UnescapeString(value))
}

// extractPublishTimeFallback 发布时间的原始文本兜底链
func extractPublishTimeFallback(raw string) string {
	if match := createTimePattern.FindStringSubmatch(raw); match != nil {
		if value := strings.TrimSpace(match[1]); value != "" {
			return value
		}
	}

	// 10 位 Unix 时间戳转本地时间
	if match := unixTimestampPattern.FindStringSubmatch(raw); match != nil {
		if seconds, err := strconv.ParseInt(match[1], 10, 64); err == nil {
			return time.Unix(seconds, 0).Format(models.AnalysisTimeLayout)
		}
	}

	if match := looseDateTimePattern.FindStringSubmatch(raw); match != nil {
		return match[1]
	}

	return ""
}

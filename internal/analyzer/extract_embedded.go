package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractEmbedded 提取嵌入式结构化数据区域的证据
//
// application/ld+json脚本体解析为JSON-LD(畸形JSON静默跳过,不报错),
// 从中提取author/creator/copyrightHolder字段;另收集全文档的data-*属性名
// (只取名不取值)作为构建工具推断的独立证据
func ExtractEmbedded(doc *Document, lib *PatternLibrary) (*models.EmbeddedDataReport, models.SignalBucket) {
	report := &models.EmbeddedDataReport{
		JSONLD:         make([]json.RawMessage, 0),
		Microdata:      make([]models.MicrodataItem, 0),
		DataAttributes: make([]string, 0),
	}
	bucket := models.NewSignalBucket()

	// JSON-LD
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		body := strings.TrimSpace(sel.Text())
		if body == "" {
			return
		}

		var parsed interface{}
		if err := json.Unmarshal([]byte(body), &parsed); err != nil {
			// 畸形JSON属于区域级跳过,分析继续
			return
		}
		report.JSONLD = append(report.JSONLD, json.RawMessage(body))

		collectJSONLDSignals(parsed, bucket)
	})

	// 微数据
	doc.EachElement(func(tag string, attrs []html.Attribute) {
		for _, attr := range attrs {
			if strings.ToLower(attr.Key) == "itemscope" {
				item := models.MicrodataItem{ItemScope: attr.Val, Tag: tag}
				for _, a := range attrs {
					if strings.ToLower(a.Key) == "itemtype" {
						item.ItemType = a.Val
					}
				}
				report.Microdata = append(report.Microdata, item)
				break
			}
		}
	})

	// data-*属性名(首次出现顺序去重)
	seenDataAttrs := make(map[string]bool)
	doc.EachElement(func(tag string, attrs []html.Attribute) {
		for _, attr := range attrs {
			name := strings.ToLower(attr.Key)
			if !strings.HasPrefix(name, "data-") || seenDataAttrs[name] {
				continue
			}
			seenDataAttrs[name] = true
			report.DataAttributes = append(report.DataAttributes, name)
		}
	})

	// data-*属性名的工具指纹
	seenTools := make(map[string]bool)
	for _, name := range report.DataAttributes {
		for _, toolName := range lib.MatchLibraries(name, lib.DataAttrFingerprints) {
			if seenTools[toolName] {
				continue
			}
			seenTools[toolName] = true
			bucket.AddValue(models.KindFramework, toolName, models.OriginElementAttribute)
		}
	}

	return report, bucket
}

// collectJSONLDSignals 递归遍历JSON-LD结构提取归属字段
func collectJSONLDSignals(node interface{}, bucket models.SignalBucket) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, value := range v {
			switch strings.ToLower(key) {
			case "author", "creator":
				for _, name := range jsonLDNames(value) {
					bucket.AddValue(models.KindAuthor, name, models.OriginEmbeddedJSON)
				}
			case "copyrightholder":
				for _, name := range jsonLDNames(value) {
					bucket.AddValue(models.KindCopyright, name, models.OriginEmbeddedJSON)
				}
			default:
				collectJSONLDSignals(value, bucket)
			}
		}
	case []interface{}:
		for _, item := range v {
			collectJSONLDSignals(item, bucket)
		}
	}
}

// jsonLDNames 从JSON-LD字段值提取名称: 字符串直接取值,对象取name字段,数组逐项处理
func jsonLDNames(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case map[string]interface{}:
		if name, ok := v["name"].(string); ok {
			return []string{name}
		}
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, item := range v {
			names = append(names, jsonLDNames(item)...)
		}
		return names
	}
	return nil
}

package analyzer

import (
	"strings"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// ExtractMeta 提取meta标签区域的证据
//
// name为author/creator的content计入作者,name包含copyright的content计入版权,
// Open Graph风格的property属性按同样规则处理。没有可用content的meta标签跳过
func ExtractMeta(doc *Document) (*models.MetaTagReport, models.SignalBucket) {
	report := &models.MetaTagReport{
		MetaTags: make([]map[string]string, 0),
	}
	bucket := models.NewSignalBucket()

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		report.TotalMetaTags++

		attrs := make(map[string]string)
		for _, attr := range sel.Nodes[0].Attr {
			attrs[attr.Key] = attr.Val
		}
		if len(attrs) == 0 {
			return
		}
		report.MetaTags = append(report.MetaTags, attrs)

		content, hasContent := attrs["content"]
		if !hasContent || strings.TrimSpace(content) == "" {
			return
		}

		if name, ok := attrs["name"]; ok {
			lowerName := strings.ToLower(name)
			switch {
			case lowerName == "author" || lowerName == "creator":
				bucket.Add(attrSignal(models.KindAuthor, content, "meta", name))
			case strings.Contains(lowerName, "copyright"):
				bucket.Add(attrSignal(models.KindCopyright, content, "meta", name))
			}
		}

		if property, ok := attrs["property"]; ok {
			lowerProp := strings.ToLower(property)
			switch {
			case strings.Contains(lowerProp, "author") || strings.Contains(lowerProp, "creator"):
				bucket.Add(attrSignal(models.KindAuthor, content, "meta", property))
			case strings.Contains(lowerProp, "copyright"):
				bucket.Add(attrSignal(models.KindCopyright, content, "meta", property))
			}
		}
	})

	return report, bucket
}

// attrSignal 创建带结构定位信息的meta证据
func attrSignal(kind models.SignalKind, value string, tag string, attribute string) *models.Signal {
	s := models.NewSignal(kind, value, models.OriginMetaTag)
	if s != nil {
		s.Tag = tag
		s.Attribute = attribute
	}
	return s
}

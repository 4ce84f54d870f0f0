package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"golang.org/x/net/html"
)

// 属性名词表
var (
	// copyrightAttrNames 版权相关属性名
	copyrightAttrNames = []string{"copyright", "data-copyright", "powered-by", "data-powered-by"}

	// nameAttrNames 作者/名称相关属性名
	nameAttrNames = []string{"name", "author", "data-author", "data-name"}

	// copyrightValueMarkers 属性值中的版权标记(与属性名无关)
	copyrightValueMarkers = []string{"版权", "copyright", "©"}
)

// 通用name属性值的合理人名长度范围(按字符数)
const (
	minNameAttrLen = 3
	maxNameAttrLen = 64
)

// ExtractAttributes 提取元素属性区域的证据
//
// 每个属性独立做两项检查,可同时命中:
//  1. 属性名命中版权/作者词表(通用name属性仅在值长度处于合理人名范围时计入)
//  2. 属性值包含版权标记子串(与属性名无关)
func ExtractAttributes(doc *Document) (*models.CustomAttributeReport, models.SignalBucket) {
	report := &models.CustomAttributeReport{
		CopyrightAttributes:   make([]models.AttributeEntry, 0),
		LabelsAttributes:      make([]models.AttributeEntry, 0),
		OtherCustomAttributes: make([]models.AttributeEntry, 0),
	}
	bucket := models.NewSignalBucket()

	doc.EachElement(func(tag string, attrs []html.Attribute) {
		for _, attr := range attrs {
			name := strings.ToLower(attr.Key)
			value := attr.Val

			// 检查1a: 版权属性名
			if containsString(copyrightAttrNames, name) && strings.TrimSpace(value) != "" {
				report.CopyrightAttributes = append(report.CopyrightAttributes, models.AttributeEntry{
					Tag: tag, Attribute: attr.Key, Value: value,
				})
				bucket.Add(elementSignal(models.KindCopyright, value, tag, attr.Key))
			}

			// 检查1b: 作者/名称属性名
			// meta的name属性是关键字槽位而非人名,由meta提取器单独处理
			if containsString(nameAttrNames, name) && !(tag == "meta" && name == "name") {
				if length := utf8.RuneCountInString(value); length >= minNameAttrLen && length <= maxNameAttrLen {
					report.LabelsAttributes = append(report.LabelsAttributes, models.AttributeEntry{
						Tag: tag, Attribute: attr.Key, Value: value,
					})
					bucket.Add(elementSignal(models.KindAuthor, value, tag, attr.Key))
				}
			}

			// 检查2: 属性值包含版权标记(独立于检查1)
			lowerValue := strings.ToLower(value)
			for _, marker := range copyrightValueMarkers {
				if strings.Contains(lowerValue, marker) {
					report.OtherCustomAttributes = append(report.OtherCustomAttributes, models.AttributeEntry{
						Tag: tag, Attribute: attr.Key, Value: value,
					})
					bucket.Add(elementSignal(models.KindCopyright, value, tag, attr.Key))
					break
				}
			}
		}
	})

	return report, bucket
}

// elementSignal 创建带结构定位信息的属性证据
func elementSignal(kind models.SignalKind, value string, tag string, attribute string) *models.Signal {
	s := models.NewSignal(kind, value, models.OriginElementAttribute)
	if s != nil {
		s.Tag = tag
		s.Attribute = attribute
	}
	return s
}

// containsString 判断字符串是否在列表中
func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

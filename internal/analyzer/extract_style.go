package analyzer

import (
	"strings"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// ExtractStyle 提取样式区域的证据
//
// 与脚本提取器对称: 外部样式表引用做CSS框架指纹匹配,
// 内联<style>文本的注释块匹配版权/作者类标记
func ExtractStyle(doc *Document, lib *PatternLibrary) (*models.CSSReport, models.SignalBucket) {
	report := &models.CSSReport{
		ExternalCSSFiles: make([]string, 0),
		CSSFrameworks:    make([]string, 0),
	}
	bucket := models.NewSignalBucket()
	seenFrameworks := make(map[string]bool)

	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		report.ExternalCSSFiles = append(report.ExternalCSSFiles, href)

		for _, name := range lib.MatchLibraries(href, lib.CSSFrameworks) {
			if seenFrameworks[name] {
				continue
			}
			seenFrameworks[name] = true
			report.CSSFrameworks = append(report.CSSFrameworks, name)
			bucket.AddValue(models.KindFramework, name, models.OriginStyleExternal)
		}
	})
	report.ExternalCSSCount = len(report.ExternalCSSFiles)

	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		report.InlineCSSCount++

		css := sel.Text()
		if strings.TrimSpace(css) == "" {
			return
		}

		for _, comment := range extractCodeComments(css) {
			for _, m := range lib.ClassifyKinds(comment, models.KindCopyright, models.KindAuthor) {
				bucket.AddValue(m.Kind, m.Value, models.OriginStyleInline)
			}
		}
	})

	return report, bucket
}

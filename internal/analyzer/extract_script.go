package analyzer

import (
	"regexp"
	"strings"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// 脚本/样式内的注释块: 块注释与行首行注释
var (
	blockCommentPattern = regexp.MustCompile(`(?s)/\*(.*?)\*/`)
	lineCommentPattern  = regexp.MustCompile(`(?m)^\s*//(.*)$`)
)

// ExtractScript 提取script标签区域的证据
//
// 外部引用做库指纹匹配(提取器内去重),内联脚本提取注释块后
// 匹配版权/作者/创建类标记,另对代码整体扫描带版本号的库标识
func ExtractScript(doc *Document, lib *PatternLibrary) (*models.ScriptTagReport, models.SignalBucket) {
	report := &models.ScriptTagReport{
		ExternalScripts: make([]string, 0),
		ScriptLibraries: make([]string, 0),
	}
	bucket := models.NewSignalBucket()
	seenLibraries := make(map[string]bool)

	addLibrary := func(name string, origin models.SignalOrigin) {
		if seenLibraries[name] {
			return
		}
		seenLibraries[name] = true
		report.ScriptLibraries = append(report.ScriptLibraries, name)
		bucket.AddValue(models.KindFramework, name, origin)
	}

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		report.TotalScriptTags++

		if src, ok := sel.Attr("src"); ok && strings.TrimSpace(src) != "" {
			report.ExternalScripts = append(report.ExternalScripts, src)
			for _, name := range lib.MatchLibraries(src, lib.ScriptLibraries) {
				addLibrary(name, models.OriginScriptExternal)
			}
			return
		}

		report.InlineScriptsCount++

		code := sel.Text()
		if strings.TrimSpace(code) == "" {
			return
		}

		for _, comment := range extractCodeComments(code) {
			for _, m := range lib.ClassifyKinds(comment, models.KindCopyright, models.KindAuthor, models.KindCreation) {
				bucket.AddValue(m.Kind, m.Value, models.OriginScriptInline)
			}
		}

		for _, name := range lib.MatchVersionedLibraries(code) {
			addLibrary(name, models.OriginScriptInline)
		}
	})

	return report, bucket
}

// extractCodeComments 提取代码中的注释文本(块注释+行注释)
func extractCodeComments(code string) []string {
	comments := make([]string, 0)

	for _, groups := range blockCommentPattern.FindAllStringSubmatch(code, -1) {
		if text := strings.TrimSpace(groups[1]); text != "" {
			comments = append(comments, text)
		}
	}
	for _, groups := range lineCommentPattern.FindAllStringSubmatch(code, -1) {
		if text := strings.TrimSpace(groups[1]); text != "" {
			comments = append(comments, text)
		}
	}

	return comments
}

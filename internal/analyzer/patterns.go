package analyzer

import (
	"regexp"
	"strings"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

// MatchRule 单条匹配规则: 正则表达式 + 捕获组序号(0表示整个匹配)
type MatchRule struct {
	Pattern *regexp.Regexp
	Group   int
}

// categoryRules 某一证据类型的有序规则列表
type categoryRules struct {
	Kind  models.SignalKind
	Rules []MatchRule
}

// Fingerprint 框架/库指纹: 对小写化的引用字符串做子串匹配
type Fingerprint struct {
	Library string
	Pattern string
}

// PatternLibrary 所有提取器共用的词法模式目录
//
// 分类规则按类别有序排列,单条文本的同一处命中以首个匹配类别为准:
// 版权类规则先于作者类规则测试,同一提取器内一个字符串不会同时计入
// copyright和author两个桶
type PatternLibrary struct {
	categories []categoryRules

	// ScriptLibraries 外部脚本引用指纹
	ScriptLibraries []Fingerprint
	// CSSFrameworks 外部样式表引用指纹
	CSSFrameworks []Fingerprint
	// DataAttrFingerprints data-*属性名指纹(构建工具推断)
	DataAttrFingerprints []Fingerprint

	// versionedLibrary 内联代码中带版本号的库标识,如 "jQuery v3.5.1"
	versionedLibrary *regexp.Regexp
}

// Match 单条分类命中
type Match struct {
	Kind  models.SignalKind
	Value string
}

// NewPatternLibrary 构建默认模式目录(中英文标记)
func NewPatternLibrary() *PatternLibrary {
	return &PatternLibrary{
		categories: []categoryRules{
			{
				Kind: models.KindCopyright,
				Rules: []MatchRule{
					{regexp.MustCompile(`版权所有[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`著作权归(.+?)所有`), 1},
					{regexp.MustCompile(`本文版权归(.+?)所有`), 1},
					{regexp.MustCompile(`(?i)copyright\s*(?:©|\(c\))?\s*(?:\d{4}(?:\s*[-–]\s*\d{4})?\s*)?(?:by\s+)?([^\n,<>]+)`), 1},
					{regexp.MustCompile(`©\s*(?:\d{4}(?:\s*[-–]\s*\d{4})?\s*)?([^\n©<>]+)`), 1},
				},
			},
			{
				Kind: models.KindAuthor,
				Rules: []MatchRule{
					{regexp.MustCompile(`原创作者[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`作者[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`开发者[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`撰稿[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`编辑[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`(?i)created\s+by\s*[：:]?\s*([^\n<>]+)`), 1},
					{regexp.MustCompile(`(?i)developed\s+by\s*[：:]?\s*([^\n<>]+)`), 1},
					{regexp.MustCompile(`(?i)\bauthor\s*[：:]\s*([^\n<>]+)`), 1},
				},
			},
			{
				Kind: models.KindCreation,
				Rules: []MatchRule{
					{regexp.MustCompile(`制作[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`(?i)designed\s+by\s*[：:]?\s*([^\n<>]+)`), 1},
					{regexp.MustCompile(`(?i)powered\s+by\s*[：:]?\s*([^\n<>]+)`), 1},
					{regexp.MustCompile(`(?i)built\s+with\s+([^\n<>]+)`), 1},
				},
			},
			{
				Kind: models.KindLicense,
				Rules: []MatchRule{
					{regexp.MustCompile(`转载请注明[：:]?\s*([^\n]+)`), 1},
					{regexp.MustCompile(`许可协议[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`(?i)licensed\s+under\s+(?:the\s+)?([^\n<>]+)`), 1},
				},
			},
			{
				Kind: models.KindSource,
				Rules: []MatchRule{
					{regexp.MustCompile(`来源[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`出处[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`转载自[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`原文链接[：:]\s*([^\n]+)`), 1},
				},
			},
			{
				Kind: models.KindContact,
				Rules: []MatchRule{
					{regexp.MustCompile(`微信[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`邮箱[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`联系(?:方式)?[：:]\s*([^\n]+)`), 1},
					{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), 0},
				},
			},
		},
		ScriptLibraries: []Fingerprint{
			{"jquery", "jquery"},
			{"bootstrap", "bootstrap"},
			{"vue", "vue"},
			{"react", "react"},
			{"angular", "angular"},
			{"lodash", "lodash"},
			{"moment", "moment"},
			{"axios", "axios"},
		},
		CSSFrameworks: []Fingerprint{
			{"bootstrap", "bootstrap"},
			{"foundation", "foundation"},
			{"bulma", "bulma"},
			{"tailwind", "tailwind"},
			{"materialize", "materialize"},
		},
		DataAttrFingerprints: []Fingerprint{
			{"react", "data-react"},
			{"vue", "data-v-"},
			{"angular", "data-ng-"},
		},
		versionedLibrary: regexp.MustCompile(`(?i)\b(jquery|bootstrap|vue|react|angular|lodash|moment|axios)(?:\.js)?\s*[-/]?\s*v?(\d+\.\d+(?:\.\d+)?)`),
	}
}

// Classify 对一段文本应用全部分类规则
//
// 规则类别按固定顺序测试,同一个捕获值只计入首个命中的类别,
// 保证分类结果确定且不跨类别重复计数
func (lib *PatternLibrary) Classify(text string) []Match {
	matches := make([]Match, 0)
	seen := make(map[string]bool)

	for _, category := range lib.categories {
		for _, rule := range category.Rules {
			for _, groups := range rule.Pattern.FindAllStringSubmatch(text, -1) {
				if rule.Group >= len(groups) {
					continue
				}
				value := strings.TrimSpace(groups[rule.Group])
				if value == "" || seen[value] {
					continue
				}
				seen[value] = true
				matches = append(matches, Match{Kind: category.Kind, Value: value})
			}
		}
	}

	return matches
}

// ClassifyKinds 同Classify,但仅保留指定类型的命中
func (lib *PatternLibrary) ClassifyKinds(text string, kinds ...models.SignalKind) []Match {
	wanted := make(map[models.SignalKind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}

	matches := make([]Match, 0)
	for _, m := range lib.Classify(text) {
		if wanted[m.Kind] {
			matches = append(matches, m)
		}
	}
	return matches
}

// MatchLibraries 对引用字符串做库指纹匹配(大小写不敏感的子串匹配)
func (lib *PatternLibrary) MatchLibraries(ref string, fingerprints []Fingerprint) []string {
	lowerRef := strings.ToLower(ref)

	matched := make([]string, 0)
	for _, fp := range fingerprints {
		if strings.Contains(lowerRef, fp.Pattern) {
			matched = append(matched, fp.Library)
		}
	}
	return matched
}

// MatchVersionedLibraries 在内联代码中匹配带版本号的库标识
func (lib *PatternLibrary) MatchVersionedLibraries(code string) []string {
	matched := make([]string, 0)
	seen := make(map[string]bool)

	for _, groups := range lib.versionedLibrary.FindAllStringSubmatch(code, -1) {
		name := strings.ToLower(groups[1])
		if !seen[name] {
			seen[name] = true
			matched = append(matched, name)
		}
	}
	return matched
}

package models

import (
	"encoding/json"
	"time"
)

// AnalysisTimeLayout 分析时间的输出格式
const AnalysisTimeLayout = "2006-01-02 15:04:05"

// AnalysisType 分析类型标识(前端展示用)
const AnalysisType = "HTML源代码分析"

// MetaTagReport meta标签区域分析
type MetaTagReport struct {
	TotalMetaTags int                 `json:"total_meta_tags"`
	MetaTags      []map[string]string `json:"meta_tags"`
}

// ScriptTagReport script标签区域分析
type ScriptTagReport struct {
	TotalScriptTags    int      `json:"total_script_tags"`
	ExternalScripts    []string `json:"external_scripts"`
	InlineScriptsCount int      `json:"inline_scripts_count"`
	ScriptLibraries    []string `json:"script_libraries"`
}

// CSSReport 样式区域分析
type CSSReport struct {
	ExternalCSSCount int      `json:"external_css_count"`
	ExternalCSSFiles []string `json:"external_css_files"`
	InlineCSSCount   int      `json:"inline_css_count"`
	CSSFrameworks    []string `json:"css_frameworks"`
}

// MicrodataItem 微数据元素
type MicrodataItem struct {
	ItemType  string `json:"itemtype"`
	ItemScope string `json:"itemscope"`
	Tag       string `json:"tag"`
}

// EmbeddedDataReport 嵌入式结构化数据分析
type EmbeddedDataReport struct {
	JSONLD         []json.RawMessage `json:"json_ld"`
	Microdata      []MicrodataItem   `json:"microdata"`
	DataAttributes []string          `json:"data_attributes"`
}

// AttributeEntry 自定义属性命中记录
type AttributeEntry struct {
	Tag       string `json:"tag"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// CustomAttributeReport 自定义属性区域分析
type CustomAttributeReport struct {
	CopyrightAttributes   []AttributeEntry `json:"copyright_attributes"`
	LabelsAttributes      []AttributeEntry `json:"labels_attributes"`
	OtherCustomAttributes []AttributeEntry `json:"other_custom_attributes"`
}

// HTMLAnalysis 按区域的完整分析结果
type HTMLAnalysis struct {
	MetaTags         *MetaTagReport         `json:"meta_tags"`
	ScriptTags       *ScriptTagReport       `json:"script_tags"`
	CSSAnalysis      *CSSReport             `json:"css_analysis"`
	EmbeddedData     *EmbeddedDataReport    `json:"embedded_data"`
	CustomAttributes *CustomAttributeReport `json:"custom_attributes"`
	DevelopmentInfo  *DevelopmentInfo       `json:"development_info"`
}

// AnalysisResult 单次分析的完整输出(前端消费的稳定字段名)
// Error非空时,除URL和AnalysisTime外其他分析字段均不输出
type AnalysisResult struct {
	URL               string           `json:"url"`
	AnalysisType      string           `json:"analysis_type,omitempty"`
	HTMLAnalysis      *HTMLAnalysis    `json:"html_analysis,omitempty"`
	WechatArticleInfo interface{}      `json:"wechat_article_info,omitempty"`
	DevelopmentInfo   *DevelopmentInfo `json:"development_info,omitempty"`
	AnalysisTime      string           `json:"analysis_time"`
	HTMLSize          int              `json:"html_size,omitempty"`
	Error             string           `json:"error,omitempty"`
}

// NewErrorResult 创建错误结果(仅保留url/analysis_time/error)
func NewErrorResult(url string, errMsg string) *AnalysisResult {
	return &AnalysisResult{
		URL:          url,
		AnalysisTime: time.Now().Format(AnalysisTimeLayout),
		Error:        errMsg,
	}
}

// ToJSON 序列化为JSON
func (r *AnalysisResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON 从JSON反序列化
func (r *AnalysisResult) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}

package models

import "strings"

// SignalKind 证据类型
type SignalKind string

const (
	KindCopyright SignalKind = "copyright"        // 版权声明
	KindAuthor    SignalKind = "author"           // 作者标记
	KindCreation  SignalKind = "creation"         // 创建/制作标记
	KindLicense   SignalKind = "license"          // 许可协议
	KindFramework SignalKind = "framework"        // 框架/库指纹
	KindContact   SignalKind = "contact"          // 联系方式
	KindSource    SignalKind = "source_reference" // 来源/转载引用
)

// AllSignalKinds 所有证据类型(聚合器保证每个类型都有桶,即使为空)
var AllSignalKinds = []SignalKind{
	KindCopyright,
	KindAuthor,
	KindCreation,
	KindLicense,
	KindFramework,
	KindContact,
	KindSource,
}

// SignalOrigin 证据来源区域
type SignalOrigin string

const (
	OriginComment          SignalOrigin = "comment"           // HTML注释
	OriginMetaTag          SignalOrigin = "meta_tag"          // meta标签
	OriginScriptInline     SignalOrigin = "script_inline"     // 内联脚本
	OriginScriptExternal   SignalOrigin = "script_external"   // 外部脚本引用
	OriginStyleInline      SignalOrigin = "style_inline"      // 内联样式
	OriginStyleExternal    SignalOrigin = "style_external"    // 外部样式表引用
	OriginElementAttribute SignalOrigin = "element_attribute" // 元素属性
	OriginEmbeddedJSON     SignalOrigin = "embedded_json"     // 嵌入式JSON数据
)

// Signal 单条证据
// 提取器产出后不可变,值始终为非空的去除首尾空白字符串
type Signal struct {
	Kind   SignalKind   `json:"kind"`
	Value  string       `json:"value"`
	Origin SignalOrigin `json:"origin"`

	// 结构定位信息(仅用于追溯,不参与打分)
	Tag       string `json:"tag,omitempty"`       // 标签名
	Attribute string `json:"attribute,omitempty"` // 属性名
}

// NewSignal 创建证据,值为空白时返回nil(空值证据不允许存在)
func NewSignal(kind SignalKind, value string, origin SignalOrigin) *Signal {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &Signal{Kind: kind, Value: value, Origin: origin}
}

// SignalBucket 按类型归集的证据序列(单个提取器的输出)
type SignalBucket map[SignalKind][]Signal

// NewSignalBucket 创建空桶
func NewSignalBucket() SignalBucket {
	return make(SignalBucket)
}

// Add 追加证据,nil和空值直接忽略
func (b SignalBucket) Add(s *Signal) {
	if s == nil || s.Value == "" {
		return
	}
	b[s.Kind] = append(b[s.Kind], *s)
}

// AddValue 按值追加证据的快捷方法
func (b SignalBucket) AddValue(kind SignalKind, value string, origin SignalOrigin) {
	b.Add(NewSignal(kind, value, origin))
}

// Count 桶内证据总数
func (b SignalBucket) Count() int {
	total := 0
	for _, signals := range b {
		total += len(signals)
	}
	return total
}

// AttributionCandidate 去重后的作者/版权归属候选
type AttributionCandidate struct {
	Name            string         `json:"name"`             // 归一化后的名称
	OccurrenceCount int            `json:"occurrence_count"` // 原始证据归一化到该值的次数
	Sources         []SignalOrigin `json:"sources"`          // 出现过的来源区域(去重,按首次出现排序)
	Confidence      float64        `json:"confidence"`       // 仅主要作者携带置信度(0.6或0.8)
}

// HasSource 判断候选是否出现在指定来源
func (c *AttributionCandidate) HasSource(origin SignalOrigin) bool {
	for _, s := range c.Sources {
		if s == origin {
			return true
		}
	}
	return false
}

// DevelopmentInfo 最终的开发归属结论
type DevelopmentInfo struct {
	PrimaryAuthor    *AttributionCandidate `json:"primary_author"`    // 主要作者,无作者证据时为null
	AllAuthors       []string              `json:"all_authors"`       // 去重后的全部作者(保持首次出现顺序)
	CopyrightHolders []string              `json:"copyright_holders"` // 去重后的版权持有者
	FrameworksUsed   []string              `json:"frameworks_used"`   // 识别出的框架/库集合
	ConfidenceScore  float64               `json:"confidence_score"`  // 整体置信度 [0.0, 0.9]
}

// EmptyDevelopmentInfo 无任何证据时的结论
func EmptyDevelopmentInfo() *DevelopmentInfo {
	return &DevelopmentInfo{
		AllAuthors:       []string{},
		CopyrightHolders: []string{},
		FrameworksUsed:   []string{},
		ConfidenceScore:  0.0,
	}
}

package analyzer

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
)

// Analyzer HTML 源代码归属分析引擎
//
// 引擎本身是纯同步计算: 提取器按固定顺序依次遍历同一份不可变文档,
// 互不共享可变状态,不做任何 I/O,所有网络获取都发生在引擎之前
type Analyzer struct {
	patterns *PatternLibrary
}

// NewAnalyzer 创建分析引擎
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		patterns: NewPatternLibrary(),
	}
}

// Analyze 对一份完整的 HTML 文档执行归属分析
//
// 单个区域的解析失败只丢弃该区域的贡献,不中断整体分析;
// 任何未预期的内部异常在顶层捕获,转为带 error 字段的结果返回,
// 绝不向调用方抛出崩溃
func (a *Analyzer) Analyze(htmlContent, pageURL string) (result *models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			err := &models.UnexpectedError{Stage: "html_analysis", Err: fmt.Errorf("%v", r)}
			utils.Errorf("❌ 分析过程出现未预期异常: %v", r)
			result = models.NewErrorResult(pageURL, err.Error())
		}
	}()

	if htmlContent == "" {
		return models.NewErrorResult(pageURL, models.ErrEmptyDocument.Error())
	}

	doc, err := NewDocument(htmlContent)
	if err != nil {
		return models.NewErrorResult(pageURL, fmt.Sprintf("解析 HTML 文档失败: %v", err))
	}

	utils.Debugf("🔍 开始分析 HTML 源代码: %s (%d 字节)", pageURL, len(htmlContent))

	// 提取器固定运行顺序,聚合与主作者的首见平局判定依赖该顺序
	metaReport, metaBucket := ExtractMeta(doc)
	scriptReport, scriptBucket := ExtractScript(doc, a.patterns)
	cssReport, styleBucket := ExtractStyle(doc, a.patterns)
	attrReport, attrBucket := ExtractAttributes(doc)
	commentBucket := ExtractComments(doc, a.patterns)
	embeddedReport, embeddedBucket := ExtractEmbedded(doc, a.patterns)

	agg := Aggregate(metaBucket, scriptBucket, styleBucket, attrBucket, commentBucket, embeddedBucket)
	devInfo := Score(agg)

	utils.Debugf("📊 聚合证据 %d 条,作者 %d 位,版权方 %d 个,框架 %d 个",
		agg.RawCount, len(devInfo.AllAuthors), len(devInfo.CopyrightHolders), len(devInfo.FrameworksUsed))

	result = &models.AnalysisResult{
		URL:          pageURL,
		AnalysisType: models.AnalysisType,
		HTMLAnalysis: &models.HTMLAnalysis{
			MetaTags:         metaReport,
			ScriptTags:       scriptReport,
			CSSAnalysis:      cssReport,
			EmbeddedData:     embeddedReport,
			CustomAttributes: attrReport,
			DevelopmentInfo:  devInfo,
		},
		DevelopmentInfo: devInfo,
		AnalysisTime:    time.Now().Format(models.AnalysisTimeLayout),
		HTMLSize:        len(htmlContent),
	}

	// 微信文章模板按域名识别,非微信页面该字段输出空对象
	if models.IsWechatArticleURL(pageURL) {
		result.WechatArticleInfo = ExtractWechatArticle(doc, pageURL)
	} else {
		result.WechatArticleInfo = struct{}{}
	}

	return result
}

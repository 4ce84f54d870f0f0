package analyzer

import (
	"math"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

// 主作者置信度: 唯一作者 0.8,多个作者取首见 0.6
const (
	confidenceSingleAuthor   = 0.8
	confidenceMultipleAuthor = 0.6
)

// 各证据类别的整体置信度权重,三者之和封顶 0.9
const (
	weightAuthorEvidence    = 0.4
	weightCopyrightEvidence = 0.3
	weightFrameworkEvidence = 0.2
)

// Score 根据聚合后的证据桶计算归属结论
//
// 空聚合不报错: 主作者为空,序列全空,整体置信度 0.0
func Score(agg *Aggregation) *models.DevelopmentInfo {
	info := models.EmptyDevelopmentInfo()
	if agg == nil {
		return info
	}

	info.AllAuthors = agg.Values(models.KindAuthor)
	info.CopyrightHolders = agg.Values(models.KindCopyright)
	info.FrameworksUsed = agg.Values(models.KindFramework)

	// 主作者按聚合器的固定提取器顺序取首见候选,
	// 平局只看出现顺序,不看频次,保证结果可复现
	candidates := agg.Candidates[models.KindAuthor]
	if len(candidates) > 0 {
		primary := *candidates[0]
		if len(candidates) == 1 {
			primary.Confidence = confidenceSingleAuthor
		} else {
			primary.Confidence = confidenceMultipleAuthor
		}
		info.PrimaryAuthor = &primary
	}

	score := 0.0
	if len(info.AllAuthors) > 0 {
		score += weightAuthorEvidence
	}
	if len(info.CopyrightHolders) > 0 {
		score += weightCopyrightEvidence
	}
	if len(info.FrameworksUsed) > 0 {
		score += weightFrameworkEvidence
	}
	// 浮点累加后取两位小数,避免 0.8999999999999999 这类输出
	info.ConfidenceScore = math.Round(score*100) / 100

	return info
}

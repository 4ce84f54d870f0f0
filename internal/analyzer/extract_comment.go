package analyzer

import (
	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

// ExtractComments 提取HTML注释区域的证据
//
// 对每条非空注释体应用完整的模式目录,命中按类别归桶
// (类别判定遵循目录的固定优先级,版权先于作者)
func ExtractComments(doc *Document, lib *PatternLibrary) models.SignalBucket {
	bucket := models.NewSignalBucket()

	for _, comment := range doc.Comments() {
		for _, m := range lib.Classify(comment) {
			bucket.AddValue(m.Kind, m.Value, models.OriginComment)
		}
	}

	return bucket
}

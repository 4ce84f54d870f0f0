package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

// whitespacePattern 内部空白折叠
var whitespacePattern = regexp.MustCompile(`\s+`)

// 名称类证据的最小长度(字符数),短于该值的归一化结果丢弃
const minNameLikeLen = 2

// nameLikeKinds 按名称语义归一化的证据类型
var nameLikeKinds = map[models.SignalKind]bool{
	models.KindAuthor:    true,
	models.KindCopyright: true,
}

// Aggregation 聚合结果
//
// Buckets 保证每个证据类型都存在(零证据表现为空序列,不缺席),
// 序列内为归一化去重后的证据,保持跨提取器的首次出现顺序
type Aggregation struct {
	Buckets map[models.SignalKind][]models.Signal

	// Candidates 作者/版权类的归属候选元数据(出现次数+来源集合)
	Candidates map[models.SignalKind][]*models.AttributionCandidate

	// RawCount 归一化去重前的原始证据总数
	RawCount int
}

// Aggregate 合并各提取器的证据桶
//
// 调用方必须按固定的提取器运行顺序传入桶
// (meta → script → style → attribute → comment → embedded-data),
// 合并按此顺序保留首次出现顺序,随后逐类型归一化去重
func Aggregate(buckets ...models.SignalBucket) *Aggregation {
	agg := &Aggregation{
		Buckets:    make(map[models.SignalKind][]models.Signal),
		Candidates: make(map[models.SignalKind][]*models.AttributionCandidate),
	}

	// 每个类型的桶永远存在
	for _, kind := range models.AllSignalKinds {
		agg.Buckets[kind] = make([]models.Signal, 0)
	}

	type candidateIndex map[string]*models.AttributionCandidate
	seen := make(map[models.SignalKind]map[string]bool)
	candidates := make(map[models.SignalKind]candidateIndex)

	for _, bucket := range buckets {
		for _, kind := range models.AllSignalKinds {
			for _, signal := range bucket[kind] {
				agg.RawCount++

				value := NormalizeValue(signal.Value)
				if value == "" {
					continue
				}
				if nameLikeKinds[kind] && utf8.RuneCountInString(value) < minNameLikeLen {
					continue
				}

				// 归属候选统计在去重之前,记录原始出现次数与来源
				if nameLikeKinds[kind] {
					if candidates[kind] == nil {
						candidates[kind] = make(candidateIndex)
					}
					candidate, exists := candidates[kind][value]
					if !exists {
						candidate = &models.AttributionCandidate{Name: value, Sources: make([]models.SignalOrigin, 0)}
						candidates[kind][value] = candidate
						agg.Candidates[kind] = append(agg.Candidates[kind], candidate)
					}
					candidate.OccurrenceCount++
					if !candidate.HasSource(signal.Origin) {
						candidate.Sources = append(candidate.Sources, signal.Origin)
					}
				}

				// 完全重复丢弃,保持首见顺序
				if seen[kind] == nil {
					seen[kind] = make(map[string]bool)
				}
				if seen[kind][value] {
					continue
				}
				seen[kind][value] = true

				normalized := signal
				normalized.Value = value
				agg.Buckets[kind] = append(agg.Buckets[kind], normalized)
			}
		}
	}

	return agg
}

// NormalizeValue 证据值归一化: 去除首尾空白,折叠内部空白
func NormalizeValue(value string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(value), " ")
}

// Values 取某类型桶中的证据值序列
func (a *Aggregation) Values(kind models.SignalKind) []string {
	signals := a.Buckets[kind]
	values := make([]string, 0, len(signals))
	for _, s := range signals {
		values = append(values, s.Value)
	}
	return values
}

package analyzer

import (
	"math"
	"testing"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_SingleAuthor(t *testing.T) {
	agg := Aggregate(bucketWith(models.KindAuthor, models.OriginMetaTag, "Jane Doe"))
	info := Score(agg)

	if info.PrimaryAuthor == nil {
		t.Fatal("唯一作者时主作者不应为空")
	}
	if info.PrimaryAuthor.Name != "Jane Doe" {
		t.Errorf("期望主作者=Jane Doe, 实际=%s", info.PrimaryAuthor.Name)
	}
	if info.PrimaryAuthor.Confidence != 0.8 {
		t.Errorf("唯一作者的置信度应为0.8, 实际=%v", info.PrimaryAuthor.Confidence)
	}
	if info.ConfidenceScore != 0.4 {
		t.Errorf("仅有作者证据时整体置信度应为0.4, 实际=%v", info.ConfidenceScore)
	}
}

func TestScore_MultipleAuthors_FirstEncounteredWins(t *testing.T) {
	// 多个作者时取首见者,平局只看出现顺序不看频次
	metaBucket := bucketWith(models.KindAuthor, models.OriginMetaTag, "张三")
	commentBucket := bucketWith(models.KindAuthor, models.OriginComment, "李四", "李四", "李四")

	info := Score(Aggregate(metaBucket, commentBucket))

	if info.PrimaryAuthor == nil {
		t.Fatal("存在作者证据时主作者不应为空")
	}
	if info.PrimaryAuthor.Name != "张三" {
		t.Errorf("期望首见作者 张三 当选, 实际=%s", info.PrimaryAuthor.Name)
	}
	if info.PrimaryAuthor.Confidence != 0.6 {
		t.Errorf("多作者时主作者置信度应为0.6, 实际=%v", info.PrimaryAuthor.Confidence)
	}
}

func TestScore_WeightCombination(t *testing.T) {
	tests := []struct {
		name      string
		buckets   []models.SignalBucket
		wantScore float64
	}{
		{
			"仅作者",
			[]models.SignalBucket{bucketWith(models.KindAuthor, models.OriginMetaTag, "张三")},
			0.4,
		},
		{
			"作者加版权",
			[]models.SignalBucket{
				bucketWith(models.KindAuthor, models.OriginMetaTag, "张三"),
				bucketWith(models.KindCopyright, models.OriginComment, "Acme Corp"),
			},
			0.7,
		},
		{
			"三类证据齐全",
			[]models.SignalBucket{
				bucketWith(models.KindAuthor, models.OriginMetaTag, "张三"),
				bucketWith(models.KindCopyright, models.OriginComment, "Acme Corp"),
				bucketWith(models.KindFramework, models.OriginScriptExternal, "jquery"),
			},
			0.9,
		},
		{
			"仅框架",
			[]models.SignalBucket{bucketWith(models.KindFramework, models.OriginScriptExternal, "vue")},
			0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Score(Aggregate(tt.buckets...))
			if !approxEqual(info.ConfidenceScore, tt.wantScore) {
				t.Errorf("期望整体置信度=%v, 实际=%v", tt.wantScore, info.ConfidenceScore)
			}
			if info.ConfidenceScore < 0.0 || info.ConfidenceScore > 0.9+1e-9 {
				t.Errorf("整体置信度越界: %v", info.ConfidenceScore)
			}
		})
	}
}

func TestScore_EmptyAggregation(t *testing.T) {
	info := Score(Aggregate())

	if info.PrimaryAuthor != nil {
		t.Errorf("空聚合的主作者应为空, 实际=%+v", info.PrimaryAuthor)
	}
	if len(info.AllAuthors) != 0 || len(info.CopyrightHolders) != 0 || len(info.FrameworksUsed) != 0 {
		t.Errorf("空聚合的各序列应为空, 实际=%+v", info)
	}
	if info.ConfidenceScore != 0.0 {
		t.Errorf("空聚合的整体置信度应为0.0, 实际=%v", info.ConfidenceScore)
	}
}

func TestScore_NilAggregation(t *testing.T) {
	info := Score(nil)
	if info == nil || info.PrimaryAuthor != nil || info.ConfidenceScore != 0.0 {
		t.Errorf("空入参应返回空结论, 实际=%+v", info)
	}
}

func TestScore_PrimaryAuthorNullIffNoAuthors(t *testing.T) {
	// 主作者为空当且仅当作者序列为空
	withAuthor := Score(Aggregate(bucketWith(models.KindAuthor, models.OriginMetaTag, "张三")))
	if withAuthor.PrimaryAuthor == nil {
		t.Error("作者序列非空时主作者不应为空")
	}

	withoutAuthor := Score(Aggregate(bucketWith(models.KindCopyright, models.OriginComment, "Acme Corp")))
	if withoutAuthor.PrimaryAuthor != nil {
		t.Error("作者序列为空时主作者应为空")
	}
}

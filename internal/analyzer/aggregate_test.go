package analyzer

import (
	"testing"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
)

func bucketWith(kind models.SignalKind, origin models.SignalOrigin, values ...string) models.SignalBucket {
	bucket := models.NewSignalBucket()
	for _, v := range values {
		bucket.AddValue(kind, v, origin)
	}
	return bucket
}

func TestAggregate_DedupIdempotence(t *testing.T) {
	// 同一个归一化值出现两次,输出序列中只保留一条
	bucket := bucketWith(models.KindAuthor, models.OriginMetaTag, "张三", "张三")
	agg := Aggregate(bucket)

	authors := agg.Values(models.KindAuthor)
	if len(authors) != 1 || authors[0] != "张三" {
		t.Errorf("期望去重后仅1条作者证据, 实际=%v", authors)
	}

	// 去重前的出现次数保留在候选元数据中
	candidates := agg.Candidates[models.KindAuthor]
	if len(candidates) != 1 || candidates[0].OccurrenceCount != 2 {
		t.Fatalf("期望候选出现次数=2, 实际=%v", candidates)
	}
}

func TestAggregate_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"首尾空白", "  张三  ", "张三"},
		{"内部空白折叠", "Acme \t\n Corp", "Acme Corp"},
		{"混合空白", " John   Smith ", "John Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeValue(tt.value); got != tt.want {
				t.Errorf("期望=%q, 实际=%q", tt.want, got)
			}
		})
	}
}

func TestAggregate_DropsShortNameLikeValues(t *testing.T) {
	bucket := models.NewSignalBucket()
	bucket.AddValue(models.KindAuthor, "王", models.OriginMetaTag)       // 单字符,丢弃
	bucket.AddValue(models.KindCopyright, "A", models.OriginComment)   // 单字符,丢弃
	bucket.AddValue(models.KindFramework, "x", models.OriginScriptExternal) // 框架类不受长度限制

	agg := Aggregate(bucket)

	if got := agg.Values(models.KindAuthor); len(got) != 0 {
		t.Errorf("过短的作者证据应被丢弃, 实际=%v", got)
	}
	if got := agg.Values(models.KindCopyright); len(got) != 0 {
		t.Errorf("过短的版权证据应被丢弃, 实际=%v", got)
	}
	if got := agg.Values(models.KindFramework); len(got) != 1 {
		t.Errorf("框架证据不应受名称长度限制, 实际=%v", got)
	}
}

func TestAggregate_AllKindsAlwaysPresent(t *testing.T) {
	agg := Aggregate()

	for _, kind := range models.AllSignalKinds {
		signals, exists := agg.Buckets[kind]
		if !exists {
			t.Errorf("证据类型 %s 缺席, 应表现为空序列", kind)
			continue
		}
		if len(signals) != 0 {
			t.Errorf("空聚合的 %s 桶应为空, 实际=%v", kind, signals)
		}
	}
}

func TestAggregate_PreservesFirstSeenOrder(t *testing.T) {
	// 桶按提取器的固定顺序传入,跨桶保持首见顺序
	metaBucket := bucketWith(models.KindAuthor, models.OriginMetaTag, "张三")
	commentBucket := bucketWith(models.KindAuthor, models.OriginComment, "李四", "张三")

	agg := Aggregate(metaBucket, commentBucket)

	authors := agg.Values(models.KindAuthor)
	if len(authors) != 2 || authors[0] != "张三" || authors[1] != "李四" {
		t.Errorf("期望按首见顺序=[张三 李四], 实际=%v", authors)
	}

	// 来源集合随候选累积
	candidates := agg.Candidates[models.KindAuthor]
	if len(candidates) != 2 {
		t.Fatalf("期望2个候选, 实际=%d", len(candidates))
	}
	first := candidates[0]
	if first.Name != "张三" || first.OccurrenceCount != 2 || len(first.Sources) != 2 {
		t.Errorf("期望首候选 张三 出现2次/来源2个, 实际=%+v", first)
	}
}

func TestAggregate_RawCount(t *testing.T) {
	bucket := bucketWith(models.KindAuthor, models.OriginMetaTag, "张三", "张三", "李四")
	agg := Aggregate(bucket)

	if agg.RawCount != 3 {
		t.Errorf("期望原始证据计数=3, 实际=%d", agg.RawCount)
	}
	if authors := agg.Values(models.KindAuthor); len(authors) != 2 {
		t.Errorf("期望去重后2条作者证据, 实际=%v", authors)
	}
}

package core

import (
	"os"
	"path/filepath"
	"testing"
)

func newBatchTestService(t *testing.T, saveReports bool) *Service {
	t.Helper()
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	config.Output.BaseDir = t.TempDir()
	config.Output.SaveReports = saveReports
	return NewService(config)
}

func TestAnalyzeBatch_SummaryHonorsSaveReports(t *testing.T) {
	// 无效URL在创建任务阶段即失败,不触发任何网络获取
	urls := []string{"not-a-url"}

	tests := []struct {
		name        string
		saveReports bool
		wantFile    bool
	}{
		{"落盘开启时生成汇总", true, true},
		{"落盘关闭时不生成汇总", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newBatchTestService(t, tt.saveReports)
			defer service.Close()

			batchAnalyzer := NewBatchAnalyzer(service, 0, true)
			outcome, err := batchAnalyzer.AnalyzeBatch(urls)
			if err != nil {
				t.Fatalf("批量分析失败: %v", err)
			}
			if outcome.FailCount != 1 || outcome.SuccessCount != 0 {
				t.Fatalf("期望全部失败, 实际=%+v", outcome)
			}

			summaryPath := filepath.Join(service.config.Output.BaseDir, "batch_summary.json")
			_, statErr := os.Stat(summaryPath)
			exists := statErr == nil
			if exists != tt.wantFile {
				t.Errorf("汇总报告存在=%v, 期望=%v", exists, tt.wantFile)
			}
		})
	}
}

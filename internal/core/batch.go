package core

import (
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
)

// BatchAnalyzer 批量分析器
type BatchAnalyzer struct {
	service       *Service
	batchDelay    time.Duration
	continueOnErr bool
}

// BatchResult 单个URL的批量分析结果
type BatchResult struct {
	URL         string
	Success     bool
	Result      *models.AnalysisResult
	Stats       models.TaskStats
	ProcessedAt time.Time
	Duration    float64
}

// BatchOutcome 批量分析摘要
type BatchOutcome struct {
	TotalURLs     int
	SuccessCount  int
	FailCount     int
	TotalDuration float64
	Results       []BatchResult
}

// NewBatchAnalyzer 创建批量分析器
func NewBatchAnalyzer(service *Service, batchDelay int, continueOnErr bool) *BatchAnalyzer {
	return &BatchAnalyzer{
		service:       service,
		batchDelay:    time.Duration(batchDelay) * time.Second,
		continueOnErr: continueOnErr,
	}
}

// AnalyzeBatch 批量分析URL列表
func (ba *BatchAnalyzer) AnalyzeBatch(urls []string) (*BatchOutcome, error) {
	utils.Infof("🚀 开始批量分析: %d个URL", len(urls))

	outcome := &BatchOutcome{
		TotalURLs: len(urls),
		Results:   make([]BatchResult, 0, len(urls)),
	}

	startTime := time.Now()
	bar := utils.NewProgressBar(len(urls), "批量分析进度")

	for i, targetURL := range urls {
		utils.Infof("\n==================== [%d/%d] ====================", i+1, len(urls))
		utils.Infof("目标URL: %s", targetURL)

		result := ba.analyzeSingleURL(targetURL)
		outcome.Results = append(outcome.Results, result)
		_ = bar.Add(1)

		if result.Success {
			outcome.SuccessCount++
		} else {
			outcome.FailCount++
			utils.Errorf("❌ 分析失败: %s", result.Result.Error)

			// 如果不继续处理错误,则停止
			if !ba.continueOnErr {
				utils.Warn("批量分析中止 (--continue-on-error=false)")
				break
			}
		}

		// 批量延迟(最后一个URL不需要延迟)
		if i < len(urls)-1 && ba.batchDelay > 0 {
			utils.Debugf("等待 %.0f 秒后处理下一个URL...", ba.batchDelay.Seconds())
			time.Sleep(ba.batchDelay)
		}
	}

	outcome.TotalDuration = time.Since(startTime).Seconds()

	ba.saveSummary(outcome, startTime)
	ba.printSummary(outcome)

	return outcome, nil
}

// analyzeSingleURL 分析单个URL
func (ba *BatchAnalyzer) analyzeSingleURL(targetURL string) BatchResult {
	batchResult := BatchResult{
		URL:         targetURL,
		ProcessedAt: time.Now(),
	}

	startTime := time.Now()

	result, task := ba.service.Analyze(targetURL)
	batchResult.Result = result
	batchResult.Success = result.Error == ""
	batchResult.Duration = time.Since(startTime).Seconds()
	if task != nil {
		batchResult.Stats = task.Stats
	}

	return batchResult
}

// saveSummary 落盘批量汇总报告
// 与单URL报告遵循同一落盘开关
func (ba *BatchAnalyzer) saveSummary(outcome *BatchOutcome, startTime time.Time) {
	if !ba.service.config.Output.SaveReports {
		return
	}

	failedURLs := make([]string, 0)
	for _, r := range outcome.Results {
		if !r.Success {
			failedURLs = append(failedURLs, r.URL)
		}
	}

	summary := &utils.BatchSummary{
		TotalURLs:    outcome.TotalURLs,
		SuccessCount: outcome.SuccessCount,
		FailedCount:  outcome.FailCount,
		FailedURLs:   failedURLs,
		StartTime:    startTime,
		EndTime:      time.Now(),
		Duration:     outcome.TotalDuration,
	}

	if _, err := ba.service.reporter.SaveBatchSummary(summary); err != nil {
		utils.Warnf("保存批量汇总报告失败: %v", err)
	}
}

// printSummary 打印批量分析摘要
func (ba *BatchAnalyzer) printSummary(outcome *BatchOutcome) {
	utils.Info("\n==================================================")
	utils.Info("📊 批量分析摘要")
	utils.Info("==================================================")
	utils.Infof("总URL数: %d", outcome.TotalURLs)
	utils.Infof("✅ 成功: %d", outcome.SuccessCount)
	utils.Infof("❌ 失败: %d", outcome.FailCount)
	utils.Infof("⏱️  总耗时: %.2f秒", outcome.TotalDuration)
	utils.Info("==================================================")

	// 显示失败的URL
	if outcome.FailCount > 0 {
		utils.Warn("\n失败的URL:")
		for _, result := range outcome.Results {
			if !result.Success {
				utils.Warnf("  - %s: %s", result.URL, result.Result.Error)
			}
		}
	}
}

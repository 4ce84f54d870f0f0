package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Reporter 分析报告生成器
type Reporter struct {
	outputDir string
}

// NewReporter 创建报告生成器
func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// SaveResult 保存单次分析结果
//
// 路径格式: output/{domain}/reports/analysis_{taskID}.json
func (r *Reporter) SaveResult(task *models.AnalysisTask, result *models.AnalysisResult) (string, error) {
	reportsDir := filepath.Join(r.outputDir, task.Domain, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("创建报告目录失败: %w", err)
	}

	filename := fmt.Sprintf("analysis_%s.json", task.ID)
	reportPath := filepath.Join(reportsDir, filename)

	jsonData, err := result.ToJSON()
	if err != nil {
		return "", fmt.Errorf("序列化分析结果失败: %w", err)
	}

	if err := os.WriteFile(reportPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("写入报告文件失败: %w", err)
	}

	Infof("✅ 报告已生成: %s", reportPath)
	return reportPath, nil
}

// BatchSummary 批量分析汇总
type BatchSummary struct {
	TotalURLs    int       `json:"total_urls"`
	SuccessCount int       `json:"success_count"`
	FailedCount  int       `json:"failed_count"`
	FailedURLs   []string  `json:"failed_urls"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     float64   `json:"duration_seconds"`
}

// SaveBatchSummary 保存批量分析汇总报告
func (r *Reporter) SaveBatchSummary(summary *BatchSummary) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	reportPath := filepath.Join(r.outputDir, "batch_summary.json")

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化汇总报告失败: %w", err)
	}

	if err := os.WriteFile(reportPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("写入汇总报告失败: %w", err)
	}

	Infof("✅ 批量汇总报告已生成: %s", reportPath)
	return reportPath, nil
}

// NewProgressBar 创建进度条
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

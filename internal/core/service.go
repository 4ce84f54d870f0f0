package core

import (
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/analyzer"
	"github.com/RecoveryAshes/WxCopyTrace/internal/fetch"
	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
)

// Service 分析服务协调器
//
// 串联 验证URL → 获取HTML → 归属分析 → 报告落盘 的完整流程,
// 同一个Service可被CLI与Web服务复用
type Service struct {
	config   *Config
	fetcher  *fetch.Fetcher
	analyzer *analyzer.Analyzer
	reporter *utils.Reporter
}

// NewService 创建分析服务
func NewService(config *Config) *Service {
	return &Service{
		config:   config,
		fetcher:  fetch.NewFetcher(config.Fetch),
		analyzer: analyzer.NewAnalyzer(),
		reporter: utils.NewReporter(config.Output.BaseDir),
	}
}

// Analyze 执行单个URL的完整分析
//
// 获取失败或内部异常不向外抛出,统一转为带error字段的结果
func (s *Service) Analyze(targetURL string) (*models.AnalysisResult, *models.AnalysisTask) {
	startTime := time.Now()

	task, err := models.NewAnalysisTask(targetURL, s.config.Fetch)
	if err != nil {
		utils.Errorf("❌ 创建分析任务失败 [%s]: %v", targetURL, err)
		return models.NewErrorResult(targetURL, err.Error()), nil
	}

	task.Status = models.TaskStatusRunning
	utils.Infof("🚀 开始分析任务: %s", targetURL)
	utils.Infof("任务ID: %s", task.ID)
	utils.Infof("域名: %s", task.Domain)

	fetchStart := time.Now()
	html, usedBrowser, err := s.fetcher.Fetch(targetURL)
	task.Stats.FetchSeconds = time.Since(fetchStart).Seconds()
	task.Stats.UsedBrowser = usedBrowser

	if err != nil {
		// 没拿到文档就不做任何部分分析,整体短路为错误结果
		task.Status = models.TaskStatusFailed
		task.ErrorMessage = err.Error()
		utils.Errorf("❌ 获取网页内容失败 [%s]: %v", targetURL, err)
		return models.NewErrorResult(targetURL, err.Error()), task
	}

	result := s.analyzer.Analyze(html, targetURL)

	task.Stats.HTMLSize = len(html)
	task.Stats.Duration = time.Since(startTime).Seconds()
	if result.Error != "" {
		task.Status = models.TaskStatusFailed
		task.ErrorMessage = result.Error
	} else {
		task.Status = models.TaskStatusCompleted
		if result.DevelopmentInfo != nil {
			task.Stats.AuthorCount = len(result.DevelopmentInfo.AllAuthors)
		}
	}
	completedAt := time.Now()
	task.CompletedAt = &completedAt

	if s.config.Output.SaveReports && result.Error == "" {
		if _, saveErr := s.reporter.SaveResult(task, result); saveErr != nil {
			utils.Warnf("生成报告失败: %v", saveErr)
		}
	}

	s.logSummary(result, task)
	return result, task
}

// Close 释放服务持有的资源(浏览器实例)
func (s *Service) Close() {
	s.fetcher.Close()
}

// logSummary 输出人类可读的分析摘要
func (s *Service) logSummary(result *models.AnalysisResult, task *models.AnalysisTask) {
	if result.Error != "" {
		utils.Infof("❌ 分析失败: %s", result.Error)
		return
	}

	info := result.DevelopmentInfo
	utils.Infof("✅ 分析完成 (耗时 %.2f 秒, HTML %d 字节)", task.Stats.Duration, task.Stats.HTMLSize)
	if info.PrimaryAuthor != nil {
		utils.Infof("👤 主要作者: %s (置信度 %.1f)", info.PrimaryAuthor.Name, info.PrimaryAuthor.Confidence)
	} else {
		utils.Infof("👤 未识别出作者")
	}
	if len(info.CopyrightHolders) > 0 {
		utils.Infof("©️  版权方: %v", info.CopyrightHolders)
	}
	if len(info.FrameworksUsed) > 0 {
		utils.Infof("🔧 使用框架: %v", info.FrameworksUsed)
	}
	utils.Infof("📊 整体置信度: %.2f", info.ConfidenceScore)
}

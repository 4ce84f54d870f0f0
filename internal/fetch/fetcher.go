package fetch

import (
	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
)

// Fetcher 网页内容获取器
//
// 先走静态HTTP获取,内容不完整或命中拦截页时退回无头浏览器渲染
type Fetcher struct {
	config  models.FetchConfig
	static  *StaticFetcher
	browser *BrowserFetcher
}

// NewFetcher 创建获取器
func NewFetcher(config models.FetchConfig) *Fetcher {
	return &Fetcher{
		config:  config,
		static:  NewStaticFetcher(config),
		browser: NewBrowserFetcher(config),
	}
}

// Fetch 获取目标URL的完整HTML
//
// 返回非空HTML或明确的获取失败,不产出部分内容
func (f *Fetcher) Fetch(targetURL string) (string, bool, error) {
	html, staticErr := f.static.Fetch(targetURL)
	if staticErr == nil && !NeedsBrowserRetry(html, targetURL) {
		return html, false, nil
	}

	if staticErr != nil {
		utils.Warnf("⚠️  静态获取失败 [%s]: %v,尝试浏览器渲染", targetURL, staticErr)
	} else {
		utils.Infof("📄 静态内容不完整 [%s] (%d 字节),尝试浏览器渲染", targetURL, len(html))
	}

	rendered, browserErr := f.browser.Fetch(targetURL)
	if browserErr == nil {
		return rendered, true, nil
	}
	utils.Warnf("⚠️  浏览器获取失败 [%s]: %v", targetURL, browserErr)

	// 浏览器也失败时,静态结果哪怕不完整也比没有强
	if staticErr == nil && html != "" {
		return html, false, nil
	}

	if staticErr != nil {
		return "", false, staticErr
	}
	return "", false, models.NewRetrievalError(targetURL, browserErr)
}

// Close 释放持有的浏览器资源
func (f *Fetcher) Close() {
	f.browser.Close()
}

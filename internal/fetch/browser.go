package fetch

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var (
	// ErrBrowserCrashed 浏览器崩溃
	ErrBrowserCrashed = errors.New("浏览器崩溃")
	// ErrBrowserDisabled 浏览器回退被配置禁用
	ErrBrowserDisabled = errors.New("浏览器回退已禁用")
)

// BrowserFetcher 动态获取器(使用go-rod无头浏览器)
//
// 浏览器实例惰性启动并在多次获取间复用,用完必须显式Close;
// Web服务模式下会被多个请求并发使用,实例字段由互斥锁保护
type BrowserFetcher struct {
	config models.FetchConfig

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserFetcher 创建动态获取器
func NewBrowserFetcher(config models.FetchConfig) *BrowserFetcher {
	return &BrowserFetcher{config: config}
}

// Fetch 通过无头浏览器渲染页面并返回完整HTML
//
// 浏览器panic在此捕获并转换为ErrBrowserCrashed,不向外抛出
func (bf *BrowserFetcher) Fetch(targetURL string) (html string, err error) {
	if bf.config.DisableBrowser {
		return "", ErrBrowserDisabled
	}

	defer func() {
		if r := recover(); r != nil {
			utils.Errorf("捕获浏览器panic: URL=%s, 错误=%v", targetURL, r)
			err = ErrBrowserCrashed
			bf.Close()
		}
	}()

	browser, err := bf.ensureBrowser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("打开标签页失败: %w", err)
	}
	defer page.Close()

	if navErr := page.Navigate(targetURL); navErr != nil {
		return "", fmt.Errorf("导航失败: %w", navErr)
	}
	if loadErr := page.WaitLoad(); loadErr != nil {
		return "", fmt.Errorf("等待页面加载失败: %w", loadErr)
	}

	// 额外等待,让页面脚本把内容渲染进DOM
	if bf.config.WaitTime > 0 {
		time.Sleep(time.Duration(bf.config.WaitTime) * time.Second)
	}

	html, err = page.HTML()
	if err != nil {
		return "", fmt.Errorf("读取页面HTML失败: %w", err)
	}

	utils.Debugf("✅ 浏览器获取成功: %s (%d 字节)", targetURL, len(html))
	return html, nil
}

// ensureBrowser 惰性启动并复用浏览器实例
//
// 持锁检查与赋值,并发请求只会拉起一个浏览器进程
func (bf *BrowserFetcher) ensureBrowser() (*rod.Browser, error) {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	if bf.browser != nil {
		return bf.browser, nil
	}

	// 启动前检查系统内存,避免在资源紧张时拉起浏览器
	if err := checkLaunchResources(); err != nil {
		return nil, err
	}

	l := launcher.New().Headless(bf.config.Headless)

	// 忽略证书错误,允许访问自签名或证书过期的HTTPS站点
	l = l.Set("ignore-certificate-errors")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}

	bf.browser = browser
	utils.Debugf("浏览器已启动: %s", controlURL)
	return browser, nil
}

// Close 关闭浏览器实例
func (bf *BrowserFetcher) Close() {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	if bf.browser != nil {
		if err := bf.browser.Close(); err != nil {
			utils.Warnf("关闭浏览器失败: %v", err)
		}
		bf.browser = nil
		utils.Debugf("浏览器已关闭")
	}
}

// 微信拦截页标记,命中说明没拿到正文,需要浏览器渲染重试
var interstitialMarkers = []string{
	"请在微信客户端打开链接",
	"该链接已过期",
}

// 正文过短且提到javascript时,视为需要脚本渲染的骨架页
const thinContentSize = 1000

// NeedsBrowserRetry 判断静态获取的内容是否需要浏览器渲染重试
//
// 微信文章是服务端渲染的,静态获取成功即为完整内容,
// 仅在命中拦截页标记时才走浏览器
func NeedsBrowserRetry(html, targetURL string) bool {
	for _, marker := range interstitialMarkers {
		if strings.Contains(html, marker) {
			return true
		}
	}
	if models.IsWechatArticleURL(targetURL) {
		return false
	}
	return len(html) < thinContentSize && strings.Contains(strings.ToLower(html), "javascript")
}

package fetch

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/RecoveryAshes/WxCopyTrace/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
)

// StaticFetcher 静态获取器(使用Colly)
//
// 只获取单个页面的完整HTML,不跟踪页面内链接
type StaticFetcher struct {
	config models.FetchConfig
}

// NewStaticFetcher 创建静态获取器
func NewStaticFetcher(config models.FetchConfig) *StaticFetcher {
	return &StaticFetcher{config: config}
}

// Fetch 获取目标URL的HTML源代码
func (sf *StaticFetcher) Fetch(targetURL string) (string, error) {
	httpTimeout := time.Duration(sf.config.Timeout) * time.Second

	// 禁用TLS证书验证,允许访问自签名或证书过期的站点
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
		Timeout: httpTimeout,
	}

	c := colly.NewCollector()
	c.SetClient(httpClient)
	c.SetRequestTimeout(httpTimeout)
	c.WithTransport(httpClient.Transport)

	var html string
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", sf.userAgent())
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
		r.Headers.Set("Accept-Encoding", "gzip, deflate, br")

		// 应用自定义HTTP头部(覆盖默认值)
		for name, value := range sf.config.Headers {
			r.Headers.Set(name, value)
		}

		utils.Debugf("静态获取: %s", r.URL.String())
	})

	c.OnResponse(func(r *colly.Response) {
		body := r.Body
		contentEncoding := r.Headers.Get("Content-Encoding")
		if contentEncoding != "" {
			decompressed, err := decompressResponse(contentEncoding, r.Body)
			if err != nil {
				utils.Warnf("解压响应失败 [%s] (编码=%s): %v", targetURL, contentEncoding, err)
			} else {
				body = decompressed
				utils.Debugf("成功解压响应 [%s]: 原始=%d bytes, 解压后=%d bytes", targetURL, len(r.Body), len(body))
			}
		}

		if r.StatusCode >= 400 {
			fetchErr = fmt.Errorf("HTTP状态码 %d", r.StatusCode)
			return
		}

		html = string(body)
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(targetURL); err != nil {
		return "", models.NewRetrievalError(targetURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", models.NewRetrievalError(targetURL, fetchErr)
	}
	if html == "" {
		return "", models.NewRetrievalError(targetURL, fmt.Errorf("响应内容为空"))
	}

	utils.Debugf("✅ 静态获取成功: %s (%d 字节)", targetURL, len(html))
	return html, nil
}

func (sf *StaticFetcher) userAgent() string {
	if sf.config.UserAgent != "" {
		return sf.config.UserAgent
	}
	return models.DefaultUserAgent
}

// decompressResponse 根据Content-Encoding头部解压响应体
// 支持 gzip, deflate, br (Brotli) 三种压缩格式
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip读取失败: %w", err)
		}
		return decompressed, nil

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("deflate读取失败: %w", err)
		}
		return decompressed, nil

	case "br":
		reader := brotli.NewReader(bytes.NewReader(body))
		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("brotli读取失败: %w", err)
		}
		return decompressed, nil

	case "":
		return body, nil

	default:
		utils.Warnf("未知的Content-Encoding: %s", contentEncoding)
		return body, nil
	}
}

package fetch

import (
	"bytes"
	"compress/gzip"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/RecoveryAshes/WxCopyTrace/internal/models"
	"github.com/andybalholm/brotli"
)

func TestNeedsBrowserRetry(t *testing.T) {
	longBody := strings.Repeat("<p>正文内容</p>", 100)

	tests := []struct {
		name string
		html string
		url  string
		want bool
	}{
		{
			"微信拦截页-客户端打开",
			"<html><body>请在微信客户端打开链接</body></html>",
			"https://mp.weixin.qq.com/s/abc",
			true,
		},
		{
			"微信拦截页-链接过期",
			"<html><body>该链接已过期</body></html>",
			"https://mp.weixin.qq.com/s/abc",
			true,
		},
		{
			"微信文章服务端渲染不回退",
			"<html><body><h1 id=\"activity-name\">标题</h1><script>var javascript_state = 1;</script></body></html>",
			"https://mp.weixin.qq.com/s/abc",
			false,
		},
		{
			"骨架页提到javascript",
			"<html><body><noscript>Please enable JavaScript</noscript></body></html>",
			"https://example.com/app",
			true,
		},
		{
			"内容短但无javascript",
			"<html><body><p>静态小页面</p></body></html>",
			"https://example.com/page",
			false,
		},
		{
			"完整正文",
			"<html><body>" + longBody + "</body></html>",
			"https://example.com/article",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsBrowserRetry(tt.html, tt.url); got != tt.want {
				t.Errorf("期望=%v, 实际=%v", tt.want, got)
			}
		})
	}
}

func TestDecompressResponse_Gzip(t *testing.T) {
	original := []byte("<html><body>测试页面</body></html>")

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(original); err != nil {
		t.Fatalf("压缩失败: %v", err)
	}
	writer.Close()

	got, err := decompressResponse("gzip", buf.Bytes())
	if err != nil {
		t.Fatalf("解压失败: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("解压结果不一致: 期望=%q, 实际=%q", original, got)
	}
}

func TestDecompressResponse_Brotli(t *testing.T) {
	original := []byte("<html><body>brotli压缩页面</body></html>")

	var buf bytes.Buffer
	writer := brotli.NewWriter(&buf)
	if _, err := writer.Write(original); err != nil {
		t.Fatalf("压缩失败: %v", err)
	}
	writer.Close()

	got, err := decompressResponse("br", buf.Bytes())
	if err != nil {
		t.Fatalf("解压失败: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("解压结果不一致: 期望=%q, 实际=%q", original, got)
	}
}

func TestDecompressResponse_Passthrough(t *testing.T) {
	body := []byte("plain content")

	tests := []struct {
		name     string
		encoding string
	}{
		{"无压缩", ""},
		{"未知编码", "zstd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decompressResponse(tt.encoding, body)
			if err != nil {
				t.Fatalf("不应返回错误: %v", err)
			}
			if !bytes.Equal(got, body) {
				t.Errorf("应原样返回, 实际=%q", got)
			}
		})
	}
}

func TestDecompressResponse_InvalidGzip(t *testing.T) {
	if _, err := decompressResponse("gzip", []byte("not gzip data")); err == nil {
		t.Error("损坏的gzip数据应返回错误")
	}
}

func TestBrowserFetcher_DisableBrowser(t *testing.T) {
	bf := NewBrowserFetcher(models.FetchConfig{Timeout: 30, DisableBrowser: true})
	defer bf.Close()

	if _, err := bf.Fetch("https://example.com/"); !errors.Is(err, ErrBrowserDisabled) {
		t.Errorf("禁用浏览器时应返回ErrBrowserDisabled, 实际=%v", err)
	}
}

func TestBrowserFetcher_ConcurrentClose(t *testing.T) {
	// Web服务模式下同一个实例被多个请求共享,Close必须可并发调用且幂等
	bf := NewBrowserFetcher(models.FetchConfig{Timeout: 30})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bf.Close()
		}()
	}
	wg.Wait()

	bf.Close()
}

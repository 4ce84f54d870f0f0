package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeURLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入URL文件失败: %v", err)
	}
	return path
}

func TestReadURLsFromFile(t *testing.T) {
	content := `# 待分析清单
https://mp.weixin.qq.com/s/abc

https://example.com/page
not-a-url
ftp://example.com/file
`
	urls, err := ReadURLsFromFile(writeURLFile(t, content))
	if err != nil {
		t.Fatalf("读取URL文件失败: %v", err)
	}

	want := []string{"https://mp.weixin.qq.com/s/abc", "https://example.com/page"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("期望加载=%v, 实际=%v", want, urls)
	}
}

func TestReadURLsFromFile_NoValidURLs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"仅注释与空行", "# 注释\n\n\n"},
		{"仅无效URL", "not-a-url\nexample.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadURLsFromFile(writeURLFile(t, tt.content)); err == nil {
				t.Error("没有有效URL时应返回错误")
			}
		})
	}
}

func TestReadURLsFromFile_MissingFile(t *testing.T) {
	if _, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("文件不存在时应返回错误")
	}
}

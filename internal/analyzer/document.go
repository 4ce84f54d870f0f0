package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document 单次分析独占的文档视图
// 构建一次后只读,提取器之间不共享可变状态
type Document struct {
	doc *goquery.Document
	raw string
}

// NewDocument 从HTML字符串构建文档视图
func NewDocument(htmlContent string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc, raw: htmlContent}, nil
}

// Raw 原始HTML文本(脚本变量回退匹配用)
func (d *Document) Raw() string {
	return d.raw
}

// Find 按CSS选择器查询
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// FirstText 按优先级依次尝试选择器,返回第一个非空文本
func (d *Document) FirstText(selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(d.doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// Comments 收集全部非空HTML注释文本(文档顺序)
func (d *Document) Comments() []string {
	comments := make([]string, 0)
	for _, root := range d.doc.Nodes {
		walkNodes(root, func(n *html.Node) {
			if n.Type == html.CommentNode {
				if text := strings.TrimSpace(n.Data); text != "" {
					comments = append(comments, text)
				}
			}
		})
	}
	return comments
}

// EachElement 按文档顺序遍历所有元素节点及其属性
func (d *Document) EachElement(fn func(tag string, attrs []html.Attribute)) {
	for _, root := range d.doc.Nodes {
		walkNodes(root, func(n *html.Node) {
			if n.Type == html.ElementNode {
				fn(n.Data, n.Attr)
			}
		})
	}
}

// walkNodes 深度优先遍历节点树
func walkNodes(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, fn)
	}
}

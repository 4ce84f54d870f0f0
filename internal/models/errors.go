package models

import (
	"errors"
	"fmt"
)

// 错误分类
// RetrievalError: 无法获取HTML,整个分析失败,体现为结果的error字段
// 区域级解析失败(如畸形JSON-LD)在提取器内部静默跳过,不进入错误分类
var (
	ErrEmptyDocument = errors.New("网页内容为空")
	ErrInvalidURL    = errors.New("URL格式无效")
)

// RetrievalError 获取网页内容失败(对整个分析是致命的)
type RetrievalError struct {
	URL string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("无法获取网页内容 [%s]: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// NewRetrievalError 创建获取失败错误
func NewRetrievalError(url string, err error) *RetrievalError {
	return &RetrievalError{URL: url, Err: err}
}

// ValidationError 自定义HTTP头部校验失败
type ValidationError struct {
	Field      string // 出错的字段: name或value
	HeaderName string // 头部名称
	Reason     string // 失败原因
	Suggestion string // 修复建议
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("头部 '%s' 的%s无效: %s", e.HeaderName, e.Field, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (建议: %s)", e.Suggestion)
	}
	return msg
}

// UnexpectedError 管线内部的意外失败(顶层捕获,体现为error字段,不向调用方抛出)
type UnexpectedError struct {
	Stage string
	Err   error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("分析失败 [%s]: %v", e.Stage, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

package models

// 微信文章字段的"未找到"哨兵值
// 字段永远不为null/缺失,下游无需做存在性判断
const (
	NotFoundTitle       = "未找到标题"
	NotFoundPublishTime = "未找到发布时间"
	NotFoundAccountName = "未找到公众号名称"
)

// StructuredFields 微信公众号文章的结构化字段
// 与归属分析结果相互独立,仅在URL命中微信文章模板时产出
type StructuredFields struct {
	Title       string `json:"title"`
	PublishTime string `json:"publish_time"`
	AccountName string `json:"account_name"`
	OriginalURL string `json:"original_url"`
}

// NewStructuredFields 创建全部字段为哨兵值的结构化字段
func NewStructuredFields(url string) *StructuredFields {
	return &StructuredFields{
		Title:       NotFoundTitle,
		PublishTime: NotFoundPublishTime,
		AccountName: NotFoundAccountName,
		OriginalURL: url,
	}
}

package summary

// SummarizeDTO 摘要请求
type SummarizeDTO struct {
	Messages []string `json:"messages"`
}

// SummaryDTO 非流式摘要结果
type SummaryDTO struct {
	Summary string `json:"summary"`
}

package feedback

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/feedify/backend/internal/domain/feedback"
)

// ErrUnsupportedFormat 不支持的导出格式
var ErrUnsupportedFormat = errors.New("unsupported export format, use json or csv")

// 导出格式
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// exportRecord 导出的单条记录
type exportRecord struct {
	ID        string `json:"id"`
	SpaceName string `json:"space_name"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toRecords(messages []*feedback.Message) []exportRecord {
	records := make([]exportRecord, 0, len(messages))
	for _, m := range messages {
		records = append(records, exportRecord{
			ID:        m.ID,
			SpaceName: m.SpaceName,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return records
}

// encodeMessages 按格式编码消息
func encodeMessages(spaceName, format string, messages []*feedback.Message) (*ExportDTO, error) {
	records := toRecords(messages)
	filename := fmt.Sprintf("%s-messages.%s", spaceName, format)

	switch format {
	case FormatJSON:
		body, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode messages: %w", err)
		}
		return &ExportDTO{Filename: filename, ContentType: "application/json", Body: body}, nil

	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"id", "space_name", "content", "created_at"}); err != nil {
			return nil, err
		}
		for _, r := range records {
			if err := w.Write([]string{r.ID, r.SpaceName, r.Content, r.CreatedAt}); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to encode messages: %w", err)
		}
		return &ExportDTO{Filename: filename, ContentType: "text/csv; charset=utf-8", Body: buf.Bytes()}, nil

	default:
		return nil, ErrUnsupportedFormat
	}
}

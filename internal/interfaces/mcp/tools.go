package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListSpacesInput 空间列表工具输入（空输入）
type ListSpacesInput struct{}

// SpaceItem 空间
type SpaceItem struct {
	Name      string `json:"name" jsonschema:"空间名"`
	Title     string `json:"title" jsonschema:"空间标题"`
	CreatedAt string `json:"created_at" jsonschema:"创建时间（RFC3339）"`
}

// ListSpacesOutput 空间列表工具输出
type ListSpacesOutput struct {
	Spaces []SpaceItem `json:"spaces" jsonschema:"按创建顺序排列的空间"`
}

// SpaceInput 指定空间的工具输入
type SpaceInput struct {
	SpaceName string `json:"space_name" jsonschema:"空间名"`
}

// MessageItem 反馈消息
type MessageItem struct {
	ID        string `json:"id" jsonschema:"消息 ID"`
	Content   string `json:"content" jsonschema:"消息内容"`
	CreatedAt string `json:"created_at" jsonschema:"创建时间（RFC3339）"`
}

// ListMessagesOutput 消息列表工具输出
type ListMessagesOutput struct {
	SpaceName string        `json:"space_name" jsonschema:"空间名"`
	Messages  []MessageItem `json:"messages" jsonschema:"消息，最新在前"`
	Total     int           `json:"total" jsonschema:"消息总数"`
}

// SummarizeSpaceOutput 空间摘要工具输出
type SummarizeSpaceOutput struct {
	SpaceName    string `json:"space_name" jsonschema:"空间名"`
	Summary      string `json:"summary" jsonschema:"摘要文本"`
	MessageCount int    `json:"message_count" jsonschema:"参与摘要的消息数"`
}

// registerTools 注册工具，所有工具都作用于 userID 的数据
func (s *MCPServer) registerTools(server *mcp.Server, userID string) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_spaces",
		Description: "List the feedback spaces of the signed-in user in creation order. No parameters required. Returns: name, title and creation time of each space.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ListSpacesInput) (*mcp.CallToolResult, ListSpacesOutput, error) {
		return s.listSpacesTool(ctx, userID)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_messages",
		Description: "List the anonymous feedback messages of one space, newest first. Parameters: space_name (string, required) - space name. Returns: messages and total count.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SpaceInput) (*mcp.CallToolResult, ListMessagesOutput, error) {
		return s.listMessagesTool(ctx, userID, input)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_space",
		Description: "Summarize all feedback messages of one space in a concise manner. Parameters: space_name (string, required) - space name. Returns: summary text and the number of summarized messages.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SpaceInput) (*mcp.CallToolResult, SummarizeSpaceOutput, error) {
		return s.summarizeSpaceTool(ctx, userID, input)
	})
}

func (s *MCPServer) listSpacesTool(ctx context.Context, userID string) (*mcp.CallToolResult, ListSpacesOutput, error) {
	spaces, err := s.spaces.List(userID)
	if err != nil {
		return nil, ListSpacesOutput{}, err
	}

	out := ListSpacesOutput{Spaces: make([]SpaceItem, 0, len(spaces))}
	for _, sp := range spaces {
		out.Spaces = append(out.Spaces, SpaceItem{
			Name:      sp.Name,
			Title:     sp.Title,
			CreatedAt: sp.CreatedAt,
		})
	}
	return nil, out, nil
}

func (s *MCPServer) listMessagesTool(ctx context.Context, userID string, input SpaceInput) (*mcp.CallToolResult, ListMessagesOutput, error) {
	messages, err := s.feedback.List(userID, input.SpaceName)
	if err != nil {
		return nil, ListMessagesOutput{}, err
	}

	out := ListMessagesOutput{
		SpaceName: input.SpaceName,
		Messages:  make([]MessageItem, 0, len(messages)),
		Total:     len(messages),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, MessageItem{
			ID:        m.ID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return nil, out, nil
}

func (s *MCPServer) summarizeSpaceTool(ctx context.Context, userID string, input SpaceInput) (*mcp.CallToolResult, SummarizeSpaceOutput, error) {
	contents, err := s.feedback.Contents(userID, input.SpaceName)
	if err != nil {
		return nil, SummarizeSpaceOutput{}, err
	}

	summary, err := s.relay.SummarizeText(ctx, userID, contents)
	if err != nil {
		s.logger.Warn("summarize_space failed",
			"user_id", userID,
			"space", input.SpaceName,
			"error", err,
		)
		return nil, SummarizeSpaceOutput{}, err
	}

	return nil, SummarizeSpaceOutput{
		SpaceName:    input.SpaceName,
		Summary:      summary,
		MessageCount: len(contents),
	}, nil
}

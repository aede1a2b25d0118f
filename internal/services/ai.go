package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/workspace-task-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

// GeneratedTask is a task suggestion extracted from free text.
type GeneratedTask struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	DueDate     *time.Time          `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig creates an AIService with a custom client configuration.
func NewAIServiceWithConfig(config openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(config),
	}
}

// GenerateTasksFromText analyzes text and extracts tasks using OpenAI GPT
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`あなたはタスク抽出アシスタントです。以下のテキストからプロジェクトのタスクを抽出してください。

現在時刻: %s

テキスト:
%s

以下のJSON形式で、抽出したタスクの配列を返してください:
[
  {
    "name": "タスク名（簡潔に）",
    "description": "タスクの詳細説明",
    "due_date": "期限（ISO8601形式、例: 2025-10-28T23:59:59Z）。期限が明示されていない場合はnull",
    "priority": "優先度。「高」「中」「低」のいずれか"
  }
]

注意事項:
- タスクが1つもない場合は空の配列 [] を返してください
- 期限は相対的な表現（「明日」「来週」など）を具体的な日時に変換してください
- due_dateは必ずISO8601形式の文字列、またはnullにしてください
- JSONのみを返し、説明文は含めないでください`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

// stripCodeFence removes a surrounding ```json fence some models add despite the prompt.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

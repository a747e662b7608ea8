package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

const degradedSummaryLength = 200

type llmTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type llmResponse struct {
	Summary string    `json:"summary"`
	Tasks   []llmTask `json:"tasks"`
}

// parseCompletion decodes a model answer. When the answer is not the expected
// JSON it returns a degraded result together with a parse error.
func parseCompletion(content string) (*Result, error) {
	var resp llmResponse
	if err := json.Unmarshal([]byte(extractJSON(content)), &resp); err != nil {
		return degradedResult(content), fmt.Errorf("failed to parse JSON response: %w", err)
	}

	tasks := make([]ExtractedTask, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, ExtractedTask{
			Title:       t.Title,
			Description: t.Description,
			Priority:    entities.ParseTaskPriority(t.Priority),
		})
	}
	return &Result{Summary: resp.Summary, Tasks: normalizeTasks(tasks)}, nil
}

func degradedResult(content string) *Result {
	return &Result{
		Summary:  truncateRunes(content, degradedSummaryLength) + "...",
		Tasks:    []ExtractedTask{},
		Degraded: true,
	}
}

// normalizeTasks drops untitled tasks, bounds titles and caps the list
func normalizeTasks(in []ExtractedTask) []ExtractedTask {
	out := make([]ExtractedTask, 0, len(in))
	for _, t := range in {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			continue
		}
		t.Title = truncateRunes(t.Title, MaxTitleLength)
		t.Description = strings.TrimSpace(t.Description)
		if !t.Priority.IsValid() {
			t.Priority = entities.TaskPriorityMedium
		}
		out = append(out, t)
		if len(out) == MaxTasks {
			break
		}
	}
	return out
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

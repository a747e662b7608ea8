package extraction

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// HeuristicName identifies the keyword fallback in logs and metrics
const HeuristicName = "heuristic"

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)

	actionPhrases = []string{
		"need to", "should", "must", "will", "going to", "action item",
		"follow up", "next step", "deadline", "due", "assign", "responsible",
	}
	urgentWords    = []string{"urgent", "asap"}
	importantWords = []string{"important"}
)

// HeuristicProvider finds action sentences by keyword. It needs no network and
// never fails on text input.
type HeuristicProvider struct{}

// NewHeuristicProvider creates the keyword fallback
func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

// Name returns "heuristic"
func (HeuristicProvider) Name() string {
	return HeuristicName
}

// Extract scans the transcript sentence by sentence
func (h HeuristicProvider) Extract(_ context.Context, transcript string) (*Result, error) {
	var (
		tasks []ExtractedTask
		last  = -1 // index of the candidate taken from the previous sentence
	)

	for _, raw := range sentenceSplit.Split(transcript, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)

		if containsAny(lower, actionPhrases) {
			tasks = append(tasks, ExtractedTask{
				Title:       truncateRunes(sentence, MaxTitleLength),
				Description: sentence,
				Priority:    sentencePriority(lower),
			})
			last = len(tasks) - 1
			continue
		}

		// "This is urgent." qualifies the action stated just before it
		if last >= 0 {
			if p := sentencePriority(lower); p.Rank() > tasks[last].Priority.Rank() {
				tasks[last].Priority = p
			}
		}
		last = -1
	}

	summary := fmt.Sprintf("Meeting transcript analyzed. %d potential action items identified.", len(tasks))
	if len(tasks) > MaxTasks {
		tasks = tasks[:MaxTasks]
	}
	if tasks == nil {
		tasks = []ExtractedTask{}
	}

	return &Result{Summary: summary, Tasks: tasks, Provider: HeuristicName}, nil
}

func sentencePriority(lower string) entities.TaskPriority {
	switch {
	case containsAny(lower, urgentWords):
		return entities.TaskPriorityUrgent
	case containsAny(lower, importantWords):
		return entities.TaskPriorityHigh
	default:
		return entities.TaskPriorityMedium
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

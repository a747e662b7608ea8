package extraction

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/johnquangdev/projectflow/pkg/ai"
)

// SystemPrompt instructs the model to answer with the summary/tasks JSON object
const SystemPrompt = `You are an AI assistant that analyzes meeting transcripts and extracts actionable tasks. 

Return a JSON object with:
- summary: A brief 2-3 sentence summary of the meeting
- tasks: An array of tasks with title, description, and priority (low/medium/high/urgent)

Focus on:
- Action items mentioned
- Decisions that need follow-up
- Deadlines and commitments
- Assignments to people
- Next steps discussed

Each task should be specific and actionable.`

const userPromptPrefix = "Please analyze this meeting transcript and extract actionable tasks:\n\n"

// Completer is a chat-completion backend
type Completer interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LLMProvider extracts tasks by prompting a chat-completion model
type LLMProvider struct {
	client Completer
}

// NewLLMProvider wraps a chat-completion client
func NewLLMProvider(client Completer) *LLMProvider {
	return &LLMProvider{client: client}
}

// Name returns the backend name
func (p *LLMProvider) Name() string {
	return p.client.Name()
}

// Extract prompts the model. A non-JSON answer returns the degraded result
// and a parse-tagged error; callers may accept it.
func (p *LLMProvider) Extract(ctx context.Context, transcript string) (*Result, error) {
	if !p.client.Configured() {
		return nil, &ProviderError{Provider: p.Name(), Kind: KindUnavailable, Err: ErrProviderUnavailable}
	}

	content, err := p.client.Complete(ctx, SystemPrompt, userPromptPrefix+transcript)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Kind: classify(err), Err: err}
	}

	result, err := parseCompletion(content)
	result.Provider = p.Name()
	if err != nil {
		return result, &ProviderError{Provider: p.Name(), Kind: KindParse, Err: err}
	}
	return result, nil
}

func classify(err error) ErrorKind {
	var se *ai.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden {
			return KindAuth
		}
		return KindUpstream
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindUpstream
}

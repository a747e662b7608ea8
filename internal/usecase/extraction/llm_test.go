package extraction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/pkg/ai"
)

type fakeCompleter struct {
	name       string
	configured bool
	content    string
	err        error
	calls      int
	lastUser   string
}

func (f *fakeCompleter) Name() string     { return f.name }
func (f *fakeCompleter) Configured() bool { return f.configured }
func (f *fakeCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	f.calls++
	f.lastUser = userPrompt
	return f.content, f.err
}

func TestLLMProvider_ParsesFencedJSON(t *testing.T) {
	c := &fakeCompleter{name: "groq", configured: true, content: "```json\n" +
		`{"summary":"Planning sync.","tasks":[{"title":"Send deck","description":"to client","priority":"HIGH"},{"title":"  ","priority":"low"},{"title":"Book room","priority":"whenever"}]}` +
		"\n```"}

	res, err := NewLLMProvider(c).Extract(context.Background(), "transcript text")
	require.NoError(t, err)

	assert.Equal(t, "Please analyze this meeting transcript and extract actionable tasks:\n\ntranscript text", c.lastUser)
	assert.Equal(t, "Planning sync.", res.Summary)
	assert.Equal(t, "groq", res.Provider)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, entities.TaskPriorityHigh, res.Tasks[0].Priority)
	assert.Equal(t, "Book room", res.Tasks[1].Title)
	assert.Equal(t, entities.TaskPriorityMedium, res.Tasks[1].Priority)
}

func TestLLMProvider_NotJSONDegrades(t *testing.T) {
	c := &fakeCompleter{name: "groq", configured: true, content: "not json"}

	res, err := NewLLMProvider(c).Extract(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))

	require.NotNil(t, res)
	assert.Equal(t, "not json...", res.Summary)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
	assert.True(t, res.Degraded)
}

func TestLLMProvider_Unconfigured(t *testing.T) {
	c := &fakeCompleter{name: "openai"}

	_, err := NewLLMProvider(c).Extract(context.Background(), "text")
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Zero(t, c.calls)
}

func TestLLMProvider_ClassifiesErrors(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{&ai.StatusError{Provider: "groq", StatusCode: 401}, KindAuth},
		{&ai.StatusError{Provider: "groq", StatusCode: 403}, KindAuth},
		{&ai.StatusError{Provider: "groq", StatusCode: 502}, KindUpstream},
		{fmt.Errorf("post: %w", context.DeadlineExceeded), KindTimeout},
		{errors.New("connection refused"), KindUpstream},
	}
	for _, tc := range cases {
		c := &fakeCompleter{name: "groq", configured: true, err: tc.err}
		_, err := NewLLMProvider(c).Extract(context.Background(), "text")
		assert.Equal(t, tc.want, KindOf(err), tc.err.Error())
	}
}

func TestNormalizeTasks_CapsAndTruncates(t *testing.T) {
	in := make([]ExtractedTask, 0, 15)
	for i := 0; i < 15; i++ {
		in = append(in, ExtractedTask{Title: fmt.Sprintf("%0120d", i), Priority: "bogus"})
	}
	out := normalizeTasks(in)
	require.Len(t, out, MaxTasks)
	assert.Len(t, out[0].Title, MaxTitleLength)
	assert.Equal(t, entities.TaskPriorityMedium, out[0].Priority)
}

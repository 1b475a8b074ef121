package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/pthm-cable/hamlet/social"
)

// fakeModel answers every prompt with a fixed reply and records the prompts.
type fakeModel struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				f.prompts = append(f.prompts, tc.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

var (
	mira = Profile{ID: "mira", Name: "Mira", Emoji: "🌸", Personality: "dreamy painter"}
	theo = Profile{ID: "theo", Name: "Theo", Emoji: "🔧", Personality: "tinkerer"}
)

func TestParseConversation_Valid(t *testing.T) {
	raw := `{"messages":[{"speaker":"Mira","text":"Hi!"},{"speaker":"Theo","text":"Hello."}],"topic":"greetings"}`
	conv, err := ParseConversation(raw, "Mira", "Theo")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Theo", conv.Messages[1].Speaker)
	assert.Equal(t, "greetings", conv.Topic)
}

func TestParseConversation_FencedAndBroken(t *testing.T) {
	raw := "Sure! Here you go:\n```json\n{\"messages\":[{\"speaker\":\"Mira\",\"text\":\"Hi!\"},{\"speaker\":\"Theo\",\"text\":\"Hello.\"},],\"topic\":\"hello\"}\n```"
	conv, err := ParseConversation(raw, "Mira", "Theo")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "hello", conv.Topic)
}

func TestParseConversation_MissingTopicAndSpeakers(t *testing.T) {
	raw := `{"messages":[{"text":"One"},{"text":"  "},{"text":"Two"}]}`
	conv, err := ParseConversation(raw, "Mira", "Theo")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "", conv.Topic)
	assert.Equal(t, "Mira", conv.Messages[0].Speaker)
	assert.Equal(t, "Theo", conv.Messages[1].Speaker)
}

func TestParseConversation_BareArray(t *testing.T) {
	raw := `[{"speaker":"Mira","text":"Hi"}]`
	conv, err := ParseConversation(raw, "Mira", "Theo")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)
}

func TestParseConversation_Garbage(t *testing.T) {
	_, err := ParseConversation("", "Mira", "Theo")
	require.Error(t, err)
}

func TestParseDecree(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"array", `[{"agentName":"Mira","emoji":"🌸","reaction":"Yay"},{"agentName":"Theo","emoji":"🔧","reaction":"Hm"}]`, 2},
		{"wrapped", `{"reactions":[{"agentName":"Mira","emoji":"🌸","reaction":"Yay"}]}`, 1},
		{"drops blanks", `[{"agentName":"","reaction":"x"},{"agentName":"Mira","reaction":""}]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecree(tt.raw)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestParseReaction(t *testing.T) {
	assert.Equal(t, "What a lovely egg!", ParseReaction("\n  \"What a lovely egg!\"\nextra"))
	assert.Equal(t, "", ParseReaction("  \n \n"))
}

func TestConversationPrompt(t *testing.T) {
	p := ConversationPrompt(ConversationRequest{
		A: mira, B: theo, Type: social.Deep, MeetCount: 7, Stage: social.Friend,
		BuildingID: "cafe", Topics: []string{"bread"},
	})
	assert.Contains(t, p, "Mira")
	assert.Contains(t, p, "Theo")
	assert.Contains(t, p, "exactly 6 lines")
	assert.Contains(t, p, "cafe")
	assert.Contains(t, p, "bread")
	assert.Contains(t, p, "friends")
}

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 2, LinesFor(social.Greeting))
	assert.Equal(t, 4, LinesFor(social.SmallTalk))
	assert.Equal(t, 6, LinesFor(social.Deep))
}

func TestLLMConverse(t *testing.T) {
	model := &fakeModel{reply: `{"messages":[{"speaker":"Mira","text":"Hi"},{"speaker":"Theo","text":"Yo"}],"topic":"hi"}`}
	g := NewLLM(model, Options{Provider: ProviderOpenAI, Temperature: 0.5})

	conv, err := g.Converse(context.Background(), ConversationRequest{A: mira, B: theo, Type: social.Greeting})
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 2)
	require.Len(t, model.prompts, 1)
	assert.True(t, strings.Contains(model.prompts[0], "first time"))
}

func TestLLMConverseEmpty(t *testing.T) {
	g := NewLLM(&fakeModel{reply: `{"messages":[],"topic":""}`}, Options{Provider: ProviderOllama})
	_, err := g.Converse(context.Background(), ConversationRequest{A: mira, B: theo, Type: social.Greeting})
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestLLMModelError(t *testing.T) {
	boom := errors.New("connection refused")
	g := NewLLM(&fakeModel{err: boom}, Options{Provider: ProviderOllama})
	_, err := g.React(context.Background(), ReactionRequest{Agent: mira, ObjectName: "Egg", ObjectEmoji: "🥚"})
	require.ErrorIs(t, err, boom)
}

func TestLLMDecree(t *testing.T) {
	g := NewLLM(&fakeModel{reply: "```json\n[{\"agentName\":\"Mira\",\"emoji\":\"🌸\",\"reaction\":\"Wow\"}]\n```"}, Options{})
	got, err := g.Decree(context.Background(), "Let there be cake", []Profile{mira, theo})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mira", got[0].AgentName)
}

func TestDialUnknownProvider(t *testing.T) {
	_, err := Dial(context.Background(), Options{Provider: "carrier-pigeon"})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewDefaultsToScripted(t *testing.T) {
	g, err := New(context.Background(), Options{}, "", 1)
	require.NoError(t, err)
	_, ok := g.(*Scripted)
	assert.True(t, ok, "empty provider should yield the scripted gateway")
}

func TestScriptedConverse(t *testing.T) {
	g := NewScripted(42)
	for _, typ := range []social.ConversationType{social.Greeting, social.SmallTalk, social.Deep} {
		conv, err := g.Converse(context.Background(), ConversationRequest{A: mira, B: theo, Type: typ})
		require.NoError(t, err)
		require.Len(t, conv.Messages, LinesFor(typ))
		assert.Equal(t, "Mira", conv.Messages[0].Speaker)
		assert.Equal(t, "Theo", conv.Messages[1].Speaker)
		assert.NotEmpty(t, conv.Topic)
	}
}

func TestScriptedHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScripted(1).Converse(ctx, ConversationRequest{A: mira, B: theo})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScriptedDecreeCoversEveryAgent(t *testing.T) {
	got, err := NewScripted(3).Decree(context.Background(), "rain", []Profile{mira, theo})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Theo", got[1].AgentName)
}

func TestLimitedThrottles(t *testing.T) {
	g := NewLimited(NewScripted(1), 20, 1)
	req := ReactionRequest{Agent: mira, ObjectName: "Egg"}
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := g.React(context.Background(), req)
		require.NoError(t, err)
	}
	// Burst of one at 20/s: the second and third calls wait ~50ms each
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestLimitedRespectsContext(t *testing.T) {
	g := NewLimited(NewScripted(1), 0.001, 1)
	_, err := g.React(context.Background(), ReactionRequest{Agent: mira})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = g.React(ctx, ReactionRequest{Agent: mira})
	require.Error(t, err)
}

package testutil

import (
	"context"
	"strings"
	"sync"
)

// FakeEmbedder assigns each distinct lowercase word its own dimension and embeds
// texts as term-count vectors, so cosine similarity tracks shared vocabulary.
type FakeEmbedder struct {
	mu   sync.Mutex
	dims map[string]int
}

func NewFakeEmbedder() *FakeEmbedder {
	return &FakeEmbedder{dims: make(map[string]int)}
}

func (e *FakeEmbedder) ModelName() string { return "fake-embed" }

func (e *FakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text}, taskType)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *FakeEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 128)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?")
			dim, ok := e.dims[word]
			if !ok {
				dim = len(e.dims) % len(vec)
				e.dims[word] = dim
			}
			vec[dim]++
		}
		vecs[i] = vec
	}
	return vecs, nil
}

// FakeGenerator records every prompt it sees and replies with a fixed answer
// or a configured error. A non-nil Gate holds each call until the channel is
// closed or receives, so a turn can be kept in flight.
type FakeGenerator struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Gate    chan struct{}
	Prompts []string
}

func NewFakeGenerator(reply string) *FakeGenerator {
	return &FakeGenerator{Reply: reply}
}

func (g *FakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.Prompts = append(g.Prompts, prompt)
	reply, err, gate := g.Reply, g.Err, g.Gate
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (g *FakeGenerator) PromptCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Prompts)
}

func (g *FakeGenerator) LastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Prompts) == 0 {
		return ""
	}
	return g.Prompts[len(g.Prompts)-1]
}

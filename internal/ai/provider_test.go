package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	gotModel string
	gotTemp  float32
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, model string, prompt string, temperature float32) (string, error) {
	p.gotModel = model
	p.gotTemp = temperature
	return "reply", nil
}

func (p *stubProvider) EmbedBatch(ctx context.Context, model string, texts []string, taskType string) ([][]float32, error) {
	p.gotModel = model
	vecs := make([][]float32, len(texts))
	for i := range vecs {
		vecs[i] = []float32{1}
	}
	return vecs, nil
}

func TestProviderRegistry(t *testing.T) {
	Register("stub", func(args interface{}) (IProvider, error) {
		return &stubProvider{}, nil
	})

	p, err := NewProvider("Stub", nil)
	require.NoError(t, err)
	require.Equal(t, "stub", p.Name())

	_, err = NewProvider("unknown", nil)
	require.Error(t, err)

	_, err = NewProvider("", nil)
	require.Error(t, err)
}

func TestGeneratorBindsModelAndTemperature(t *testing.T) {
	stub := &stubProvider{}
	gen := NewGenerator(stub, "chat-model", 0.5)
	reply, err := gen.Generate(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "reply", reply)
	require.Equal(t, "chat-model", stub.gotModel)
	require.Equal(t, float32(0.5), stub.gotTemp)
}

func TestEmbedderSingleUsesBatch(t *testing.T) {
	stub := &stubProvider{}
	emb := NewEmbedder(stub, "embed-model")
	vec, err := emb.Embed(context.Background(), "text", TaskRetrievalQuery)
	require.NoError(t, err)
	require.Equal(t, []float32{1}, vec)
	require.Equal(t, "embed-model", emb.ModelName())
}

package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/soujanya-006/intervuai/internal/ai"
)

// NoRelevantInfo is returned by Query when the index holds no chunks.
const NoRelevantInfo = "No relevant info"

// Index is a flat in-memory nearest-neighbor structure over chunk embeddings.
// It is rebuilt from scratch for every interview session and owned exclusively
// by that session; nothing is persisted.
type Index struct {
	chunks  []string
	vectors [][]float32
}

// Build embeds every chunk in one batch call and indexes the vectors.
func Build(ctx context.Context, embedder ai.IEmbedder, chunks []string) (*Index, error) {
	kept := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk != "" {
			kept = append(kept, chunk)
		}
	}
	if len(kept) == 0 {
		return &Index{}, nil
	}
	vectors, err := embedder.EmbedBatch(ctx, kept, ai.TaskRetrievalDocument)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(kept) {
		return nil, fmt.Errorf("expected %d vectors, got %d", len(kept), len(vectors))
	}
	logutil.GetLogger(ctx).Info("retrieval index built",
		zap.Int("chunks", len(kept)),
		zap.String("embed_model", embedder.ModelName()),
	)
	return &Index{chunks: kept, vectors: vectors}, nil
}

func (idx *Index) Len() int {
	return len(idx.chunks)
}

// Query embeds the question and returns the topK most similar chunk texts by
// cosine similarity, best first. An empty index yields the NoRelevantInfo
// sentinel instead of an error.
func (idx *Index) Query(ctx context.Context, embedder ai.IEmbedder, question string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 1
	}
	if idx.Len() == 0 {
		return []string{NoRelevantInfo}, nil
	}
	queryVec, err := embedder.Embed(ctx, question, ai.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	order := make([]int, len(idx.vectors))
	scores := make([]float32, len(idx.vectors))
	for i, vec := range idx.vectors {
		order[i] = i
		scores[i] = cosineSimilarity(queryVec, vec)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if topK > len(order) {
		topK = len(order)
	}
	results := make([]string, 0, topK)
	for i := 0; i < topK; i++ {
		j := order[i]
		logutil.GetLogger(ctx).Debug("retrieval match", zap.Int("chunk", j), zap.Float32("score", scores[j]))
		results = append(results, idx.chunks[j])
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

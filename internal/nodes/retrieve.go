package nodes

import (
	"context"

	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/index"
	"rag_reply_bot/internal/logger"
)

// RetrieveNode queries the similarity index for the nearest training
// examples. An empty or absent index yields zero candidates, never an
// error. Candidates scoring below minScore are dropped; zero disables
// the cutoff.
type RetrieveNode struct {
	index      *index.SimilarityIndex
	maxResults int
	minScore   float64
}

// NewRetrieveNode creates the retrieval stage.
func NewRetrieveNode(idx *index.SimilarityIndex, maxResults int, minScore float64) *RetrieveNode {
	return &RetrieveNode{index: idx, maxResults: maxResults, minScore: minScore}
}

func (n *RetrieveNode) GetName() string {
	return "retrieve"
}

func (n *RetrieveNode) Execute(ctx context.Context, state *core.ReplyState) error {
	candidates, err := n.index.Search(ctx, state.Query, n.maxResults)
	if err != nil {
		return err
	}
	if n.minScore > 0 {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.Score >= n.minScore {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	state.Candidates = candidates
	logger.Debug().Int("candidates", len(candidates)).Msg("🔍 Retrieval done")
	return nil
}

package core

import (
	"context"
	"fmt"
	"time"

	"rag_reply_bot/internal/logger"
)

// Pipeline runs the reply stages strictly in sequence. There is no
// branching, no retry and no skip; the first stage error aborts the
// request. Safe to invoke concurrently, each request owns its state.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline over the given stage sequence.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Execute threads a fresh ReplyState through every stage and returns it.
func (p *Pipeline) Execute(ctx context.Context, query, userID string) (*ReplyState, error) {
	startTime := time.Now()
	logger.Debug().Str("user_id", userID).Msg("🚀 Starting reply pipeline")

	state := &ReplyState{
		Query:    query,
		UserID:   userID,
		Metadata: make(map[string]any),
	}

	var executionPath []string
	for _, stage := range p.stages {
		executionPath = append(executionPath, stage.GetName())
		logger.Debug().Str("stage", stage.GetName()).Msg("📍 Executing stage")

		if err := stage.Execute(ctx, state); err != nil {
			logger.Error().Err(err).Str("stage", stage.GetName()).Msg("❌ Stage failed")
			return nil, fmt.Errorf("error executing stage %s: %w", stage.GetName(), err)
		}
	}

	processingTime := time.Since(startTime)
	state.Metadata["execution_path"] = executionPath
	state.Metadata["processing_time_ms"] = processingTime.Milliseconds()

	logger.Debug().
		Str("user_id", userID).
		Bool("fallback", state.IsFallback).
		Dur("took", processingTime).
		Msg("🏁 Reply pipeline completed")

	return state, nil
}

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStage struct {
	name string
	fn   func(*ReplyState) error
}

func (s *fakeStage) GetName() string { return s.name }

func (s *fakeStage) Execute(_ context.Context, state *ReplyState) error {
	if s.fn != nil {
		return s.fn(state)
	}
	return nil
}

func TestStagesRunInOrder(t *testing.T) {
	var order []string
	mk := func(name string) Stage {
		return &fakeStage{name: name, fn: func(*ReplyState) error {
			order = append(order, name)
			return nil
		}}
	}

	p := NewPipeline(mk("first"), mk("second"), mk("third"))
	state, err := p.Execute(context.Background(), "hello", "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, "hello", state.Query)
	assert.Equal(t, "u1", state.UserID)
	assert.Equal(t, []string{"first", "second", "third"}, state.Metadata["execution_path"])
	assert.Contains(t, state.Metadata, "processing_time_ms")
}

func TestFirstErrorAborts(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	p := NewPipeline(
		&fakeStage{name: "ok", fn: func(*ReplyState) error { ran = append(ran, "ok"); return nil }},
		&fakeStage{name: "bad", fn: func(*ReplyState) error { ran = append(ran, "bad"); return boom }},
		&fakeStage{name: "never", fn: func(*ReplyState) error { ran = append(ran, "never"); return nil }},
	)

	state, err := p.Execute(context.Background(), "q", "u1")
	require.Error(t, err)
	assert.Nil(t, state)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "error executing stage bad")
	assert.Equal(t, []string{"ok", "bad"}, ran)
}

func TestStateSharedAcrossStages(t *testing.T) {
	p := NewPipeline(
		&fakeStage{name: "detect", fn: func(s *ReplyState) error { s.Language = "en"; return nil }},
		&fakeStage{name: "generate", fn: func(s *ReplyState) error {
			if s.Language != "en" {
				return errors.New("language not propagated")
			}
			s.Reply = "hi!"
			return nil
		}},
	)

	state, err := p.Execute(context.Background(), "q", "u1")
	require.NoError(t, err)
	assert.Equal(t, "hi!", state.Reply)
}

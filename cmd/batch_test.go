package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimlens/claimlens/internal/model"
)

func TestReadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	content := `# comment line
https://example.com/article

the earth is flat
  http://news.example/post
plain claim with spaces
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	inputs, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, inputs, 4)

	assert.Equal(t, model.InputKindURL, inputs[0].Kind)
	assert.Equal(t, "https://example.com/article", inputs[0].URL)
	assert.Equal(t, model.InputKindText, inputs[1].Kind)
	assert.Equal(t, "the earth is flat", inputs[1].Text)
	assert.Equal(t, model.InputKindURL, inputs[2].Kind)
	assert.Equal(t, "http://news.example/post", inputs[2].URL)
	assert.Equal(t, model.InputKindText, inputs[3].Kind)
}

func TestReadBatchFileMissing(t *testing.T) {
	_, err := readBatchFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLineToInput(t *testing.T) {
	assert.Equal(t, model.InputKindURL, lineToInput("https://example.com").Kind)
	assert.Equal(t, model.InputKindURL, lineToInput("http://example.com").Kind)
	assert.Equal(t, model.InputKindText, lineToInput("httpish but not a url").Kind)
	assert.Equal(t, model.InputKindText, lineToInput("some claim").Kind)
}

func TestProcessBatchEmpty(t *testing.T) {
	var calls atomic.Int64
	err := processBatch(context.Background(), nil, 3, func(context.Context, model.AnalysisInput) (*model.Analysis, error) {
		calls.Add(1)
		return nil, nil
	})
	assert.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func TestProcessBatchContinuesOnFailure(t *testing.T) {
	inputs := []model.AnalysisInput{
		{Kind: model.InputKindText, Text: "a"},
		{Kind: model.InputKindText, Text: "fail"},
		{Kind: model.InputKindText, Text: "b"},
	}

	var calls atomic.Int64
	err := processBatch(context.Background(), inputs, 2, func(_ context.Context, input model.AnalysisInput) (*model.Analysis, error) {
		calls.Add(1)
		if input.Text == "fail" {
			return nil, errors.New("boom")
		}
		return &model.Analysis{StatusText: model.StatusReal}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load())
}

func TestProcessBatchBoundedConcurrency(t *testing.T) {
	inputs := make([]model.AnalysisInput, 20)
	for i := range inputs {
		inputs[i] = model.AnalysisInput{Kind: model.InputKindText, Text: "claim"}
	}

	var inFlight, peak atomic.Int64
	err := processBatch(context.Background(), inputs, 3, func(context.Context, model.AnalysisInput) (*model.Analysis, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer inFlight.Add(-1)
		return &model.Analysis{}, nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(3))
}

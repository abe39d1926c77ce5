package postprocess

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLineEndings(t *testing.T) {
	tests := map[string]string{
		"a\r\nb\r\nc": "a\nb\nc",
		"a\rb":        "a\nb",
		"a\n\r\nb":    "a\n\nb",
		"plain":       "plain",
		"":            "",
	}

	for in, want := range tests {
		got, err := NormalizeLineEndings(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%q", in)
	}
}

func TestStripControl(t *testing.T) {
	got, err := StripControl(context.Background(), "a\x00b\tc\nd\x1be\x7ffé")
	require.NoError(t, err)
	assert.Equal(t, "ab\tc\ndefé", got)
}

func TestTrimTrailingNewline(t *testing.T) {
	got, err := TrimTrailingNewline(context.Background(), "ls -la\r\n\n")
	require.NoError(t, err)
	assert.Equal(t, "ls -la", got)
}

func TestPipelineOrder(t *testing.T) {
	p := NewPipeline(NormalizeLineEndings, StripControl)
	p.AddProcessor(func(ctx context.Context, text string) (string, error) {
		return strings.ToUpper(text), nil
	})
	assert.Equal(t, 3, p.Len())

	got, err := p.Process(context.Background(), "a\r\nb\x07")
	require.NoError(t, err)
	assert.Equal(t, "A\nB", got)
}

func TestPipelineStopsOnError(t *testing.T) {
	called := false
	p := NewPipeline(
		func(ctx context.Context, text string) (string, error) { return "", errors.New("bad input") },
		func(ctx context.Context, text string) (string, error) { called = true; return text, nil },
	)

	_, err := p.Process(context.Background(), "x")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(StripControl).Process(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

package pool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeTask struct {
	n int
}

func (t *rangeTask) Execute(ctx context.Context, stream *Stream[int]) error {
	for i := 0; i < t.n; i++ {
		if err := stream.Emit(ctx, i); err != nil {
			return err
		}
	}

	return nil
}

func TestSubmitStream_Emits(t *testing.T) {
	p, err := NewPool(2)
	require.NoError(t, err)
	defer p.Shutdown()

	stream, err := SubmitStream[int](context.Background(), p, &rangeTask{n: 5}, 1)
	require.NoError(t, err)

	var got []int
	for v := range stream.Values() {
		got = append(got, v)
	}

	require.NoError(t, stream.Wait(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

type failingStreamTask struct{}

func (failingStreamTask) Execute(ctx context.Context, stream *Stream[int]) error {
	if err := stream.Emit(ctx, 1); err != nil {
		return err
	}

	return errors.New("stream failed midway")
}

func TestSubmitStream_PropagatesError(t *testing.T) {
	p, err := NewPool(1)
	require.NoError(t, err)
	defer p.Shutdown()

	stream, err := SubmitStream[int](context.Background(), p, failingStreamTask{}, 1)
	require.NoError(t, err)

	var got []int
	for v := range stream.Values() {
		got = append(got, v)
	}

	err = stream.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream failed midway")
	assert.Equal(t, []int{1}, got)
}

package besteffort

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CollectsEveryOutcome(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")

	out := Run(context.Background(), []string{"a", "b", "c"}, func(_ context.Context, s string) error {
		calls.Add(1)
		if s == "a" {
			return boom
		}
		return nil
	})

	require.Len(t, out, 3)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "a", out[0].Item)
	assert.ErrorIs(t, out[0].Err, boom)
	assert.NoError(t, out[1].Err)
	assert.NoError(t, out[2].Err)

	failed := Failed(out)
	require.Len(t, failed, 1)
	assert.Equal(t, "a", failed[0].Item)
}

func TestRun_Empty(t *testing.T) {
	out := Run(context.Background(), nil, func(context.Context, int) error {
		t.Fatal("must not be called")
		return nil
	})
	assert.Empty(t, out)
	assert.Empty(t, Failed(out))
}

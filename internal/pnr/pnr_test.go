package pnr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/stretchr/testify/assert"
)

func neverExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestGenerator_PNR_Format(t *testing.T) {
	gen := NewGenerator(0)

	code, err := gen.PNR(context.Background(), neverExists)
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerator_PNR_RetriesOnCollision(t *testing.T) {
	gen := NewGenerator(5)

	calls := 0
	exists := func(context.Context, string) (bool, error) {
		calls++
		return calls <= 2, nil
	}

	code, err := gen.PNR(context.Background(), exists)
	assert.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, calls)
}

func TestGenerator_PNR_ExhaustsRetries(t *testing.T) {
	gen := NewGenerator(4)

	calls := 0
	alwaysTaken := func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := gen.PNR(context.Background(), alwaysTaken)
	assert.Error(t, err)
	assert.Equal(t, domain.KindExhaustedRetries, domain.KindOf(err))
	assert.Equal(t, 4, calls)
}

func TestGenerator_PNR_StoreError(t *testing.T) {
	gen := NewGenerator(3)

	storeErr := errors.New("store unavailable")
	exists := func(context.Context, string) (bool, error) {
		return false, storeErr
	}

	_, err := gen.PNR(context.Background(), exists)
	assert.Error(t, err)
	assert.Equal(t, domain.KindServer, domain.KindOf(err))
	assert.ErrorIs(t, err, storeErr)
}

func TestGenerator_BoardingPass_FlightPrefix(t *testing.T) {
	gen := NewGenerator(0)

	bp, err := gen.BoardingPass(context.Background(), "FL123", neverExists)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(bp, "FL123-"))

	suffix := strings.TrimPrefix(bp, "FL123-")
	assert.Len(t, suffix, 6)
	for _, r := range suffix {
		assert.Contains(t, digits, string(r))
	}
}

func TestGenerator_PNR_Uniqueness(t *testing.T) {
	gen := NewGenerator(0)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := gen.PNR(context.Background(), neverExists)
		assert.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

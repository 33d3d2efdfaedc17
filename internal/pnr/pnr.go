// Package pnr issues booking references and boarding-pass numbers. The
// pre-check against the store is advisory only; the storage layer's unique
// constraints are what actually guarantee uniqueness at insert time.
package pnr

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/avelora/flightreserve/internal/domain"
)

// ExistsFunc reports whether a candidate code is already assigned.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

const (
	codeLength = 6
	// No 0/O/1/I, these get misread over the phone.
	alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	digits   = "0123456789"

	DefaultRetryLimit = 20
)

type Generator struct {
	retryLimit int
}

func NewGenerator(retryLimit int) *Generator {
	if retryLimit <= 0 {
		retryLimit = DefaultRetryLimit
	}
	return &Generator{retryLimit: retryLimit}
}

// PNR returns a booking reference unused at the moment of the check. The
// retry limit is generous: 32^6 candidates make exhaustion a sign of a
// broken generator or store, not contention.
func (g *Generator) PNR(ctx context.Context, exists ExistsFunc) (string, error) {
	return g.generate(ctx, exists, func() (string, error) {
		return randomString(alphabet, codeLength)
	})
}

// BoardingPass returns a boarding-pass number prefixed with the flight number
// for operational lookup. Uniqueness is still global.
func (g *Generator) BoardingPass(ctx context.Context, flightNumber string, exists ExistsFunc) (string, error) {
	return g.generate(ctx, exists, func() (string, error) {
		suffix, err := randomString(digits, codeLength)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%s", flightNumber, suffix), nil
	})
}

func (g *Generator) generate(ctx context.Context, exists ExistsFunc, candidate func() (string, error)) (string, error) {
	for attempt := 0; attempt < g.retryLimit; attempt++ {
		code, err := candidate()
		if err != nil {
			return "", domain.ServerError("failed to generate identifier", err)
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", domain.ServerError("failed to check identifier uniqueness", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", domain.ExhaustedRetriesf("could not find a unique identifier after %d attempts", g.retryLimit)
}

func randomString(charset string, n int) (string, error) {
	out := make([]byte, n)
	bound := big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return "", err
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}

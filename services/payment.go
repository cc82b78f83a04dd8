package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bookstore-service/models"

	"github.com/shopspring/decimal"
)

// PaymentGateway authorizes a charge. A false result with a nil error is a
// decline.
type PaymentGateway interface {
	Authorize(ctx context.Context, method string, amount decimal.Decimal) (bool, error)
}

// SimulatedGateway approves recognised methods at random and declines
// anything else.
type SimulatedGateway struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(src rand.Source) *SimulatedGateway {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &SimulatedGateway{rng: rand.New(src)}
}

func (g *SimulatedGateway) Authorize(_ context.Context, method string, _ decimal.Decimal) (bool, error) {
	if !KnownPaymentMethod(method) {
		return false, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(2) == 1, nil
}

func KnownPaymentMethod(method string) bool {
	for _, m := range models.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeResult is the gateway's acknowledgment of a settled charge.
type ChargeResult struct {
	OrderID     string
	ProcessedAt time.Time
}

// Gateway settles a single charge. A real payment provider client can be
// dropped in behind this interface without changing the batch contract.
type Gateway interface {
	Charge(ctx context.Context, orderID string, amount decimal.Decimal, method string) (*ChargeResult, error)
}

// SimulatedGateway stands in for a real payment gateway by sleeping for a
// fixed delay and accepting every charge.
type SimulatedGateway struct {
	delay time.Duration
}

// NewSimulatedGateway creates a simulated gateway with the given settlement
// delay.
func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay}
}

// NewSimulatedGatewayFromEnv reads PAYMENT_DELAY_MS (default 2000).
func NewSimulatedGatewayFromEnv() *SimulatedGateway {
	delay := 2 * time.Second
	if v := os.Getenv("PAYMENT_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			delay = time.Duration(ms) * time.Millisecond
		}
	}
	return NewSimulatedGateway(delay)
}

// Charge waits out the settlement delay and reports success.
func (g *SimulatedGateway) Charge(ctx context.Context, orderID string, amount decimal.Decimal, method string) (*ChargeResult, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &ChargeResult{OrderID: orderID, ProcessedAt: time.Now()}, nil
}

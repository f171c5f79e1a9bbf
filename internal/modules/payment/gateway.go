package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Status is the normalized outcome of a payment confirmation.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
)

// Result reports the outcome of confirming an intent. Amount is the
// processor's authoritative charged amount; order totals come from here.
type Result struct {
	IntentRef string  `json:"intent_ref"`
	Status    Status  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Message   string  `json:"message,omitempty"`
}

// Gateway is the processor-agnostic interface the checkout flow talks to.
// To add a new processor, implement this interface.
type Gateway interface {
	// CreateIntent registers a pending charge with the processor and
	// returns its reference.
	CreateIntent(ctx context.Context, amount float64, currency string) (string, error)

	// Confirm settles the intent and reports CONFIRMED or DECLINED.
	Confirm(ctx context.Context, intentRef string) (*Result, error)
}

// ── Card processor adapter ────────────────────────────────────────────────────
// In production, replace the stub methods with actual card-processor API
// calls (Stripe PaymentIntents: POST /v1/payment_intents, then
// POST /v1/payment_intents/{id}/confirm, authenticated with the secret key).

type cardGateway struct {
	apiKey string
	env    string // sandbox | production

	mu      sync.Mutex
	intents map[string]intent
}

type intent struct {
	amount   float64
	currency string
}

// NewCardGateway creates the card processor adapter. In the sandbox
// environment intents are settled in-process: any amount whose cent value is
// 13 is declined, everything else is confirmed.
func NewCardGateway(apiKey, env string) Gateway {
	return &cardGateway{
		apiKey:  apiKey,
		env:     env,
		intents: make(map[string]intent),
	}
}

func (g *cardGateway) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be greater than 0")
	}
	if currency == "" {
		return "", fmt.Errorf("currency is required")
	}

	ref := "pi_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:24]

	g.mu.Lock()
	g.intents[ref] = intent{amount: amount, currency: strings.ToUpper(currency)}
	g.mu.Unlock()

	return ref, nil
}

func (g *cardGateway) Confirm(ctx context.Context, intentRef string) (*Result, error) {
	g.mu.Lock()
	in, ok := g.intents[intentRef]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown payment intent: %s", intentRef)
	}

	cents := int(in.amount*100+0.5) % 100
	if cents == 13 {
		return &Result{
			IntentRef: intentRef,
			Status:    StatusDeclined,
			Amount:    in.amount,
			Currency:  in.currency,
			Message:   "card declined",
		}, nil
	}

	return &Result{
		IntentRef: intentRef,
		Status:    StatusConfirmed,
		Amount:    in.amount,
		Currency:  in.currency,
		Message:   "payment confirmed",
	}, nil
}

package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"go.uber.org/zap"
)

// Intent — то, что нужно чекауту от шлюза: id интента и client secret
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentGateway абстрагирует платёжный шлюз; боевая реализация — Stripe
type IntentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, meta map[string]string) (Intent, error)
}

type StripeGateway struct {
	sc  *client.API
	log *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{sc: sc, log: log}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, meta map[string]string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range meta {
		params.AddMetadata(k, v)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe create payment intent: %w", err)
	}

	g.log.Info("payment intent created",
		zap.String("intent_id", pi.ID),
		zap.Int64("amount_cents", amountCents),
		zap.String("currency", currency))

	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

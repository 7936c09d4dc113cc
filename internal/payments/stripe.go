package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// IntentCreator requests a payment client secret for an amount in minor
// currency units.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// StripeIntents creates usd payment intents with automatic payment methods.
type StripeIntents struct {
	api *client.API
}

func NewStripeIntents(secretKey string) *StripeIntents {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeIntents{api: api}
}

func (s *StripeIntents) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

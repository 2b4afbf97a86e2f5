package services

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// PaymentGateway creates charge intents with the external processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountInCents int64) (clientSecret string, err error)
}

// StripeGateway is the production gateway. All charges are card
// payments in USD.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway() *StripeGateway {
	api := &client.API{}
	api.Init(os.Getenv("STRIPE_SECRET_KEY"), nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(_ context.Context, amountInCents int64) (string, error) {
	intent, err := g.api.PaymentIntents.New(&stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountInCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	})
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
	"github.com/trendzapp/trendz-backend/pkg/metrics"
)

var hundred = decimal.NewFromInt(100)

// Service creates card payment intents against the gateway. Intents are not
// persisted or reconciled against orders; the caller only gets the client
// secret back.
type Service interface {
	CreatePaymentIntent(ctx context.Context, price decimal.Decimal) (string, error)
}

type service struct {
	client  StripeIntentClient
	metrics *metrics.HTTPMetrics
}

// NewService builds a payment service backed by the provided gateway client.
func NewService(client StripeIntentClient, m *metrics.HTTPMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("stripe client required")
	}
	return &service{client: client, metrics: m}, nil
}

// CreatePaymentIntent converts the decimal price to the smallest currency
// unit by truncating price*100 and requests a USD card intent.
func (s *service) CreatePaymentIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	if price.IsNegative() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	amount := AmountInCents(price)

	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}

	intent, err := s.client.Create(ctx, params)
	if err != nil {
		s.metrics.IncPaymentIntent("error")
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
	}

	s.metrics.IncPaymentIntent("created")
	return intent.ClientSecret, nil
}

// AmountInCents truncates price*100 toward zero; 19.999 becomes 1999.
func AmountInCents(price decimal.Decimal) int64 {
	return price.Mul(hundred).IntPart()
}

package payments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"

	"github.com/hearthside/events-api/internal/config"
)

// StatusPaid is Stripe's settled payment status on a checkout session.
const StatusPaid = "paid"

// CheckoutSession is the slice of a Stripe checkout session the services
// care about.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

type CheckoutParams struct {
	UserID   uint
	RaffleID uint
	Quantity int
}

type StripeProvider struct {
	conf *config.StripeConfig
}

func NewStripeProvider(conf *config.StripeConfig) *StripeProvider {
	stripe.Key = conf.SecretKey

	return &StripeProvider{
		conf: conf,
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, in CheckoutParams) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.conf.Currency),
					UnitAmount: stripe.Int64(p.conf.TicketPriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Raffle ticket"),
					},
				},
				Quantity: stripe.Int64(int64(in.Quantity)),
			},
		},
		SuccessURL: stripe.String(p.conf.SuccessURL),
		CancelURL:  stripe.String(p.conf.CancelURL),
	}
	params.AddMetadata("userId", strconv.FormatUint(uint64(in.UserID), 10))
	params.AddMetadata("raffleId", strconv.FormatUint(uint64(in.RaffleID), 10))
	params.AddMetadata("quantity", strconv.Itoa(in.Quantity))

	sess, err := session.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("session.New -> %w", err)
	}

	return fromStripe(sess), nil
}

func (p *StripeProvider) GetCheckoutSession(ctx context.Context, id string) (CheckoutSession, error) {
	sess, err := session.Get(id, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
	})
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("session.Get -> %w", err)
	}

	return fromStripe(sess), nil
}

func fromStripe(sess *stripe.CheckoutSession) CheckoutSession {
	return CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		Metadata:      sess.Metadata,
	}
}

// Package paymentprovider клиент Stripe: сессии оплаты подписки и разбор вебхуков.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/magabrotheeeer/itlearnpro/internal/config"
)

type Client struct {
	api *client.API
	cfg config.Stripe
}

// NewClient создаёт клиент Stripe. backends nil означает боевые адреса Stripe.
func NewClient(cfg config.Stripe, backends *stripe.Backends) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, backends)
	return &Client{
		api: api,
		cfg: cfg,
	}
}

// CreateCheckoutSession создаёт сессию ежемесячной подписки и возвращает URL оплаты.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	const op = "paymentprovider.CreateCheckoutSession"
	metadata := map[string]string{
		MetadataUserUID: req.UserUID,
		MetadataBranch:  req.Branch,
	}
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Accès Premium - " + req.Branch),
					},
					UnitAmount: stripe.Int64(c.cfg.PriceCents),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.URL, nil
}

// ParseWebhook проверяет подпись Stripe-Signature и разбирает событие.
// Для неизвестных типов заполняются только ID и Type.
func (c *Client) ParseWebhook(payload []byte, signature string) (*Event, error) {
	const op = "paymentprovider.ParseWebhook"
	ev, err := webhook.ConstructEventWithOptions(payload, signature, c.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidSignature, err)
	}

	out := &Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil {
		return out, nil
	}

	switch out.Type {
	case EventCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out.UserUID = sess.Metadata[MetadataUserUID]
		out.Branch = sess.Metadata[MetadataBranch]
		if sess.Customer != nil && sess.Customer.ID != "" {
			out.CustomerID = stripe.String(sess.Customer.ID)
		}
		if sess.Subscription != nil && sess.Subscription.ID != "" {
			out.SubscriptionID = stripe.String(sess.Subscription.ID)
		}
	case EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out.SubscriptionID = stripe.String(sub.ID)
		out.UserUID = sub.Metadata[MetadataUserUID]
		out.Branch = sub.Metadata[MetadataBranch]
		if sub.Customer != nil && sub.Customer.ID != "" {
			out.CustomerID = stripe.String(sub.Customer.ID)
		}
	}
	return out, nil
}

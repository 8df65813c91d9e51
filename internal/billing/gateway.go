// Package billing is the gateway to the billing provider. Customers are
// keyed by the customer id stored on the user record; nothing billing-side
// is authoritative for authentication.
package billing

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	dErrors "sessiongate/pkg/domain-errors"
)

// Plan describes the customer's single active subscription.
type Plan struct {
	Label      string `json:"label"`
	Product    string `json:"product"`
	AmountCent int64  `json:"amount_cent"`
	Currency   string `json:"currency"`
	Interval   string `json:"interval"`
}

// Gateway is the narrow contract handlers depend on.
type Gateway interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	UpdateCustomerEmail(ctx context.Context, customerID, email string) error
	CreateSubscription(ctx context.Context, customerID, priceID string) (string, error)
	PortalLink(ctx context.Context, customerID, returnURL string) (string, error)
	ActivePlan(ctx context.Context, customerID string) (*Plan, error)
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	api    *client.API
	tracer trace.Tracer
}

// NewStripe constructs a StripeGateway. backends may be nil outside tests.
func NewStripe(secretKey string, backends *stripe.Backends) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeGateway{
		api:    api,
		tracer: otel.Tracer("sessiongate/billing"),
	}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	ctx, span := g.span(ctx, "billing.create_customer")
	defer span.End()

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", g.fail(span, err, "create billing customer")
	}
	return customer.ID, nil
}

func (g *StripeGateway) DeleteCustomer(ctx context.Context, customerID string) error {
	ctx, span := g.span(ctx, "billing.delete_customer")
	defer span.End()

	params := &stripe.CustomerParams{}
	params.Context = ctx
	deleted, err := g.api.Customers.Del(customerID, params)
	if err != nil {
		return g.fail(span, err, "delete billing customer")
	}
	if !deleted.Deleted {
		return dErrors.Newf(dErrors.CodeInternal, "billing customer %s not deleted", customerID)
	}
	return nil
}

func (g *StripeGateway) UpdateCustomerEmail(ctx context.Context, customerID, email string) error {
	ctx, span := g.span(ctx, "billing.update_customer_email")
	defer span.End()

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	updated, err := g.api.Customers.Update(customerID, params)
	if err != nil {
		return g.fail(span, err, "update billing customer email")
	}
	if updated.Email != email {
		return dErrors.Newf(dErrors.CodeInternal, "billing customer %s email not updated", customerID)
	}
	return nil
}

func (g *StripeGateway) CreateSubscription(ctx context.Context, customerID, priceID string) (string, error) {
	ctx, span := g.span(ctx, "billing.create_subscription")
	defer span.End()

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	params.Context = ctx
	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return "", g.fail(span, err, "create subscription")
	}
	return sub.ID, nil
}

func (g *StripeGateway) PortalLink(ctx context.Context, customerID, returnURL string) (string, error) {
	ctx, span := g.span(ctx, "billing.portal_link")
	defer span.End()

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	portal, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", g.fail(span, err, "create billing portal session")
	}
	if portal.URL == "" {
		return "", dErrors.New(dErrors.CodeInternal, "billing portal session has no URL")
	}
	return portal.URL, nil
}

// ActivePlan resolves the customer's single active subscription into a
// display label. Price and product details are fetched in parallel.
func (g *StripeGateway) ActivePlan(ctx context.Context, customerID string) (*Plan, error) {
	ctx, span := g.span(ctx, "billing.active_plan")
	defer span.End()

	listParams := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := g.api.Subscriptions.List(listParams)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return nil, g.fail(span, err, "list subscriptions")
		}
		return nil, dErrors.New(dErrors.CodeNotFound, "Subscription not found")
	}
	sub := iter.Subscription()
	if sub.Items == nil || len(sub.Items.Data) == 0 ||
		sub.Items.Data[0].Price == nil || sub.Items.Data[0].Price.Product == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "Subscription not found")
	}

	priceID := sub.Items.Data[0].Price.ID
	productID := sub.Items.Data[0].Price.Product.ID

	var (
		price   *stripe.Price
		product *stripe.Product
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		params := &stripe.PriceParams{}
		params.Context = egCtx
		var err error
		price, err = g.api.Prices.Get(priceID, params)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "Plan not found")
		}
		return nil
	})
	eg.Go(func() error {
		params := &stripe.ProductParams{}
		params.Context = egCtx
		var err error
		product, err = g.api.Products.Get(productID, params)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "Product not found")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	interval := ""
	if price.Recurring != nil {
		interval = string(price.Recurring.Interval)
	}
	plan := &Plan{
		Product:    product.Name,
		AmountCent: price.UnitAmount,
		Currency:   string(price.Currency),
		Interval:   interval,
	}
	plan.Label = planLabel(plan)
	return plan, nil
}

// planLabel renders the "<product> ･ $<dollars>/<interval>" display string.
func planLabel(p *Plan) string {
	symbol := p.Currency
	if p.Currency == "usd" {
		symbol = "$"
	}
	interval := p.Interval
	switch p.Interval {
	case "month":
		interval = "mo"
	case "year":
		interval = "yr"
	}
	dollars := int64(math.Round(float64(p.AmountCent) / 100))
	return fmt.Sprintf("%s ･ %s%d/%s", p.Product, symbol, dollars, interval)
}

func (g *StripeGateway) span(ctx context.Context, name string) (context.Context, trace.Span) {
	return g.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
}

func (g *StripeGateway) fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	if stripeErr, ok := err.(*stripe.Error); ok {
		return dErrors.Wrap(err, codeForStripe(stripeErr), stripeErr.Msg)
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
}

func codeForStripe(err *stripe.Error) dErrors.Code {
	switch err.HTTPStatusCode {
	case 400:
		return dErrors.CodeBadRequest
	case 401, 403:
		return dErrors.CodeForbidden
	case 404:
		return dErrors.CodeNotFound
	default:
		return dErrors.CodeUnavailable
	}
}

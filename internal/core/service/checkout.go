package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/niksmo/pharmacy/internal/core/service")

func (s Service) Quote(
	ctx context.Context, sessionID string,
) (domain.Quote, error) {
	sess, err := s.session(ctx, "Service.Quote", sessionID)
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.QuoteCart(sess.Cart.State(), s.pricing), nil
}

// Checkout turns the cart into a pending order.
//
// The form is validated before the cart is touched. The cart is emptied in
// the same step its lines are read, and the order is priced from those
// lines. The order is added to the history only for a signed-in shopper. A
// failed order event is logged and does not fail the checkout.
func (s Service) Checkout(
	ctx context.Context, sessionID string, form domain.CheckoutForm,
) (domain.Order, error) {
	const op = "Service.Checkout"
	log := slog.With("op", op)

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	order, err := s.placeOrder(ctx, op, sessionID, form)
	if err != nil {
		failSpan(span, err, "checkout rejected")
		return domain.Order{}, err
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.total", order.Total.StringFixed(2)),
		attribute.Int("order.items", len(order.Items)),
	)
	log.Info("order placed", "orderID", order.ID, "total", order.Total.StringFixed(2))

	if s.publisher != nil {
		if err := s.publisher.PublishOrder(ctx, sessionID, order); err != nil {
			failSpan(span, err, "order event not published")
			log.Error("failed to publish order", "err", err)
		}
	}
	return order, nil
}

func (s Service) placeOrder(
	ctx context.Context, op, sessionID string, form domain.CheckoutForm,
) (domain.Order, error) {
	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := form.Validate(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	cart := sess.Cart.Take()
	if cart.Empty() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	quote := domain.QuoteCart(cart, s.pricing)
	order := domain.Order{
		ID:              s.newCode("ORD"),
		Date:            s.now().Format(time.DateOnly),
		Status:          domain.OrderPending,
		Items:           domain.OrderItemsFromCart(cart),
		Total:           quote.Total,
		ShippingAddress: form.Address.ShippingLine(),
		TrackingNumber:  s.newCode("TRK"),
	}

	if sess.Auth.State().Authenticated() {
		sess.Auth.AddOrder(order)
	}
	return order, nil
}

func failSpan(span trace.Span, err error, description string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
}

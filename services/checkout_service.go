package services

import (
	"context"
	"time"

	"bookstore-service/common/logger"
	"bookstore-service/models"
	aws_pkg "bookstore-service/pkg/aws"
	"bookstore-service/repository"

	"go.uber.org/zap"
)

const (
	MsgNotLoggedIn        = "You are not logged in. Please sign in to check out."
	MsgCartEmpty          = "Your cart is empty. Please add items to your cart."
	MsgCartUnavailable    = "None of the books in your cart are available anymore."
	MsgPaymentDeclined    = "Your payment was declined. Please try again or choose another payment method."
	MsgPaymentUnavailable = "Payment could not be processed right now. Please try again."
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

type CheckoutResult struct {
	Order       *models.Order
	Unavailable int
}

// CheckoutService turns a session cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, sess *models.Session, form *models.CheckoutForm) (*CheckoutResult, *ServiceError)
}

type checkoutServiceImpl struct {
	books   repository.BookRepository
	orders  repository.OrderRepository
	payment PaymentGateway
	events  eventPublisher
	now     Clock
	logger  *zap.Logger
}

func NewCheckoutService(
	books repository.BookRepository,
	orders repository.OrderRepository,
	payment PaymentGateway,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	clock Clock,
	logger *zap.Logger,
) CheckoutService {
	if clock == nil {
		clock = time.Now
	}
	return &checkoutServiceImpl{
		books:   books,
		orders:  orders,
		payment: payment,
		events:  eventPublisher{client: snsClient, topicArn: snsTopicArn, logger: logger},
		now:     clock,
		logger:  logger,
	}
}

// Checkout prices the cart at current catalog prices, authorizes payment and
// writes the order. The cart is cleared only when the order is stored.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, sess *models.Session, form *models.CheckoutForm) (*CheckoutResult, *ServiceError) {
	if !sess.Identified() {
		return nil, newError(401, MsgNotLoggedIn)
	}
	cart := sess.CartItems()
	if len(cart) == 0 {
		return nil, badRequest(MsgCartEmpty)
	}

	view, err := resolveCart(ctx, s.books, cart)
	if err != nil {
		s.logger.Error("Failed to resolve cart at checkout", logger.RequestIDField(ctx), zap.Error(err))
		return nil, internal("Failed to load your cart")
	}
	if view.Unavailable > 0 {
		s.logger.Warn("Dropping unavailable cart entries at checkout",
			zap.String("user_email", sess.UserEmail),
			zap.Int("unavailable", view.Unavailable),
		)
	}
	if view.Empty() {
		return nil, newError(409, MsgCartUnavailable)
	}

	approved, err := s.payment.Authorize(ctx, form.PaymentMethod, view.Total)
	if err != nil {
		s.logger.Error("Payment authorization failed", zap.String("method", form.PaymentMethod), zap.Error(err))
		return nil, newError(502, MsgPaymentUnavailable)
	}
	if !approved {
		s.logger.Info("Payment declined",
			zap.String("user_email", sess.UserEmail),
			zap.String("method", form.PaymentMethod),
			zap.String("total", view.Total.StringFixed(2)),
		)
		return nil, newError(402, MsgPaymentDeclined)
	}

	order := &models.Order{
		UserEmail:   sess.UserEmail,
		Status:      models.OrderStatusPending,
		TotalAmount: view.Total,
		CreatedAt:   s.now(),
	}
	items := make([]models.OrderItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, models.OrderItem{
			BookID:   line.Book.ID,
			Quantity: 1,
			Price:    line.Book.Price,
		})
	}
	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		s.logger.Error("Failed to store order", zap.String("user_email", sess.UserEmail), zap.Error(err))
		return nil, internal("Failed to place your order")
	}

	sess.ClearCart()

	s.logger.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.String("user_email", order.UserEmail),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(items)),
		zap.String("delivery_method", form.DeliveryMethod),
	)
	s.events.publish(ctx, EventOrderPlaced, OrderPlacedEvent{
		Event:          EventOrderPlaced,
		OrderID:        order.ID,
		UserEmail:      order.UserEmail,
		TotalAmount:    order.TotalAmount,
		ItemCount:      len(items),
		DeliveryMethod: form.DeliveryMethod,
		PaymentMethod:  form.PaymentMethod,
		Timestamp:      order.CreatedAt,
	})

	return &CheckoutResult{Order: order, Unavailable: view.Unavailable}, nil
}

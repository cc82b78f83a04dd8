package services

import (
	"context"
	"time"

	"bookstore-service/models"
	aws_pkg "bookstore-service/pkg/aws"
	"bookstore-service/repository"

	"go.uber.org/zap"
)

const (
	MsgOrderNotFound     = "Order not found"
	MsgOrderItemNotFound = "Order item not found"
	MsgReturnExpired     = "The return window has expired. You cannot return this item."
	MsgReturnDuplicate   = "A return has already been requested for this item."
	MsgReturnSubmitted   = "Your return request has been successfully submitted. A return label has been generated."
)

// OrderService exposes a user's order history and the return workflow.
// Orders are only visible to the user who placed them.
type OrderService interface {
	ListOrders(ctx context.Context, email string) ([]models.Order, *ServiceError)
	GetOrder(ctx context.Context, email string, orderID uint) (*models.OrderDetails, *ServiceError)
	GetReturnRequest(ctx context.Context, email string, itemID uint) (*models.ReturnRequest, *ServiceError)
	RequestReturn(ctx context.Context, email string, itemID uint) (*models.ReturnRequest, *ServiceError)
}

type orderServiceImpl struct {
	orders repository.OrderRepository
	books  repository.BookRepository
	events eventPublisher
	now    Clock
	logger *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	books repository.BookRepository,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	clock Clock,
	logger *zap.Logger,
) OrderService {
	if clock == nil {
		clock = time.Now
	}
	return &orderServiceImpl{
		orders: orders,
		books:  books,
		events: eventPublisher{client: snsClient, topicArn: snsTopicArn, logger: logger},
		now:    clock,
		logger: logger,
	}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, email string) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindByUser(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.String("user_email", email), zap.Error(err))
		return nil, internal("Failed to load your orders")
	}
	return orders, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, email string, orderID uint) (*models.OrderDetails, *ServiceError) {
	order, svcErr := s.ownedOrder(ctx, email, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	books, svcErr := s.booksFor(ctx, order.Items)
	if svcErr != nil {
		return nil, svcErr
	}

	now := s.now()
	details := &models.OrderDetails{Order: *order}
	for _, item := range order.Items {
		details.Lines = append(details.Lines, s.line(order, item, books, now))
	}
	return details, nil
}

func (s *orderServiceImpl) GetReturnRequest(ctx context.Context, email string, itemID uint) (*models.ReturnRequest, *ServiceError) {
	req, svcErr := s.returnable(ctx, email, itemID)
	if svcErr != nil {
		return nil, svcErr
	}
	return req, nil
}

// RequestReturn flags an eligible item. The flag is never cleared.
func (s *orderServiceImpl) RequestReturn(ctx context.Context, email string, itemID uint) (*models.ReturnRequest, *ServiceError) {
	req, svcErr := s.returnable(ctx, email, itemID)
	if svcErr != nil {
		return nil, svcErr
	}

	now := s.now()
	if err := s.orders.MarkReturnRequested(ctx, itemID, now); err != nil {
		if isNotFound(err) {
			return nil, newError(409, MsgReturnDuplicate)
		}
		s.logger.Error("Failed to request return", zap.Uint("order_item_id", itemID), zap.Error(err))
		return nil, internal("Failed to submit your return request")
	}
	req.Line.Item.ReturnRequested = true
	req.Line.Item.ReturnDate = &now
	req.Line.Return = models.ReturnReturned

	s.logger.Info("Return requested",
		zap.Uint("order_id", req.Order.ID),
		zap.Uint("order_item_id", itemID),
		zap.String("user_email", email),
	)
	s.events.publish(ctx, EventReturnRequested, ReturnRequestedEvent{
		Event:       EventReturnRequested,
		OrderID:     req.Order.ID,
		OrderItemID: itemID,
		BookID:      req.Line.Item.BookID,
		UserEmail:   email,
		Timestamp:   now,
	})
	return req, nil
}

// returnable loads an item of the user's order and checks it is eligible now.
func (s *orderServiceImpl) returnable(ctx context.Context, email string, itemID uint) (*models.ReturnRequest, *ServiceError) {
	item, err := s.orders.FindItem(ctx, itemID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgOrderItemNotFound)
		}
		s.logger.Error("Failed to load order item", zap.Uint("order_item_id", itemID), zap.Error(err))
		return nil, internal("Failed to load order item")
	}

	order, svcErr := s.ownedOrder(ctx, email, item.OrderID)
	if svcErr != nil {
		if svcErr.NotFound() {
			return nil, newError(404, MsgOrderItemNotFound)
		}
		return nil, svcErr
	}

	books, svcErr := s.booksFor(ctx, []models.OrderItem{*item})
	if svcErr != nil {
		return nil, svcErr
	}
	line := s.line(order, *item, books, s.now())

	switch line.Return {
	case models.ReturnExpired:
		return nil, newError(409, MsgReturnExpired)
	case models.ReturnReturned:
		return nil, newError(409, MsgReturnDuplicate)
	}
	return &models.ReturnRequest{Order: *order, Line: line}, nil
}

func (s *orderServiceImpl) ownedOrder(ctx context.Context, email string, orderID uint) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgOrderNotFound)
		}
		s.logger.Error("Failed to load order", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, internal("Failed to load order")
	}
	if order.UserEmail != email {
		s.logger.Warn("Order requested by another user",
			zap.Uint("order_id", orderID),
			zap.String("user_email", email),
		)
		return nil, newError(404, MsgOrderNotFound)
	}
	return order, nil
}

func (s *orderServiceImpl) booksFor(ctx context.Context, items []models.OrderItem) (map[uint]models.Book, *ServiceError) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BookID)
	}
	found, err := s.books.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		s.logger.Error("Failed to load books for order", zap.Error(err))
		return nil, internal("Failed to load order")
	}
	byID := make(map[uint]models.Book, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	return byID, nil
}

func (s *orderServiceImpl) line(order *models.Order, item models.OrderItem, books map[uint]models.Book, now time.Time) models.OrderLine {
	line := models.OrderLine{Item: item, Return: item.ReturnStateAt(order.CreatedAt, now)}
	if b, ok := books[item.BookID]; ok {
		line.Book = &b
	}
	return line
}

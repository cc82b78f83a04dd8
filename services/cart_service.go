package services

import (
	"context"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService resolves the session cart against the catalog.
type CartService interface {
	AddToCart(ctx context.Context, sess *models.Session, bookID uint) (*models.Book, *ServiceError)
	RemoveFromCart(sess *models.Session, bookID uint)
	ClearCart(sess *models.Session)
	ViewCart(ctx context.Context, sess *models.Session) (*models.CartView, *ServiceError)
}

type cartServiceImpl struct {
	books  repository.BookRepository
	logger *zap.Logger
}

func NewCartService(books repository.BookRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{books: books, logger: logger}
}

// AddToCart appends the book after checking it exists.
func (s *cartServiceImpl) AddToCart(ctx context.Context, sess *models.Session, bookID uint) (*models.Book, *ServiceError) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgBookNotFound)
		}
		s.logger.Error("Failed to load book for cart", zap.Uint("book_id", bookID), zap.Error(err))
		return nil, internal("Failed to add book to cart")
	}
	sess.AddToCart(book.ID)
	return book, nil
}

func (s *cartServiceImpl) RemoveFromCart(sess *models.Session, bookID uint) {
	sess.RemoveFromCart(bookID)
}

func (s *cartServiceImpl) ClearCart(sess *models.Session) {
	sess.ClearCart()
}

func (s *cartServiceImpl) ViewCart(ctx context.Context, sess *models.Session) (*models.CartView, *ServiceError) {
	view, err := resolveCart(ctx, s.books, sess.CartItems())
	if err != nil {
		s.logger.Error("Failed to resolve cart", zap.Error(err))
		return nil, internal("Failed to load your cart")
	}
	return view, nil
}

// resolveCart turns cart entries into lines priced at the current catalog
// price. Every entry is resolved on its own, so a repeated id yields one
// line per occurrence. Ids that no longer resolve are counted, not priced.
func resolveCart(ctx context.Context, books repository.BookRepository, ids []uint) (*models.CartView, error) {
	view := &models.CartView{Total: decimal.Zero}
	if len(ids) == 0 {
		return view, nil
	}

	found, err := books.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Book, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	for pos, id := range ids {
		book, ok := byID[id]
		if !ok {
			view.Unavailable++
			continue
		}
		view.Lines = append(view.Lines, models.CartLine{Position: pos, Book: book})
		view.Total = view.Total.Add(book.Price)
	}
	return view, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

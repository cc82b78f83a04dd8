package services

import (
	"context"
	"errors"
	"strings"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MsgBookNotFound     = "Book not found!"
	MsgEmptySearch      = "Please enter a search term."
	MsgInvalidBookPrice = "Price must be a non-negative amount with at most two decimals."
)

// CatalogService defines browsing and staff maintenance of the catalog.
type CatalogService interface {
	ListBooks(ctx context.Context, page, limit int) ([]models.Book, int64, *ServiceError)
	Search(ctx context.Context, query string) ([]models.Book, *ServiceError)
	GetBook(ctx context.Context, id uint) (*models.BookDetails, *ServiceError)
	CreateBook(ctx context.Context, form *models.BookForm) (*models.Book, *ServiceError)
	UpdateBook(ctx context.Context, id uint, form *models.BookForm) (*models.Book, *ServiceError)
	DeleteBook(ctx context.Context, id uint) *ServiceError
}

type catalogServiceImpl struct {
	books  repository.BookRepository
	lists  repository.CourseListRepository
	logger *zap.Logger
}

func NewCatalogService(books repository.BookRepository, lists repository.CourseListRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{books: books, lists: lists, logger: logger}
}

func (s *catalogServiceImpl) ListBooks(ctx context.Context, page, limit int) ([]models.Book, int64, *ServiceError) {
	books, total, err := s.books.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list books", zap.Error(err))
		return nil, 0, internal("Failed to load the catalog")
	}
	return books, total, nil
}

// Search matches the trimmed query against title and author, ignoring case.
func (s *catalogServiceImpl) Search(ctx context.Context, query string) ([]models.Book, *ServiceError) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, badRequest(MsgEmptySearch)
	}
	books, err := s.books.Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search books", zap.String("query", query), zap.Error(err))
		return nil, internal("Search failed")
	}
	return books, nil
}

func (s *catalogServiceImpl) GetBook(ctx context.Context, id uint) (*models.BookDetails, *ServiceError) {
	book, svcErr := s.findBook(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	lists, err := s.lists.FindByBook(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load course lists for book", zap.Uint("book_id", id), zap.Error(err))
		return nil, internal("Failed to load book")
	}
	return &models.BookDetails{Book: *book, CourseLists: lists}, nil
}

func (s *catalogServiceImpl) CreateBook(ctx context.Context, form *models.BookForm) (*models.Book, *ServiceError) {
	book := &models.Book{}
	if svcErr := applyBookForm(book, form); svcErr != nil {
		return nil, svcErr
	}
	if err := s.books.Create(ctx, book); err != nil {
		s.logger.Error("Failed to create book", zap.Error(err))
		return nil, internal("Failed to create book")
	}
	s.logger.Info("Book created", zap.Uint("book_id", book.ID), zap.String("title", book.Title))
	return book, nil
}

func (s *catalogServiceImpl) UpdateBook(ctx context.Context, id uint, form *models.BookForm) (*models.Book, *ServiceError) {
	book, svcErr := s.findBook(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if svcErr := applyBookForm(book, form); svcErr != nil {
		return nil, svcErr
	}
	if err := s.books.Update(ctx, book); err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgBookNotFound)
		}
		s.logger.Error("Failed to update book", zap.Uint("book_id", id), zap.Error(err))
		return nil, internal("Failed to update book")
	}
	s.logger.Info("Book updated", zap.Uint("book_id", id), zap.String("price", book.Price.StringFixed(2)))
	return book, nil
}

func (s *catalogServiceImpl) DeleteBook(ctx context.Context, id uint) *ServiceError {
	if err := s.books.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return newError(404, MsgBookNotFound)
		}
		s.logger.Error("Failed to delete book", zap.Uint("book_id", id), zap.Error(err))
		return internal("Failed to delete book")
	}
	s.logger.Info("Book deleted", zap.Uint("book_id", id))
	return nil
}

func (s *catalogServiceImpl) findBook(ctx context.Context, id uint) (*models.Book, *ServiceError) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgBookNotFound)
		}
		s.logger.Error("Failed to load book", zap.Uint("book_id", id), zap.Error(err))
		return nil, internal("Failed to load book")
	}
	return book, nil
}

func applyBookForm(book *models.Book, form *models.BookForm) *ServiceError {
	price, err := ParsePrice(form.Price)
	if err != nil {
		return badRequest(MsgInvalidBookPrice)
	}
	book.ISBN = strings.TrimSpace(form.ISBN)
	book.Title = strings.TrimSpace(form.Title)
	book.Author = strings.TrimSpace(form.Author)
	book.Price = price
	if cover := strings.TrimSpace(form.CoverURL); cover != "" {
		book.CoverURL = cover
	} else if book.CoverURL == "" {
		book.CoverURL = models.DefaultCoverURL
	}
	if book.Title == "" || book.Author == "" {
		return badRequest("Title and author are required.")
	}
	return nil
}

var errInvalidPrice = errors.New("price must be non-negative with at most two decimals")

// MaxPrice is the largest value the decimal(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// ParsePrice accepts a non-negative decimal with at most two fractional
// digits that fits the price column.
func ParsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() || !d.Equal(d.Round(2)) || d.GreaterThan(MaxPrice) {
		return decimal.Zero, errInvalidPrice
	}
	return d.Round(2), nil
}

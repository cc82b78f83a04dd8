package repository

import (
	"context"
	"strings"

	"bookstore-service/models"

	"gorm.io/gorm"
)

// BookRepository defines the interface for catalog data access.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id uint) (*models.Book, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Book, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Book, int64, error)
	Search(ctx context.Context, query string) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
}

// GormBookRepository implements BookRepository using GORM.
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository.
func NewGormBookRepository(db *gorm.DB) BookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDs returns the books that exist among ids, each at most once.
// Callers that need per-entry resolution map the result by id.
func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Book, error) {
	var books []models.Book
	if len(ids) == 0 {
		return books, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error
	return books, err
}

// FindAll returns a page of books ordered by title, plus the total count.
func (r *GormBookRepository) FindAll(ctx context.Context, page, limit int) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("title ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error
	return books, total, err
}

// Search matches query as a case-insensitive substring of title or author.
func (r *GormBookRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	var books []models.Book
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern).
		Order("title ASC, id ASC").
		Find(&books).Error
	return books, err
}

// Update overwrites the editable fields of an existing book.
func (r *GormBookRepository) Update(ctx context.Context, book *models.Book) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]interface{}{
			"isbn":      book.ISBN,
			"title":     book.Title,
			"author":    book.Author,
			"price":     book.Price,
			"cover_url": book.CoverURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a book and its course list links. Order items that
// reference the book are left untouched.
func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.CourseListBook{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Book{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

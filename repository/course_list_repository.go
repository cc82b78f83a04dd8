package repository

import (
	"context"

	"bookstore-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseListRepository defines the interface for course list data access.
type CourseListRepository interface {
	Create(ctx context.Context, list *models.CourseList) error
	FindByID(ctx context.Context, id uint) (*models.CourseList, error)
	FindAll(ctx context.Context) ([]models.CourseList, error)
	FindByProfessor(ctx context.Context, email string) ([]models.CourseList, error)
	FindByBook(ctx context.Context, bookID uint) ([]models.CourseList, error)
	FindBooks(ctx context.Context, listID uint) ([]models.Book, error)
	AddBook(ctx context.Context, listID, bookID uint) error
	RemoveBook(ctx context.Context, listID, bookID uint) error
}

// GormCourseListRepository implements CourseListRepository using GORM.
type GormCourseListRepository struct {
	db *gorm.DB
}

// NewGormCourseListRepository creates a new GormCourseListRepository.
func NewGormCourseListRepository(db *gorm.DB) CourseListRepository {
	return &GormCourseListRepository{db: db}
}

func (r *GormCourseListRepository) Create(ctx context.Context, list *models.CourseList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *GormCourseListRepository) FindByID(ctx context.Context, id uint) (*models.CourseList, error) {
	var list models.CourseList
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *GormCourseListRepository) FindAll(ctx context.Context) ([]models.CourseList, error) {
	var lists []models.CourseList
	err := r.db.WithContext(ctx).Order("department ASC, course_number ASC").Find(&lists).Error
	return lists, err
}

func (r *GormCourseListRepository) FindByProfessor(ctx context.Context, email string) ([]models.CourseList, error) {
	var lists []models.CourseList
	err := r.db.WithContext(ctx).
		Where("professor = ?", email).
		Order("department ASC, course_number ASC").
		Find(&lists).Error
	return lists, err
}

// FindByBook returns the course lists that reference the book.
func (r *GormCourseListRepository) FindByBook(ctx context.Context, bookID uint) ([]models.CourseList, error) {
	var lists []models.CourseList
	err := r.db.WithContext(ctx).
		Joins("JOIN course_list_books ON course_list_books.course_list_id = course_lists.id").
		Where("course_list_books.book_id = ?", bookID).
		Order("course_lists.department ASC, course_lists.course_number ASC").
		Find(&lists).Error
	return lists, err
}

func (r *GormCourseListRepository) FindBooks(ctx context.Context, listID uint) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN course_list_books ON course_list_books.book_id = books.id").
		Where("course_list_books.course_list_id = ?", listID).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// AddBook links a book to a list. Linking an existing pair is a no-op.
func (r *GormCourseListRepository) AddBook(ctx context.Context, listID, bookID uint) error {
	link := models.CourseListBook{CourseListID: listID, BookID: bookID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// RemoveBook unlinks a book. Removing a pair that is not linked is a no-op.
func (r *GormCourseListRepository) RemoveBook(ctx context.Context, listID, bookID uint) error {
	return r.db.WithContext(ctx).
		Where("course_list_id = ? AND book_id = ?", listID, bookID).
		Delete(&models.CourseListBook{}).Error
}

package services

import (
	"context"
	"strings"

	"bookstore-service/models"
	"bookstore-service/repository"

	"go.uber.org/zap"
)

const (
	MsgCourseListNotFound = "Course list not found."
	MsgNotListOwner       = "You can only change your own course lists."
)

// CourseListService manages faculty reading lists. Callers must already hold
// the manage_course_lists capability.
type CourseListService interface {
	CreateCourseList(ctx context.Context, actor models.Actor, form *models.CourseListForm) (*models.CourseList, *ServiceError)
	ListAll(ctx context.Context) ([]models.CourseList, *ServiceError)
	ListForProfessor(ctx context.Context, email string) ([]models.CourseList, *ServiceError)
	GetCourseList(ctx context.Context, id uint) (*models.CourseListDetails, *ServiceError)
	AddBook(ctx context.Context, actor models.Actor, listID, bookID uint) *ServiceError
	RemoveBook(ctx context.Context, actor models.Actor, listID, bookID uint) *ServiceError
}

type courseListServiceImpl struct {
	lists            repository.CourseListRepository
	books            repository.BookRepository
	enforceOwnership bool
	logger           *zap.Logger
}

// NewCourseListService creates a CourseListService. Any faculty member may
// change any list unless enforceOwnership is set; cross-owner changes are
// always logged.
func NewCourseListService(lists repository.CourseListRepository, books repository.BookRepository, enforceOwnership bool, logger *zap.Logger) CourseListService {
	return &courseListServiceImpl{lists: lists, books: books, enforceOwnership: enforceOwnership, logger: logger}
}

func (s *courseListServiceImpl) CreateCourseList(ctx context.Context, actor models.Actor, form *models.CourseListForm) (*models.CourseList, *ServiceError) {
	list := &models.CourseList{
		Professor:     actor.Email,
		ProfessorName: actor.Name,
		CourseTitle:   strings.TrimSpace(form.CourseTitle),
		Department:    strings.ToUpper(strings.TrimSpace(form.Department)),
		CourseNumber:  strings.TrimSpace(form.CourseNumber),
	}
	if list.Professor == "" {
		return nil, newError(401, "You must be signed in to create a course list.")
	}
	if list.CourseTitle == "" || list.Department == "" || list.CourseNumber == "" {
		return nil, badRequest("Course title, department and course number are required.")
	}

	if err := s.lists.Create(ctx, list); err != nil {
		s.logger.Error("Failed to create course list", zap.String("professor", actor.Email), zap.Error(err))
		return nil, internal("Failed to create course list")
	}
	s.logger.Info("Course list created", zap.Uint("course_list_id", list.ID), zap.String("name", list.Name()))
	return list, nil
}

func (s *courseListServiceImpl) ListAll(ctx context.Context) ([]models.CourseList, *ServiceError) {
	lists, err := s.lists.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list course lists", zap.Error(err))
		return nil, internal("Failed to load course lists")
	}
	return lists, nil
}

func (s *courseListServiceImpl) ListForProfessor(ctx context.Context, email string) ([]models.CourseList, *ServiceError) {
	lists, err := s.lists.FindByProfessor(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list course lists", zap.String("professor", email), zap.Error(err))
		return nil, internal("Failed to load course lists")
	}
	return lists, nil
}

func (s *courseListServiceImpl) GetCourseList(ctx context.Context, id uint) (*models.CourseListDetails, *ServiceError) {
	list, svcErr := s.findList(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	books, err := s.lists.FindBooks(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load course list books", zap.Uint("course_list_id", id), zap.Error(err))
		return nil, internal("Failed to load course list")
	}
	return &models.CourseListDetails{CourseList: *list, Books: books}, nil
}

// AddBook links a book to a list. Adding a book already on the list succeeds.
func (s *courseListServiceImpl) AddBook(ctx context.Context, actor models.Actor, listID, bookID uint) *ServiceError {
	list, svcErr := s.findList(ctx, listID)
	if svcErr != nil {
		return svcErr
	}
	if svcErr := s.checkOwner(actor, list, "add_book"); svcErr != nil {
		return svcErr
	}
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if isNotFound(err) {
			return newError(404, MsgBookNotFound)
		}
		s.logger.Error("Failed to load book", zap.Uint("book_id", bookID), zap.Error(err))
		return internal("Failed to update course list")
	}

	if err := s.lists.AddBook(ctx, listID, bookID); err != nil {
		s.logger.Error("Failed to add book to course list", zap.Uint("course_list_id", listID), zap.Uint("book_id", bookID), zap.Error(err))
		return internal("Failed to update course list")
	}
	s.logger.Info("Book added to course list", zap.Uint("course_list_id", listID), zap.Uint("book_id", bookID))
	return nil
}

// RemoveBook unlinks a book. Removing a book that is not on the list succeeds.
func (s *courseListServiceImpl) RemoveBook(ctx context.Context, actor models.Actor, listID, bookID uint) *ServiceError {
	list, svcErr := s.findList(ctx, listID)
	if svcErr != nil {
		return svcErr
	}
	if svcErr := s.checkOwner(actor, list, "remove_book"); svcErr != nil {
		return svcErr
	}

	if err := s.lists.RemoveBook(ctx, listID, bookID); err != nil {
		s.logger.Error("Failed to remove book from course list", zap.Uint("course_list_id", listID), zap.Uint("book_id", bookID), zap.Error(err))
		return internal("Failed to update course list")
	}
	s.logger.Info("Book removed from course list", zap.Uint("course_list_id", listID), zap.Uint("book_id", bookID))
	return nil
}

func (s *courseListServiceImpl) checkOwner(actor models.Actor, list *models.CourseList, action string) *ServiceError {
	if strings.EqualFold(list.Professor, actor.Email) {
		return nil
	}
	s.logger.Warn("course list mutated by non-owner",
		zap.Uint("course_list_id", list.ID),
		zap.String("owner", list.Professor),
		zap.String("actor", actor.Email),
		zap.String("action", action),
		zap.Bool("enforced", s.enforceOwnership),
	)
	if s.enforceOwnership {
		return newError(403, MsgNotListOwner)
	}
	return nil
}

func (s *courseListServiceImpl) findList(ctx context.Context, id uint) (*models.CourseList, *ServiceError) {
	list, err := s.lists.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(404, MsgCourseListNotFound)
		}
		s.logger.Error("Failed to load course list", zap.Uint("course_list_id", id), zap.Error(err))
		return nil, internal("Failed to load course list")
	}
	return list, nil
}

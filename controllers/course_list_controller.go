package controllers

import (
	"fmt"
	"net/http"

	apperrors "bookstore-service/common/errors"
	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

const (
	MsgAddedToCourseList     = "Book added to course list successfully."
	MsgRemovedFromCourseList = "Book removed from course list successfully."
	MsgCourseListCreated     = "Course list created successfully!"
	msgCourseListFormInvalid = "Please fill in the course title, department and course number."
)

// CourseListController serves the faculty course list pages. Routes are
// gated on manage_course_lists.
type CourseListController struct {
	lists   services.CourseListService
	catalog services.CatalogService
}

func NewCourseListController(lists services.CourseListService, catalog services.CatalogService) *CourseListController {
	return &CourseListController{lists: lists, catalog: catalog}
}

// AddToCourseListForm handles GET /add_to_course_list/:book_id.
func (cc *CourseListController) AddToCourseListForm(ctx *gin.Context) {
	bookID, ok := parseID(ctx, "book_id")
	if !ok {
		return
	}

	details, svcErr := cc.catalog.GetBook(ctx.Request.Context(), bookID)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}
	lists, svcErr := cc.lists.ListAll(ctx.Request.Context())
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	render(ctx, http.StatusOK, "add_to_course_list.html", gin.H{"Book": details.Book, "CourseLists": lists})
}

// AddToCourseList handles POST /add_to_course_list/:book_id.
func (cc *CourseListController) AddToCourseList(ctx *gin.Context) {
	bookID, ok := parseID(ctx, "book_id")
	if !ok {
		return
	}

	var form models.AddToCourseListForm
	if err := ctx.ShouldBind(&form); err != nil {
		_ = ctx.Error(apperrors.BadRequest("Please choose a course list."))
		ctx.Abort()
		return
	}

	actor := middleware.CurrentSession(ctx).Actor()
	bookPage := fmt.Sprintf("/book/%d", bookID)
	if svcErr := cc.lists.AddBook(ctx.Request.Context(), actor, form.CourseListID, bookID); svcErr != nil {
		handleServiceError(ctx, svcErr, bookPage)
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, MsgAddedToCourseList, bookPage)
}

// RemoveFromCourseList handles POST /remove_from_course_list/:list_id/:book_id.
func (cc *CourseListController) RemoveFromCourseList(ctx *gin.Context) {
	listID, ok := parseID(ctx, "list_id")
	if !ok {
		return
	}
	bookID, ok := parseID(ctx, "book_id")
	if !ok {
		return
	}

	actor := middleware.CurrentSession(ctx).Actor()
	if svcErr := cc.lists.RemoveBook(ctx.Request.Context(), actor, listID, bookID); svcErr != nil {
		handleServiceError(ctx, svcErr, "/manage_courses")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, MsgRemovedFromCourseList, fmt.Sprintf("/manage_course_list/%d", listID))
}

// NewCourseList handles GET /create_course_list.
func (cc *CourseListController) NewCourseList(ctx *gin.Context) {
	render(ctx, http.StatusOK, "create_course_list.html", gin.H{"Form": models.CourseListForm{}})
}

// CreateCourseList handles POST /create_course_list.
func (cc *CourseListController) CreateCourseList(ctx *gin.Context) {
	var form models.CourseListForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "create_course_list.html", gin.H{"Form": form, "Error": msgCourseListFormInvalid})
		return
	}

	actor := middleware.CurrentSession(ctx).Actor()
	if _, svcErr := cc.lists.CreateCourseList(ctx.Request.Context(), actor, &form); svcErr != nil {
		if svcErr.StatusCode == http.StatusBadRequest {
			render(ctx, http.StatusBadRequest, "create_course_list.html", gin.H{"Form": form, "Error": svcErr.Message})
			return
		}
		handleServiceError(ctx, svcErr, "/manage_courses")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, MsgCourseListCreated, "/manage_courses")
}

// ManageCourseList handles GET /manage_course_list/:id.
func (cc *CourseListController) ManageCourseList(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	details, svcErr := cc.lists.GetCourseList(ctx.Request.Context(), id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/manage_courses")
		return
	}

	render(ctx, http.StatusOK, "manage_course_list.html", gin.H{"CourseList": details.CourseList, "Books": details.Books})
}

// ManageCourses handles GET /manage_courses.
func (cc *CourseListController) ManageCourses(ctx *gin.Context) {
	email := middleware.CurrentSession(ctx).UserEmail
	lists, svcErr := cc.lists.ListForProfessor(ctx.Request.Context(), email)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	render(ctx, http.StatusOK, "manage_courses.html", gin.H{"CourseLists": lists})
}

package controllers

import (
	"fmt"
	"net/http"

	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

const (
	MsgNoSearchResults = "No books found matching your search."
	MsgBookAdded       = "Book added successfully."
	MsgBookUpdated     = "Book updated successfully."
	MsgBookDeleted     = "Book deleted successfully."
	msgBookFormInvalid = "Please provide a title, an author and a price with at most two decimals."
)

// BookController serves the public catalog and the staff book pages.
type BookController struct {
	catalog services.CatalogService
}

func NewBookController(catalog services.CatalogService) *BookController {
	return &BookController{catalog: catalog}
}

// Index handles GET /.
func (bc *BookController) Index(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	books, total, svcErr := bc.catalog.ListBooks(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	render(ctx, http.StatusOK, "index.html", gin.H{
		"Books":    books,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasPrev":  page > 1,
		"HasNext":  total > int64(page*limit),
		"Total":    total,
	})
}

// Search handles GET /search?query=.
func (bc *BookController) Search(ctx *gin.Context) {
	query := ctx.Query("query")

	books, svcErr := bc.catalog.Search(ctx.Request.Context(), query)
	if svcErr != nil {
		if svcErr.StatusCode == http.StatusBadRequest {
			redirectWithFlash(ctx, models.FlashWarning, svcErr.Message, "/")
			return
		}
		handleServiceError(ctx, svcErr, "/")
		return
	}
	if len(books) == 0 {
		middleware.CurrentSession(ctx).AddFlash(models.FlashInfo, MsgNoSearchResults)
	}

	render(ctx, http.StatusOK, "search_results.html", gin.H{"Books": books, "Query": query})
}

// Detail handles GET /book/:id.
func (bc *BookController) Detail(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	details, svcErr := bc.catalog.GetBook(ctx.Request.Context(), id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	render(ctx, http.StatusOK, "book_detail.html", gin.H{"Book": details.Book, "CourseLists": details.CourseLists})
}

// NewBook handles GET /add_book (staff only).
func (bc *BookController) NewBook(ctx *gin.Context) {
	render(ctx, http.StatusOK, "add_book.html", gin.H{"Form": models.BookForm{}})
}

// CreateBook handles POST /add_book (staff only).
func (bc *BookController) CreateBook(ctx *gin.Context) {
	var form models.BookForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "add_book.html", gin.H{"Form": form, "Error": msgBookFormInvalid})
		return
	}

	book, svcErr := bc.catalog.CreateBook(ctx.Request.Context(), &form)
	if svcErr != nil {
		if svcErr.StatusCode == http.StatusBadRequest {
			render(ctx, http.StatusBadRequest, "add_book.html", gin.H{"Form": form, "Error": svcErr.Message})
			return
		}
		handleServiceError(ctx, svcErr, "/")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, MsgBookAdded, fmt.Sprintf("/book/%d", book.ID))
}

// EditBook handles GET /edit_book/:id (staff only).
func (bc *BookController) EditBook(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	details, svcErr := bc.catalog.GetBook(ctx.Request.Context(), id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	render(ctx, http.StatusOK, "edit_book.html", gin.H{"BookID": id, "Form": formFromBook(details.Book)})
}

// UpdateBook handles POST /edit_book/:id (staff only).
func (bc *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var form models.BookForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "edit_book.html", gin.H{"BookID": id, "Form": form, "Error": msgBookFormInvalid})
		return
	}

	if _, svcErr := bc.catalog.UpdateBook(ctx.Request.Context(), id, &form); svcErr != nil {
		if svcErr.StatusCode == http.StatusBadRequest {
			render(ctx, http.StatusBadRequest, "edit_book.html", gin.H{"BookID": id, "Form": form, "Error": svcErr.Message})
			return
		}
		handleServiceError(ctx, svcErr, "/")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, MsgBookUpdated, "/")
}

// DeleteBook handles POST /delete_book/:id (staff only).
func (bc *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := bc.catalog.DeleteBook(ctx.Request.Context(), id); svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, MsgBookDeleted, "/")
}

func formFromBook(b models.Book) models.BookForm {
	return models.BookForm{
		ISBN:     b.ISBN,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price.StringFixed(2),
		CoverURL: b.CoverURL,
	}
}

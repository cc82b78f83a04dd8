package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"bookstore-service/controllers"
	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var physics = models.Book{ID: 1, ISBN: "978-0-073-38309-5", Title: "Fundamentals of Physics", Author: "David Halliday", Price: price("99.99")}

func TestIndex_ListsBooksWithPagination(t *testing.T) {
	app := newTestApp(t)
	app.catalog.listFn = func(page, limit int) ([]models.Book, int64, *services.ServiceError) {
		assert.Equal(t, 2, page)
		return []models.Book{physics}, int64(limit*2 + 1), nil
	}

	w := app.do(http.MethodGet, "/?page=2", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fundamentals of Physics")
	assert.Contains(t, w.Body.String(), "$99.99")
	assert.Contains(t, w.Body.String(), `href="/?page=3"`)
	assert.Contains(t, w.Body.String(), `href="/?page=1"`)
}

func TestSearch_EmptyQueryRedirects(t *testing.T) {
	app := newTestApp(t)
	app.catalog.searchFn = func(string) ([]models.Book, *services.ServiceError) {
		return nil, &services.ServiceError{StatusCode: http.StatusBadRequest, Message: services.MsgEmptySearch}
	}

	w := app.do(http.MethodGet, "/search?query=+", nil, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	sess := app.sessionAfter(t, w)
	require.Len(t, sess.Flashes, 1)
	assert.Equal(t, models.FlashWarning, sess.Flashes[0].Category)
}

func TestSearch_NoMatchesShowsNotice(t *testing.T) {
	app := newTestApp(t)
	app.catalog.searchFn = func(q string) ([]models.Book, *services.ServiceError) {
		assert.Equal(t, "zoology", q)
		return nil, nil
	}

	w := app.do(http.MethodGet, "/search?query=zoology", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), controllers.MsgNoSearchResults)
	assert.Empty(t, app.sessionAfter(t, w).Flashes, "notice is consumed by the page")
}

func TestDetail_BadIDIsBadRequest(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/book/abc", "/book/0", "/book/-3"} {
		w := app.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "400", path)
	}
}

func TestDetail_MissingBookRedirects(t *testing.T) {
	app := newTestApp(t)
	app.catalog.getFn = func(uint) (*models.BookDetails, *services.ServiceError) {
		return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: services.MsgBookNotFound}
	}

	w := app.do(http.MethodGet, "/book/42", nil, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []string{services.MsgBookNotFound}, flashMessages(app.sessionAfter(t, w)))
}

func TestDetail_RoleAwareActions(t *testing.T) {
	app := newTestApp(t)
	app.catalog.getFn = func(uint) (*models.BookDetails, *services.ServiceError) {
		return &models.BookDetails{Book: physics, CourseLists: []models.CourseList{{ID: 1, Department: "ITEC", CourseNumber: "3500", CourseTitle: "Data Structures"}}}, nil
	}

	w := app.do(http.MethodGet, "/book/1", nil, app.signedIn(t, models.RoleStaff))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ITEC 3500")
	assert.Contains(t, w.Body.String(), "/edit_book/1")
	assert.NotContains(t, w.Body.String(), "/add_to_course_list/1")

	w = app.do(http.MethodGet, "/book/1", nil, app.signedIn(t, models.RoleFaculty))
	assert.Contains(t, w.Body.String(), "/add_to_course_list/1")
	assert.NotContains(t, w.Body.String(), "/edit_book/1")
}

func TestUpdateBook_DeniedForStudents(t *testing.T) {
	app := newTestApp(t)
	app.catalog.updateFn = func(uint, *models.BookForm) (*models.Book, *services.ServiceError) {
		t.Fatal("update must not run for a student")
		return nil, nil
	}

	form := url.Values{"title": {"New"}, "author": {"A"}, "price": {"1.00"}}
	w := app.do(http.MethodPost, "/edit_book/1", form, app.signedIn(t, models.RoleStudent))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []string{middleware.MsgNotAuthorized}, flashMessages(app.sessionAfter(t, w)))
}

func TestUpdateBook_InvalidPriceRerendersForm(t *testing.T) {
	for _, p := range []string{"1.234", "-1", "100000000000"} {
		t.Run(p, func(t *testing.T) {
			app := newTestApp(t)
			called := false
			app.catalog.updateFn = func(uint, *models.BookForm) (*models.Book, *services.ServiceError) {
				called = true
				return nil, nil
			}

			form := url.Values{"title": {"Physics"}, "author": {"Halliday"}, "price": {p}}
			w := app.do(http.MethodPost, "/edit_book/1", form, app.signedIn(t, models.RoleStaff))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, called)
			assert.Contains(t, w.Body.String(), `value="Physics"`)
		})
	}
}

func TestUpdateBook_Success(t *testing.T) {
	app := newTestApp(t)
	var got *models.BookForm
	app.catalog.updateFn = func(id uint, form *models.BookForm) (*models.Book, *services.ServiceError) {
		assert.Equal(t, uint(1), id)
		got = form
		return &physics, nil
	}

	form := url.Values{"title": {"Physics"}, "author": {"Halliday"}, "price": {"89.50"}}
	w := app.do(http.MethodPost, "/edit_book/1", form, app.signedIn(t, models.RoleStaff))

	assert.Equal(t, http.StatusFound, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "89.50", got.Price)
	assert.Equal(t, []string{controllers.MsgBookUpdated}, flashMessages(app.sessionAfter(t, w)))
}

func TestCreateBook_RedirectsToBook(t *testing.T) {
	app := newTestApp(t)
	app.catalog.createFn = func(form *models.BookForm) (*models.Book, *services.ServiceError) {
		return &models.Book{ID: 16, Title: form.Title}, nil
	}

	form := url.Values{"title": {"Organic Chemistry"}, "author": {"Klein"}, "price": {"120"}}
	w := app.do(http.MethodPost, "/add_book", form, app.signedIn(t, models.RoleStaff))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/book/16", w.Header().Get("Location"))
}

func TestDeleteBook(t *testing.T) {
	app := newTestApp(t)
	var deleted uint
	app.catalog.deleteFn = func(id uint) *services.ServiceError {
		deleted = id
		return nil
	}

	w := app.do(http.MethodPost, "/delete_book/7", nil, app.signedIn(t, models.RoleStaff))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, uint(7), deleted)
	assert.Equal(t, []string{controllers.MsgBookDeleted}, flashMessages(app.sessionAfter(t, w)))
}

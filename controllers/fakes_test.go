package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	apperrors "bookstore-service/common/errors"
	commonmw "bookstore-service/common/middleware"
	"bookstore-service/controllers"
	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/routes"
	"bookstore-service/services"
	"bookstore-service/session"
	"bookstore-service/templates"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Service fakes ---

type fakeCatalog struct {
	listFn   func(page, limit int) ([]models.Book, int64, *services.ServiceError)
	searchFn func(query string) ([]models.Book, *services.ServiceError)
	getFn    func(id uint) (*models.BookDetails, *services.ServiceError)
	createFn func(form *models.BookForm) (*models.Book, *services.ServiceError)
	updateFn func(id uint, form *models.BookForm) (*models.Book, *services.ServiceError)
	deleteFn func(id uint) *services.ServiceError
}

func (f *fakeCatalog) ListBooks(_ context.Context, page, limit int) ([]models.Book, int64, *services.ServiceError) {
	return f.listFn(page, limit)
}
func (f *fakeCatalog) Search(_ context.Context, query string) ([]models.Book, *services.ServiceError) {
	return f.searchFn(query)
}
func (f *fakeCatalog) GetBook(_ context.Context, id uint) (*models.BookDetails, *services.ServiceError) {
	return f.getFn(id)
}
func (f *fakeCatalog) CreateBook(_ context.Context, form *models.BookForm) (*models.Book, *services.ServiceError) {
	return f.createFn(form)
}
func (f *fakeCatalog) UpdateBook(_ context.Context, id uint, form *models.BookForm) (*models.Book, *services.ServiceError) {
	return f.updateFn(id, form)
}
func (f *fakeCatalog) DeleteBook(_ context.Context, id uint) *services.ServiceError {
	return f.deleteFn(id)
}

// fakeCart keeps the real session semantics and prices every book at 10.00.
type fakeCart struct {
	missing map[uint]bool
}

func (f *fakeCart) AddToCart(_ context.Context, sess *models.Session, id uint) (*models.Book, *services.ServiceError) {
	if f.missing[id] {
		return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: services.MsgBookNotFound}
	}
	sess.AddToCart(id)
	return &models.Book{ID: id, Title: "Biology"}, nil
}
func (f *fakeCart) RemoveFromCart(sess *models.Session, id uint) { sess.RemoveFromCart(id) }
func (f *fakeCart) ClearCart(sess *models.Session)               { sess.ClearCart() }
func (f *fakeCart) ViewCart(_ context.Context, sess *models.Session) (*models.CartView, *services.ServiceError) {
	view := &models.CartView{Total: price("0")}
	for pos, id := range sess.CartItems() {
		if f.missing[id] {
			view.Unavailable++
			continue
		}
		view.Lines = append(view.Lines, models.CartLine{Position: pos, Book: models.Book{ID: id, Title: "Biology", Price: price("10.00")}})
		view.Total = view.Total.Add(price("10.00"))
	}
	return view, nil
}

type fakeCheckout struct {
	checkoutFn func(sess *models.Session, form *models.CheckoutForm) (*services.CheckoutResult, *services.ServiceError)
	calls      int
}

func (f *fakeCheckout) Checkout(_ context.Context, sess *models.Session, form *models.CheckoutForm) (*services.CheckoutResult, *services.ServiceError) {
	f.calls++
	return f.checkoutFn(sess, form)
}

type fakeOrders struct {
	listFn    func(email string) ([]models.Order, *services.ServiceError)
	getFn     func(email string, id uint) (*models.OrderDetails, *services.ServiceError)
	requestFn func(email string, itemID uint) (*models.ReturnRequest, *services.ServiceError)
	returnFn  func(email string, itemID uint) (*models.ReturnRequest, *services.ServiceError)
}

func (f *fakeOrders) ListOrders(_ context.Context, email string) ([]models.Order, *services.ServiceError) {
	return f.listFn(email)
}
func (f *fakeOrders) GetOrder(_ context.Context, email string, id uint) (*models.OrderDetails, *services.ServiceError) {
	return f.getFn(email, id)
}
func (f *fakeOrders) GetReturnRequest(_ context.Context, email string, itemID uint) (*models.ReturnRequest, *services.ServiceError) {
	return f.requestFn(email, itemID)
}
func (f *fakeOrders) RequestReturn(_ context.Context, email string, itemID uint) (*models.ReturnRequest, *services.ServiceError) {
	return f.returnFn(email, itemID)
}

type fakeAccounts struct {
	users map[string]*models.User
}

func (f *fakeAccounts) Login(_ context.Context, email string) (*models.User, *services.ServiceError) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, &services.ServiceError{StatusCode: http.StatusUnauthorized, Message: services.MsgInvalidEmail}
}
func (f *fakeAccounts) GetProfile(_ context.Context, email string) (*models.User, *services.ServiceError) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: services.MsgUserNotFound}
}
func (f *fakeAccounts) UpdateProfile(_ context.Context, email string, form *models.ProfileForm) (*models.User, *services.ServiceError) {
	u, ok := f.users[email]
	if !ok {
		return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: services.MsgUserNotFound}
	}
	u.Name, u.Address, u.Department = form.Name, form.Address, form.Department
	return u, nil
}

type fakeCourseLists struct {
	lists   []models.CourseList
	added   [][2]uint
	removed [][2]uint
	addErr  *services.ServiceError
}

func (f *fakeCourseLists) CreateCourseList(_ context.Context, actor models.Actor, form *models.CourseListForm) (*models.CourseList, *services.ServiceError) {
	cl := models.CourseList{ID: uint(len(f.lists) + 1), Professor: actor.Email, ProfessorName: actor.Name,
		CourseTitle: form.CourseTitle, Department: form.Department, CourseNumber: form.CourseNumber}
	f.lists = append(f.lists, cl)
	return &cl, nil
}
func (f *fakeCourseLists) ListAll(context.Context) ([]models.CourseList, *services.ServiceError) {
	return f.lists, nil
}
func (f *fakeCourseLists) ListForProfessor(_ context.Context, email string) ([]models.CourseList, *services.ServiceError) {
	var out []models.CourseList
	for _, cl := range f.lists {
		if cl.Professor == email {
			out = append(out, cl)
		}
	}
	return out, nil
}
func (f *fakeCourseLists) GetCourseList(_ context.Context, id uint) (*models.CourseListDetails, *services.ServiceError) {
	for _, cl := range f.lists {
		if cl.ID == id {
			return &models.CourseListDetails{CourseList: cl}, nil
		}
	}
	return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: services.MsgCourseListNotFound}
}
func (f *fakeCourseLists) AddBook(_ context.Context, _ models.Actor, listID, bookID uint) *services.ServiceError {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, [2]uint{listID, bookID})
	return nil
}
func (f *fakeCourseLists) RemoveBook(_ context.Context, _ models.Actor, listID, bookID uint) *services.ServiceError {
	f.removed = append(f.removed, [2]uint{listID, bookID})
	return nil
}

// --- Test application ---

type testApp struct {
	router   *gin.Engine
	store    *session.MemoryStore
	codec    *session.Codec
	catalog  *fakeCatalog
	cart     *fakeCart
	checkout *fakeCheckout
	orders   *fakeOrders
	accounts *fakeAccounts
	lists    *fakeCourseLists
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	controllers.RegisterValidators()

	tmpl, err := templates.Load()
	require.NoError(t, err)

	app := &testApp{
		store:    session.NewMemoryStore(),
		codec:    session.NewCodec("test-secret", time.Hour),
		catalog:  &fakeCatalog{},
		cart:     &fakeCart{missing: map[uint]bool{}},
		checkout: &fakeCheckout{},
		orders:   &fakeOrders{},
		accounts: &fakeAccounts{users: map[string]*models.User{}},
		lists:    &fakeCourseLists{},
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	mgr := middleware.NewSessionManager(app.store, app.codec, time.Hour, false, zap.NewNop())
	pages := r.Group("")
	pages.Use(apperrors.ErrorMiddleware(), mgr.Middleware())

	limiter := commonmw.NewRateLimiter(rate.Inf, 1, time.Minute)
	t.Cleanup(limiter.Stop)

	routes.RegisterRoutes(pages, routes.Controllers{
		Books:       controllers.NewBookController(app.catalog),
		Cart:        controllers.NewCartController(app.cart),
		Checkout:    controllers.NewCheckoutController(app.cart, app.checkout),
		Orders:      controllers.NewOrderController(app.orders),
		Accounts:    controllers.NewAccountController(app.accounts),
		CourseLists: controllers.NewCourseListController(app.lists, app.catalog),
	}, limiter)
	app.router = r
	return app
}

// signedIn stores a session for the user and returns its cookie.
func (a *testApp) signedIn(t *testing.T, role models.Role, cart ...uint) *http.Cookie {
	t.Helper()
	sess := models.NewSession("sid-" + string(role))
	if role != models.RoleGuest {
		sess.SignIn(&models.User{Email: string(role) + "@mga.edu", Name: "Test " + string(role), Role: role})
	}
	for _, id := range cart {
		sess.AddToCart(id)
	}
	require.NoError(t, a.store.Save(context.Background(), sess))

	token, err := a.codec.Encode(sess.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func (a *testApp) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// sessionAfter loads the session the response cookie points at.
func (a *testApp) sessionAfter(t *testing.T, w *httptest.ResponseRecorder) *models.Session {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name != middleware.SessionCookieName {
			continue
		}
		sid, err := a.codec.Decode(c.Value)
		require.NoError(t, err)
		sess, err := a.store.Load(context.Background(), sid)
		require.NoError(t, err)
		require.NotNil(t, sess)
		return sess
	}
	t.Fatal("response has no session cookie")
	return nil
}

func flashMessages(sess *models.Session) []string {
	var out []string
	for _, f := range sess.Flashes {
		out = append(out, f.Message)
	}
	return out
}

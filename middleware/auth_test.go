package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-service/common/logger"
	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// withRole signs the session in as role before the gated handler runs.
func withRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != models.RoleGuest {
			middleware.CurrentSession(c).SignIn(&models.User{Email: "user@mga.edu", Name: "User", Role: role})
		}
		c.Next()
	}
}

func TestRequireCapability(t *testing.T) {
	cases := []struct {
		name    string
		role    models.Role
		cap     models.Capability
		allowed bool
	}{
		{"guest cannot edit catalog", models.RoleGuest, models.CapManageCatalog, false},
		{"student cannot edit catalog", models.RoleStudent, models.CapManageCatalog, false},
		{"faculty cannot edit catalog", models.RoleFaculty, models.CapManageCatalog, false},
		{"staff edits catalog", models.RoleStaff, models.CapManageCatalog, true},
		{"staff cannot manage course lists", models.RoleStaff, models.CapManageCourseLists, false},
		{"faculty manages course lists", models.RoleFaculty, models.CapManageCourseLists, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			r := newRouter(store)
			called := false
			r.POST("/gated", withRole(tc.role), middleware.RequireCapability(tc.cap), func(c *gin.Context) {
				called = true
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/gated", nil))

			assert.Equal(t, tc.allowed, called)
			if tc.allowed {
				assert.Equal(t, http.StatusNoContent, w.Code)
				return
			}
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))

			sess, _ := store.Load(context.Background(), sessionID(t, w))
			if assert.NotNil(t, sess) && assert.Len(t, sess.Flashes, 1) {
				assert.Equal(t, middleware.MsgNotAuthorized, sess.Flashes[0].Message)
			}
		})
	}
}

func TestRequireIdentified(t *testing.T) {
	r := newRouter(session.NewMemoryStore())
	r.GET("/my_orders", middleware.RequireIdentified(models.FlashDanger, "You need to be logged in to view your orders."), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/profile", withRole(models.RoleStudent), middleware.RequireIdentified(models.FlashInfo, ""), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/my_orders", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireCapability_LogsDenialWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	defer func() { logger.Log = prev }()

	r := newRouter(session.NewMemoryStore())
	r.Use(logger.RequestID())
	r.GET("/add_book", withRole(models.RoleStudent), middleware.RequireCapability(models.CapManageCatalog), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/add_book", nil)
	req.Header.Set("X-Request-ID", "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	denied := logs.FilterMessage("Capability denied").All()
	if assert.Len(t, denied, 1) {
		fields := denied[0].ContextMap()
		assert.Equal(t, "req-7", fields["request_id"])
		assert.Equal(t, string(models.CapManageCatalog), fields["capability"])
		assert.Equal(t, "student", fields["role"])
	}
}

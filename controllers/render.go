package controllers

import (
	"net/http"
	"strconv"

	apperrors "bookstore-service/common/errors"
	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

// render fills in the layout data every page needs and pops pending notices.
func render(c *gin.Context, status int, name string, data gin.H) {
	sess := middleware.CurrentSession(c)
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = sess
	data["Role"] = sess.Role
	data["CanManageCatalog"] = sess.Role.Can(models.CapManageCatalog)
	data["CanManageCourseLists"] = sess.Role.Can(models.CapManageCourseLists)
	data["CartCount"] = len(sess.Cart)
	data["Flashes"] = sess.PopFlashes()
	c.HTML(status, name, data)
}

func redirectWithFlash(c *gin.Context, category, message, location string) {
	middleware.CurrentSession(c).AddFlash(category, message)
	c.Redirect(http.StatusFound, location)
}

// parseID reads a positive integer path parameter. Anything else aborts the
// request with a 400 page.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(apperrors.BadRequest("Invalid " + name + "."))
		c.Abort()
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps a service failure onto the page flow: missing or
// conflicting records redirect with a notice, everything else becomes an
// error page.
func handleServiceError(c *gin.Context, svcErr *services.ServiceError, redirect string) {
	switch svcErr.StatusCode {
	case http.StatusNotFound, http.StatusConflict, http.StatusForbidden:
		redirectWithFlash(c, models.FlashDanger, svcErr.Message, redirect)
	case http.StatusUnauthorized:
		redirectWithFlash(c, models.FlashWarning, svcErr.Message, "/login")
	default:
		_ = c.Error(apperrors.New(svcErr.StatusCode, svcErr.Message, svcErr))
		c.Abort()
	}
}

// parsePaginationParams extracts and validates pagination parameters.
func parsePaginationParams(c *gin.Context) (int, int) {
	const MaxLimit = 60
	const DefaultPage = 1
	const DefaultLimit = 12

	pageInt := DefaultPage
	limitInt := DefaultLimit

	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "12")); err == nil && l > 0 {
		limitInt = l
		if limitInt > MaxLimit {
			limitInt = MaxLimit
		}
	}
	return pageInt, limitInt
}

package controllers

import (
	"net/http"

	apperrors "bookstore-service/common/errors"
	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

const (
	MsgLoginSuccess      = "Login successful."
	MsgLoggedOut         = "You have been logged out."
	MsgProfileUpdated    = "Profile updated successfully."
	msgProfileFormFailed = "Please enter your name."
)

// AccountController handles sign in, sign out and the profile page.
type AccountController struct {
	accounts services.AccountService
}

func NewAccountController(accounts services.AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

// LoginPage handles GET /login.
func (ac *AccountController) LoginPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", nil)
}

// Login handles POST /login. The session id is rotated once the user is
// known.
func (ac *AccountController) Login(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	var form models.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		sess.AddFlash(models.FlashDanger, services.MsgInvalidEmail)
		render(ctx, http.StatusBadRequest, "login.html", gin.H{"Email": form.Email})
		return
	}

	user, svcErr := ac.accounts.Login(ctx.Request.Context(), form.Email)
	if svcErr != nil {
		if svcErr.StatusCode == http.StatusUnauthorized {
			sess.AddFlash(models.FlashDanger, svcErr.Message)
			render(ctx, http.StatusUnauthorized, "login.html", gin.H{"Email": form.Email})
			return
		}
		handleServiceError(ctx, svcErr, "/login")
		return
	}

	sess.SignIn(user)
	if err := middleware.RotateSession(ctx); err != nil {
		_ = ctx.Error(apperrors.Internal(err))
		ctx.Abort()
		return
	}
	redirectWithFlash(ctx, models.FlashSuccess, MsgLoginSuccess, "/")
}

// Logout handles GET /logout.
func (ac *AccountController) Logout(ctx *gin.Context) {
	if err := middleware.DestroySession(ctx); err != nil {
		_ = ctx.Error(apperrors.Internal(err))
		ctx.Abort()
		return
	}
	redirectWithFlash(ctx, models.FlashSuccess, MsgLoggedOut, "/")
}

// Profile handles GET /profile.
func (ac *AccountController) Profile(ctx *gin.Context) {
	email := middleware.CurrentSession(ctx).UserEmail
	user, svcErr := ac.accounts.GetProfile(ctx.Request.Context(), email)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/login")
		return
	}

	render(ctx, http.StatusOK, "profile.html", gin.H{"User": user})
}

// UpdateProfile handles POST /profile.
func (ac *AccountController) UpdateProfile(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	var form models.ProfileForm
	if err := ctx.ShouldBind(&form); err != nil {
		user := &models.User{Email: sess.UserEmail, Name: form.Name, Role: sess.Role, Address: form.Address, Department: form.Department}
		render(ctx, http.StatusBadRequest, "profile.html", gin.H{"User": user, "Error": msgProfileFormFailed})
		return
	}

	user, svcErr := ac.accounts.UpdateProfile(ctx.Request.Context(), sess.UserEmail, &form)
	if svcErr != nil {
		if svcErr.StatusCode == http.StatusBadRequest {
			user := &models.User{Email: sess.UserEmail, Name: form.Name, Role: sess.Role, Address: form.Address, Department: form.Department}
			render(ctx, http.StatusBadRequest, "profile.html", gin.H{"User": user, "Error": svcErr.Message})
			return
		}
		handleServiceError(ctx, svcErr, "/login")
		return
	}

	sess.UserName = user.Name
	redirectWithFlash(ctx, models.FlashSuccess, MsgProfileUpdated, "/profile")
}

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
	MsgRemovedFromCart = "The book was removed from your cart."
	MsgCartCleared     = "Your cart has been cleared."
)

// CartController handles the session cart.
type CartController struct {
	cart services.CartService
}

func NewCartController(cart services.CartService) *CartController {
	return &CartController{cart: cart}
}

// AddToCart handles GET /add_to_cart/:id.
func (cc *CartController) AddToCart(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	book, svcErr := cc.cart.AddToCart(ctx.Request.Context(), middleware.CurrentSession(ctx), id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, fmt.Sprintf("Added %q to your cart!", book.Title), "/cart")
}

// ViewCart handles GET /cart.
func (cc *CartController) ViewCart(ctx *gin.Context) {
	view, svcErr := cc.cart.ViewCart(ctx.Request.Context(), middleware.CurrentSession(ctx))
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}
	if view.Unavailable > 0 {
		middleware.CurrentSession(ctx).AddFlash(models.FlashWarning, unavailableNotice(view.Unavailable))
	}

	render(ctx, http.StatusOK, "cart.html", gin.H{"Cart": view})
}

// RemoveFromCart handles POST /cart/remove/:id.
func (cc *CartController) RemoveFromCart(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	cc.cart.RemoveFromCart(middleware.CurrentSession(ctx), id)
	redirectWithFlash(ctx, models.FlashInfo, MsgRemovedFromCart, "/cart")
}

// ClearCart handles POST /cart/clear.
func (cc *CartController) ClearCart(ctx *gin.Context) {
	cc.cart.ClearCart(middleware.CurrentSession(ctx))
	redirectWithFlash(ctx, models.FlashInfo, MsgCartCleared, "/cart")
}

func unavailableNotice(n int) string {
	if n == 1 {
		return "1 book in your cart is no longer available and was left out."
	}
	return fmt.Sprintf("%d books in your cart are no longer available and were left out.", n)
}

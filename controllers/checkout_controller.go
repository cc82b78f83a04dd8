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
	MsgCheckoutLogin       = "You are not logged in. Please sign in or proceed as a guest."
	msgCheckoutFormInvalid = "Please choose a delivery method and a payment method."
)

// CheckoutController serves the checkout form and places orders.
type CheckoutController struct {
	cart     services.CartService
	checkout services.CheckoutService
}

func NewCheckoutController(cart services.CartService, checkout services.CheckoutService) *CheckoutController {
	return &CheckoutController{cart: cart, checkout: checkout}
}

// CheckoutPage handles GET /checkout.
func (cc *CheckoutController) CheckoutPage(ctx *gin.Context) {
	cc.renderForm(ctx, http.StatusOK, models.CheckoutForm{}, "")
}

// PlaceOrder handles POST /checkout.
func (cc *CheckoutController) PlaceOrder(ctx *gin.Context) {
	var form models.CheckoutForm
	if err := ctx.ShouldBind(&form); err != nil {
		cc.renderForm(ctx, http.StatusBadRequest, form, msgCheckoutFormInvalid)
		return
	}

	sess := middleware.CurrentSession(ctx)
	result, svcErr := cc.checkout.Checkout(ctx.Request.Context(), sess, &form)
	if svcErr != nil {
		switch svcErr.StatusCode {
		case http.StatusPaymentRequired:
			cc.renderForm(ctx, http.StatusPaymentRequired, form, svcErr.Message)
		case http.StatusBadRequest:
			redirectWithFlash(ctx, models.FlashDanger, svcErr.Message, "/")
		case http.StatusConflict:
			redirectWithFlash(ctx, models.FlashDanger, svcErr.Message, "/cart")
		default:
			handleServiceError(ctx, svcErr, "/cart")
		}
		return
	}

	if result.Unavailable > 0 {
		sess.AddFlash(models.FlashWarning, unavailableNotice(result.Unavailable))
	}
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/order_confirmation/%d", result.Order.ID))
}

// renderForm shows the cart as it would be charged right now. An empty or
// fully unavailable cart never reaches the form.
func (cc *CheckoutController) renderForm(ctx *gin.Context, status int, form models.CheckoutForm, errMsg string) {
	sess := middleware.CurrentSession(ctx)
	if len(sess.Cart) == 0 {
		redirectWithFlash(ctx, models.FlashDanger, services.MsgCartEmpty, "/")
		return
	}

	view, svcErr := cc.cart.ViewCart(ctx.Request.Context(), sess)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/cart")
		return
	}
	if view.Empty() {
		redirectWithFlash(ctx, models.FlashDanger, services.MsgCartUnavailable, "/cart")
		return
	}
	if view.Unavailable > 0 {
		sess.AddFlash(models.FlashWarning, unavailableNotice(view.Unavailable))
	}

	render(ctx, status, "checkout.html", gin.H{
		"Cart":            view,
		"Form":            form,
		"Error":           errMsg,
		"DeliveryMethods": models.DeliveryMethods,
		"PaymentMethods":  models.PaymentMethods,
	})
}

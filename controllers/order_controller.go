package controllers

import (
	"net/http"

	"bookstore-service/middleware"
	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

// OrderController shows a user's orders and handles return requests. Every
// route requires a signed-in session.
type OrderController struct {
	orders services.OrderService
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Confirmation handles GET /order_confirmation/:order_id.
func (oc *OrderController) Confirmation(ctx *gin.Context) {
	oc.showOrder(ctx, "order_id", "order_confirmation.html", "/")
}

// Details handles GET /order/:id.
func (oc *OrderController) Details(ctx *gin.Context) {
	oc.showOrder(ctx, "id", "order_details.html", "/my_orders")
}

func (oc *OrderController) showOrder(ctx *gin.Context, param, page, notFound string) {
	id, ok := parseID(ctx, param)
	if !ok {
		return
	}

	email := middleware.CurrentSession(ctx).UserEmail
	details, svcErr := oc.orders.GetOrder(ctx.Request.Context(), email, id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, notFound)
		return
	}

	render(ctx, http.StatusOK, page, gin.H{"Order": details.Order, "Lines": details.Lines})
}

// MyOrders handles GET /my_orders.
func (oc *OrderController) MyOrders(ctx *gin.Context) {
	email := middleware.CurrentSession(ctx).UserEmail
	orders, svcErr := oc.orders.ListOrders(ctx.Request.Context(), email)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/")
		return
	}

	render(ctx, http.StatusOK, "my_orders.html", gin.H{"Orders": orders})
}

// ReturnForm handles GET /return_book/:order_item_id.
func (oc *OrderController) ReturnForm(ctx *gin.Context) {
	id, ok := parseID(ctx, "order_item_id")
	if !ok {
		return
	}

	email := middleware.CurrentSession(ctx).UserEmail
	req, svcErr := oc.orders.GetReturnRequest(ctx.Request.Context(), email, id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr, "/my_orders")
		return
	}

	render(ctx, http.StatusOK, "return_book.html", gin.H{"Order": req.Order, "Line": req.Line})
}

// SubmitReturn handles POST /return_book/:order_item_id.
func (oc *OrderController) SubmitReturn(ctx *gin.Context) {
	id, ok := parseID(ctx, "order_item_id")
	if !ok {
		return
	}

	email := middleware.CurrentSession(ctx).UserEmail
	if _, svcErr := oc.orders.RequestReturn(ctx.Request.Context(), email, id); svcErr != nil {
		handleServiceError(ctx, svcErr, "/my_orders")
		return
	}

	redirectWithFlash(ctx, models.FlashSuccess, services.MsgReturnSubmitted, "/my_orders")
}

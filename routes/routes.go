package routes

import (
	"bookstore-service/controllers"
	commonmw "bookstore-service/common/middleware"
	"bookstore-service/middleware"
	"bookstore-service/models"

	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers mounted by RegisterRoutes.
type Controllers struct {
	Books       *controllers.BookController
	Cart        *controllers.CartController
	Checkout    *controllers.CheckoutController
	Orders      *controllers.OrderController
	Accounts    *controllers.AccountController
	CourseLists *controllers.CourseListController
}

// RegisterRoutes mounts every page on r, which must already carry the error
// and session middleware. Sign in and order placement share the limiter.
func RegisterRoutes(r *gin.RouterGroup, c Controllers, limiter *commonmw.RateLimiter) {
	// Public catalog and cart
	r.GET("/", c.Books.Index)
	r.GET("/search", c.Books.Search)
	r.GET("/book/:id", c.Books.Detail)
	r.GET("/add_to_cart/:id", c.Cart.AddToCart)
	r.GET("/cart", c.Cart.ViewCart)
	r.POST("/cart/remove/:id", c.Cart.RemoveFromCart)
	r.POST("/cart/clear", c.Cart.ClearCart)

	// Account
	r.GET("/login", c.Accounts.LoginPage)
	r.POST("/login", limiter.Limit(), c.Accounts.Login)
	r.GET("/logout", c.Accounts.Logout)

	profile := r.Group("", middleware.RequireIdentified(models.FlashInfo, ""))
	profile.GET("/profile", c.Accounts.Profile)
	profile.POST("/profile", c.Accounts.UpdateProfile)

	// Checkout
	checkout := r.Group("", middleware.RequireIdentified(models.FlashWarning, controllers.MsgCheckoutLogin))
	checkout.GET("/checkout", c.Checkout.CheckoutPage)
	checkout.POST("/checkout", limiter.Limit(), c.Checkout.PlaceOrder)

	// Orders and returns
	orders := r.Group("", middleware.RequireIdentified(models.FlashDanger, "You need to be logged in to view your orders."))
	orders.GET("/order_confirmation/:order_id", c.Orders.Confirmation)
	orders.GET("/order/:id", c.Orders.Details)
	orders.GET("/my_orders", c.Orders.MyOrders)
	orders.GET("/return_book/:order_item_id", c.Orders.ReturnForm)
	orders.POST("/return_book/:order_item_id", c.Orders.SubmitReturn)

	// Staff catalog maintenance
	staff := r.Group("", middleware.RequireCapability(models.CapManageCatalog))
	staff.GET("/add_book", c.Books.NewBook)
	staff.POST("/add_book", c.Books.CreateBook)
	staff.GET("/edit_book/:id", c.Books.EditBook)
	staff.POST("/edit_book/:id", c.Books.UpdateBook)
	staff.POST("/delete_book/:id", c.Books.DeleteBook)

	// Faculty course lists
	faculty := r.Group("", middleware.RequireCapability(models.CapManageCourseLists))
	faculty.GET("/add_to_course_list/:book_id", c.CourseLists.AddToCourseListForm)
	faculty.POST("/add_to_course_list/:book_id", c.CourseLists.AddToCourseList)
	faculty.POST("/remove_from_course_list/:list_id/:book_id", c.CourseLists.RemoveFromCourseList)
	faculty.GET("/create_course_list", c.CourseLists.NewCourseList)
	faculty.POST("/create_course_list", c.CourseLists.CreateCourseList)
	faculty.GET("/manage_course_list/:id", c.CourseLists.ManageCourseList)
	faculty.GET("/manage_courses", c.CourseLists.ManageCourses)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "pending"

	// ReturnWindow is how long after order creation an item may be returned.
	ReturnWindow = 30 * 24 * time.Hour
)

// Order is an immutable ledger header. TotalAmount is fixed at creation.
type Order struct {
	ID          uint            `gorm:"primaryKey;column:order_id" json:"order_id"`
	UserEmail   string          `gorm:"size:255;index;not null" json:"user_email"`
	Status      string          `gorm:"size:32;not null;default:'pending'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;references:ID" json:"items,omitempty"`
}

// OrderItem is one purchased unit. Price is the book price at checkout time.
// BookID is not a foreign key: deleting a book leaves its history intact.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey;column:order_item_id" json:"order_item_id"`
	OrderID         uint            `gorm:"index;not null" json:"order_id"`
	BookID          uint            `gorm:"index;not null" json:"book_id"`
	Quantity        int             `gorm:"not null;default:1" json:"quantity"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ReturnRequested bool            `gorm:"not null;default:false" json:"return_requested"`
	ReturnDate      *time.Time      `json:"return_date,omitempty"`
}

// ReturnState is derived on every read, never stored.
type ReturnState string

const (
	ReturnEligible ReturnState = "eligible"
	ReturnExpired  ReturnState = "expired"
	ReturnReturned ReturnState = "returned"
)

// ReturnStateAt evaluates the item against the return window. The window is
// inclusive: an item exactly ReturnWindow old is still eligible. Past the
// window an item is expired whether or not a return was requested.
func (i OrderItem) ReturnStateAt(orderCreatedAt, now time.Time) ReturnState {
	if now.Sub(orderCreatedAt) > ReturnWindow {
		return ReturnExpired
	}
	if i.ReturnRequested {
		return ReturnReturned
	}
	return ReturnEligible
}

func (i OrderItem) IsReturnable(orderCreatedAt, now time.Time) bool {
	return i.ReturnStateAt(orderCreatedAt, now) == ReturnEligible
}

// OrderLine joins an item with its book, which may no longer exist.
type OrderLine struct {
	Item   OrderItem
	Book   *Book
	Return ReturnState
}

func (l OrderLine) Title() string {
	if l.Book == nil {
		return "Unavailable title"
	}
	return l.Book.Title
}

func (l OrderLine) Author() string {
	if l.Book == nil {
		return ""
	}
	return l.Book.Author
}

func (l OrderLine) Returnable() bool {
	return l.Return == ReturnEligible
}

type OrderDetails struct {
	Order Order
	Lines []OrderLine
}

// ReturnRequest is what the return confirmation page shows.
type ReturnRequest struct {
	Order Order
	Line  OrderLine
}

type CheckoutForm struct {
	DeliveryMethod string `form:"delivery_method" binding:"required,oneof='Shipping' 'In-store pickup' 'Digital download'"`
	PaymentMethod  string `form:"payment_method" binding:"required,max=64"`
}

var DeliveryMethods = []string{"Shipping", "In-store pickup", "Digital download"}

var PaymentMethods = []string{"Credit Card", "PayPal", "University Account"}

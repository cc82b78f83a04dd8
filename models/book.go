package models

import "github.com/shopspring/decimal"

const DefaultCoverURL = "no-cover-available.png"

// Book is a catalog entry. Order items keep their own price snapshot, so a
// book can be repriced or deleted without touching past orders.
type Book struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	ISBN     string          `gorm:"size:20;index" json:"isbn"`
	Title    string          `gorm:"size:255;not null" json:"title"`
	Author   string          `gorm:"size:255;not null" json:"author"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CoverURL string          `gorm:"size:512;default:'no-cover-available.png'" json:"cover_url"`
}

// Cover returns the cover image, falling back to the placeholder.
func (b Book) Cover() string {
	if b.CoverURL == "" {
		return DefaultCoverURL
	}
	return b.CoverURL
}

// BookForm is the staff form used to create and edit books.
type BookForm struct {
	ISBN     string `form:"isbn" binding:"omitempty,max=20"`
	Title    string `form:"title" binding:"required,max=255"`
	Author   string `form:"author" binding:"required,max=255"`
	Price    string `form:"price" binding:"required,money"`
	CoverURL string `form:"cover_url" binding:"omitempty,max=512"`
}

// BookDetails is what the book page renders.
type BookDetails struct {
	Book        Book
	CourseLists []CourseList
}

// OnCourseList reports whether any course list references the book.
func (d BookDetails) OnCourseList() bool {
	return len(d.CourseLists) > 0
}

package models

// CourseList is a professor-owned reading list for one course.
type CourseList struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Professor     string `gorm:"size:255;index;not null" json:"professor"`
	ProfessorName string `gorm:"size:100" json:"professor_name"`
	CourseTitle   string `gorm:"size:255;not null" json:"course_title"`
	Department    string `gorm:"size:100;not null" json:"department"`
	CourseNumber  string `gorm:"size:20;not null" json:"course_number"`
}

// Name is the display name, e.g. "ITEC 3500".
func (c CourseList) Name() string {
	return c.Department + " " + c.CourseNumber
}

// CourseListBook links a book to a course list. The pair is unique. Both
// columns reference their tables without cascade rules; deleting a book
// removes its links first.
type CourseListBook struct {
	CourseListID uint `gorm:"primaryKey;autoIncrement:false"`
	BookID       uint `gorm:"primaryKey;autoIncrement:false;index"`

	CourseList CourseList `gorm:"foreignKey:CourseListID" json:"-"`
	Book       Book       `gorm:"foreignKey:BookID" json:"-"`
}

type CourseListForm struct {
	CourseTitle  string `form:"course_title" binding:"required,max=255"`
	Department   string `form:"department" binding:"required,max=100"`
	CourseNumber string `form:"course_number" binding:"required,max=20"`
}

type AddToCourseListForm struct {
	CourseListID uint `form:"course_list_id" binding:"required,gt=0"`
}

type CourseListDetails struct {
	CourseList CourseList
	Books      []Book
}

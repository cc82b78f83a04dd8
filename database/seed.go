package database

import (
	"context"
	"fmt"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedBook struct {
	isbn, title, author, price, cover string
}

var sampleBooks = []seedBook{
	{"978-0-321-89761-2", "Introduction to Algorithms", "Thomas H. Cormen, Charles E. Leiserson, Ronald L. Rivest", "79.99", "introduction_to_algorithms_cover.jpg"},
	{"978-0-134-68599-1", "Engineering Mechanics: Dynamics", "J.L. Meriam, L.G. Kraige", "47.99", "engineering_mechanics_dynamics_cover.jpg"},
	{"978-0-073-38309-5", "Fundamentals of Physics", "David Halliday, Robert Resnick, Jearl Walker", "99.99", "fundamentals_of_physics_cover.jpg"},
	{"978-0-123-74751-2", "Biology", "Neil A. Campbell, Jane B. Reece", "160.00", "biology_cover.jpg"},
	{"978-0-071-61268-0", "Physics for Scientists and Engineers", "Douglas C. Giancoli", "108.50", "physics_for_scientists_and_engineers_cover.jpg"},
	{"978-0-134-70609-2", "Discrete Mathematics and Its Applications", "Kenneth H. Rosen", "118.00", "discrete_mathematics_cover.jpg"},
	{"978-0-321-92056-8", "Linear Algebra and Its Applications", "David C. Lay", "72.99", "linear_algebra_cover.jpg"},
	{"978-1-305-24848-4", "Calculus: Early Transcendentals", "James Stewart", "122.00", ""},
	{"978-0-133-75757-3", "Introduction to Probability", "Dimitri P. Bertsekas, John N. Tsitsiklis", "99.99", "introduction_to_probability_cover_573.jpg"},
	{"978-1-138-36991-7", "Introduction to Probability", "Joseph K. Blitzstein, Jessica Hwang", "89.99", "introduction_to_probability_cover_917.jpg"},
	{"978-1-118-53818-7", "Engineering Fluid Mechanics", "Donald F. Young", "78.50", ""},
	{"978-0-262-03384-8", "Introduction to the Theory of Computation", "Michael Sipser", "97.99", "theory_of_computation_cover.jpg"},
	{"978-0-674-53099-0", "The Feynman Lectures on Physics, Vol 1", "Richard P. Feynman", "55.00", "feynman_lectures_cover_990.jpg"},
	{"978-0-674-53099-1", "The Feynman Lectures on Physics, Vol 2", "Richard P. Feynman", "55.00", "feynman_lectures_cover_991.jpg"},
	{"978-0-674-53099-2", "The Feynman Lectures on Physics, Vol 3", "Richard P. Feynman", "55.00", "feynman_lectures_cover_992.jpg"},
}

var sampleUsers = []models.User{
	{Email: "soudea.forbes@mga.edu", Name: "Soudea", Role: models.RoleStudent, Address: "123 Lane Lane, Dublin GA 31021"},
	{Email: "alekya.thalakoti@mga.edu", Name: "Alekya", Role: models.RoleStudent},
	{Email: "joobum.kim@mga.edu", Name: "Dr. Kim", Role: models.RoleFaculty, Department: "ITEC", Address: "MGA Campus, Macon, GA, 31201"},
	{Email: "aloethecat@bookstore.com", Name: "Aloe", Role: models.RoleStaff},
}

var sampleCourseLists = []models.CourseList{
	{Professor: "joobum.kim@mga.edu", ProfessorName: "Dr. Kim", CourseTitle: "Data Structures", Department: "ITEC", CourseNumber: "3500"},
	{Professor: "nina.thomas@mga.edu", ProfessorName: "Dr. Nina Thomas", CourseTitle: "Digital Logic Design", Department: "EE", CourseNumber: "2001"},
	{Professor: "alice.jones@mga.edu", ProfessorName: "Dr. Alice Jones", CourseTitle: "Calculus I", Department: "MATH", CourseNumber: "1101"},
}

// sampleLinks pairs indexes into sampleCourseLists and sampleBooks.
var sampleLinks = [][2]int{{0, 0}, {0, 1}, {1, 0}}

// Seed loads the sample catalog, users and course lists. Books and course
// lists are only inserted into empty tables; users are inserted when missing.
func Seed(ctx context.Context, books repository.BookRepository, users repository.UserRepository, lists repository.CourseListRepository, logger *zap.Logger) error {
	for i := range sampleUsers {
		u := sampleUsers[i]
		if err := users.CreateIfMissing(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	_, bookCount, err := books.FindAll(ctx, 1, 1)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	existingLists, err := lists.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("count course lists: %w", err)
	}
	if bookCount > 0 || len(existingLists) > 0 {
		logger.Info("Seed skipped, catalog not empty", zap.Int64("books", bookCount), zap.Int("course_lists", len(existingLists)))
		return nil
	}

	bookIDs := make([]uint, len(sampleBooks))
	for i, sb := range sampleBooks {
		b := &models.Book{
			ISBN:     sb.isbn,
			Title:    sb.title,
			Author:   sb.author,
			Price:    decimal.RequireFromString(sb.price),
			CoverURL: sb.cover,
		}
		if b.CoverURL == "" {
			b.CoverURL = models.DefaultCoverURL
		}
		if err := books.Create(ctx, b); err != nil {
			return fmt.Errorf("seed book %s: %w", sb.isbn, err)
		}
		bookIDs[i] = b.ID
	}

	listIDs := make([]uint, len(sampleCourseLists))
	for i := range sampleCourseLists {
		cl := sampleCourseLists[i]
		if err := lists.Create(ctx, &cl); err != nil {
			return fmt.Errorf("seed course list %s: %w", cl.Name(), err)
		}
		listIDs[i] = cl.ID
	}

	for _, link := range sampleLinks {
		if err := lists.AddBook(ctx, listIDs[link[0]], bookIDs[link[1]]); err != nil {
			return fmt.Errorf("seed course list link: %w", err)
		}
	}

	logger.Info("Seed data loaded",
		zap.Int("books", len(sampleBooks)),
		zap.Int("users", len(sampleUsers)),
		zap.Int("course_lists", len(sampleCourseLists)),
	)
	return nil
}

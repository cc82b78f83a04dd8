package services_test

import (
	"context"
	"sort"
	"time"

	"bookstore-service/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- In-memory repositories ---

type memBookRepo struct {
	books  map[uint]*models.Book
	nextID uint
	err    error
}

func newMemBookRepo(books ...models.Book) *memBookRepo {
	r := &memBookRepo{books: make(map[uint]*models.Book), nextID: 1}
	for i := range books {
		b := books[i]
		r.books[b.ID] = &b
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (m *memBookRepo) Create(_ context.Context, b *models.Book) error {
	if m.err != nil {
		return m.err
	}
	b.ID = m.nextID
	m.nextID++
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *memBookRepo) FindByID(_ context.Context, id uint) (*models.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Book
	for _, id := range ids {
		if b, ok := m.books[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookRepo) FindAll(_ context.Context, _, _ int) ([]models.Book, int64, error) {
	var out []models.Book
	for _, b := range m.books {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), m.err
}

func (m *memBookRepo) Search(_ context.Context, _ string) ([]models.Book, error) {
	return nil, m.err
}

func (m *memBookRepo) Update(_ context.Context, b *models.Book) error {
	if _, ok := m.books[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *memBookRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.books[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.books, id)
	return nil
}

type memOrderRepo struct {
	orders     map[uint]*models.Order
	nextOrder  uint
	nextItem   uint
	createErr  error
	createCall int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uint]*models.Order), nextOrder: 1, nextItem: 1}
}

func (m *memOrderRepo) CreateWithItems(_ context.Context, o *models.Order, items []models.OrderItem) error {
	m.createCall++
	if m.createErr != nil {
		return m.createErr
	}
	o.ID = m.nextOrder
	m.nextOrder++
	for i := range items {
		items[i].ID = m.nextItem
		items[i].OrderID = o.ID
		m.nextItem++
	}
	o.Items = items
	cp := *o
	cp.Items = append([]models.OrderItem(nil), items...)
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id uint) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *memOrderRepo) FindByUser(_ context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserEmail == email {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrderRepo) FindItem(_ context.Context, itemID uint) (*models.OrderItem, error) {
	for _, o := range m.orders {
		for _, it := range o.Items {
			if it.ID == itemID {
				cp := it
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memOrderRepo) MarkReturnRequested(_ context.Context, itemID uint, at time.Time) error {
	for _, o := range m.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID && !o.Items[i].ReturnRequested {
				o.Items[i].ReturnRequested = true
				o.Items[i].ReturnDate = &at
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

// seedOrder stores an order as if it had been placed at createdAt.
func (m *memOrderRepo) seedOrder(email string, createdAt time.Time, bookIDs ...uint) *models.Order {
	o := &models.Order{UserEmail: email, Status: models.OrderStatusPending, CreatedAt: createdAt, TotalAmount: decimal.Zero}
	items := make([]models.OrderItem, 0, len(bookIDs))
	for _, id := range bookIDs {
		items = append(items, models.OrderItem{BookID: id, Quantity: 1, Price: decimal.NewFromInt(10)})
	}
	_ = m.CreateWithItems(context.Background(), o, items)
	return o
}

type memCourseListRepo struct {
	lists  map[uint]*models.CourseList
	links  map[[2]uint]bool
	nextID uint
}

func newMemCourseListRepo(lists ...models.CourseList) *memCourseListRepo {
	r := &memCourseListRepo{lists: make(map[uint]*models.CourseList), links: make(map[[2]uint]bool), nextID: 1}
	for i := range lists {
		l := lists[i]
		r.lists[l.ID] = &l
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
	}
	return r
}

func (m *memCourseListRepo) Create(_ context.Context, l *models.CourseList) error {
	l.ID = m.nextID
	m.nextID++
	cp := *l
	m.lists[l.ID] = &cp
	return nil
}

func (m *memCourseListRepo) FindByID(_ context.Context, id uint) (*models.CourseList, error) {
	l, ok := m.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memCourseListRepo) FindAll(_ context.Context) ([]models.CourseList, error) {
	var out []models.CourseList
	for _, l := range m.lists {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCourseListRepo) FindByProfessor(_ context.Context, email string) ([]models.CourseList, error) {
	var out []models.CourseList
	for _, l := range m.lists {
		if l.Professor == email {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memCourseListRepo) FindByBook(_ context.Context, bookID uint) ([]models.CourseList, error) {
	var out []models.CourseList
	for key := range m.links {
		if key[1] == bookID {
			out = append(out, *m.lists[key[0]])
		}
	}
	return out, nil
}

func (m *memCourseListRepo) FindBooks(_ context.Context, _ uint) ([]models.Book, error) {
	return nil, nil
}

func (m *memCourseListRepo) AddBook(_ context.Context, listID, bookID uint) error {
	m.links[[2]uint{listID, bookID}] = true
	return nil
}

func (m *memCourseListRepo) RemoveBook(_ context.Context, listID, bookID uint) error {
	delete(m.links, [2]uint{listID, bookID})
	return nil
}

// --- Collaborator mocks ---

type MockSNSPublisher struct{ mock.Mock }

func (m *MockSNSPublisher) Publish(ctx context.Context, topicArn, eventType string, message []byte) error {
	args := m.Called(ctx, topicArn, eventType, message)
	return args.Error(0)
}

// fixedGateway approves or declines every charge and records the amounts.
type fixedGateway struct {
	approve bool
	err     error
	charged []decimal.Decimal
}

func (g *fixedGateway) Authorize(_ context.Context, _ string, amount decimal.Decimal) (bool, error) {
	g.charged = append(g.charged, amount)
	return g.approve, g.err
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

package models

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the per-browser state kept server side. The cart is an ordered
// list of book ids; the same id may appear more than once.
type Session struct {
	ID        string  `json:"-"`
	Cart      []uint  `json:"cart"`
	UserEmail string  `json:"user_email,omitempty"`
	UserName  string  `json:"user_name,omitempty"`
	Role      Role    `json:"role,omitempty"`
	Flashes   []Flash `json:"flashes,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{ID: id, Cart: []uint{}}
}

func (s *Session) AddToCart(bookID uint) {
	s.Cart = append(s.Cart, bookID)
}

// CartItems returns a copy of the cart in insertion order.
func (s *Session) CartItems() []uint {
	out := make([]uint, len(s.Cart))
	copy(out, s.Cart)
	return out
}

// RemoveFromCart drops the first occurrence of bookID. It is a no-op when the
// id is not in the cart.
func (s *Session) RemoveFromCart(bookID uint) {
	for i, id := range s.Cart {
		if id == bookID {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			return
		}
	}
}

func (s *Session) ClearCart() {
	s.Cart = []uint{}
}

func (s *Session) Identified() bool {
	return s.UserEmail != ""
}

func (s *Session) SignIn(u *User) {
	s.UserEmail = u.Email
	s.UserName = u.Name
	s.Role = u.Role
}

// Reset drops identity, cart and pending notices.
func (s *Session) Reset() {
	s.UserEmail = ""
	s.UserName = ""
	s.Role = RoleGuest
	s.Cart = []uint{}
	s.Flashes = nil
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns pending notices and clears them.
func (s *Session) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// Actor is the identity a service call acts on behalf of.
type Actor struct {
	Email string
	Name  string
	Role  Role
}

func (s *Session) Actor() Actor {
	return Actor{Email: s.UserEmail, Name: s.UserName, Role: s.Role}
}

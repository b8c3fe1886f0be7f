package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory credential store
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by id
	nextID  int
	findErr error // if set, every lookup returns this error
	calls   []string

	beforeUpdate func() // runs between the service's lookup and the write
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// seed stores u under a generated 24 hex digit id and returns the stored copy.
func (r *stubUserRepo) seed(email string, role domain.Role, hash string) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{Email: email, Role: role, PasswordHash: hash})
	r.calls = nil
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls = append(r.calls, "create")
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls = append(r.calls, "findByEmail")
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls = append(r.calls, "findByID")
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) lookup(ref domain.TargetRef) *domain.User {
	for _, u := range r.users {
		if (ref.Kind == domain.TargetByID && u.ID == ref.Value) ||
			(ref.Kind == domain.TargetByEmail && u.Email == ref.Value) {
			return u
		}
	}
	return nil
}

func (r *stubUserRepo) UpdateByTarget(_ context.Context, ref domain.TargetRef, update domain.UserUpdate) (*domain.User, error) {
	r.calls = append(r.calls, "update")
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	u := r.lookup(ref)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	u.UpdatedAt = update.UpdatedAt
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteByTarget(_ context.Context, ref domain.TargetRef) (*domain.User, error) {
	r.calls = append(r.calls, "delete")
	u := r.lookup(ref)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, u.ID)
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, page domain.Page) ([]*domain.User, int64, error) {
	r.calls = append(r.calls, "list")
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	skip := int(page.Skip())
	if skip > len(all) {
		return []*domain.User{}, total, nil
	}
	end := skip + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

// ---------------------------------------------------------------------------
// Collaborator fakes
// ---------------------------------------------------------------------------

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) bool { return hash == "hashed:"+plain }

type stubTokens struct {
	signed []domain.Claims
}

func (s *stubTokens) Sign(c domain.Claims) (string, error) {
	s.signed = append(s.signed, c)
	return "token-for-" + c.UserID, nil
}

func (s *stubTokens) Verify(token string) (domain.Claims, error) {
	return domain.Claims{UserID: strings.TrimPrefix(token, "token-for-")}, nil
}

// ---------------------------------------------------------------------------
// In-memory catalog and orders
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	items  map[string]*domain.Product
	nextID int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("p%023x", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.items, id)
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ domain.Page) ([]*domain.Product, int64, error) {
	out := make([]*domain.Product, 0, len(r.items))
	for _, p := range r.items {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type stubOrderRepo struct {
	items  map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{items: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("o%023x", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Update(_ context.Context, id string, u domain.OrderUpdate) (*domain.Order, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if u.UserID != nil {
		o.UserID = *u.UserID
	}
	if u.Client != nil {
		o.Client = *u.Client
	}
	if u.Products != nil {
		o.Products = u.Products
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.DateProcessed != nil {
		o.DateProcessed = u.DateProcessed
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ domain.Page) ([]*domain.Order, int64, error) {
	out := make([]*domain.Order, 0, len(r.items))
	for _, o := range r.items {
		clone := *o
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (string, error) {
	if s.lookupErr != nil {
		return "", s.lookupErr
	}
	return s.keys[key], nil
}

func (s *stubIdempotency) Remember(_ context.Context, key, orderID string, _ time.Duration) error {
	s.keys[key] = orderID
	return nil
}

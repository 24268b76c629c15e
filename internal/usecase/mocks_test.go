package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/wist/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// MockScraper is a mock implementation of domain.ProductScraper
type MockScraper struct {
	product *domain.ScrapedProduct
	err     error
	calls   int
	urls    []string
	// onScrape runs before returning, e.g. to cancel the caller's context
	onScrape func()
	// build, when set, produces the result per URL instead of product
	build func(url string) *domain.ScrapedProduct
}

func (m *MockScraper) Scrape(ctx context.Context, url string) (*domain.ScrapedProduct, error) {
	m.calls++
	m.urls = append(m.urls, url)
	if m.onScrape != nil {
		m.onScrape()
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.build != nil {
		return m.build(url), nil
	}
	return m.product, nil
}

// MockItemRepository is an in-memory domain.ItemRepository
type MockItemRepository struct {
	mu        sync.Mutex
	items     map[int64]domain.WishlistItem
	nextID    int64
	createErr error
	creates   int
}

func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{items: make(map[int64]domain.WishlistItem), nextID: 1}
}

func (m *MockItemRepository) Create(ctx context.Context, wishlistID int64, data domain.WishlistItemData) (*domain.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}
	now := time.Now()
	item := domain.WishlistItem{
		ID:                 m.nextID,
		WishlistID:         wishlistID,
		SourceURL:          data.SourceURL,
		ProductName:        data.ProductName,
		ProductDescription: data.ProductDescription,
		Price:              data.Price,
		Currency:           data.Currency,
		ImageURL:           data.ImageURL,
		RetailerName:       data.RetailerName,
		RetailerDomain:     data.RetailerDomain,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	m.items[item.ID] = item
	m.nextID++
	return &item, nil
}

func (m *MockItemRepository) ListByWishlist(ctx context.Context, wishlistID int64) ([]domain.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.WishlistItem
	for _, item := range m.items {
		if item.WishlistID == wishlistID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MockItemRepository) GetByID(ctx context.Context, itemID int64) (*domain.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (m *MockItemRepository) Update(ctx context.Context, itemID int64, data domain.WishlistItemData) (*domain.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	item.SourceURL = data.SourceURL
	item.ProductName = data.ProductName
	item.ProductDescription = data.ProductDescription
	item.Price = data.Price
	item.Currency = data.Currency
	item.ImageURL = data.ImageURL
	item.RetailerName = data.RetailerName
	item.RetailerDomain = data.RetailerDomain
	item.UpdatedAt = time.Now()
	m.items[itemID] = item
	return &item, nil
}

func (m *MockItemRepository) Delete(ctx context.Context, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[itemID]; !ok {
		return domain.ErrItemNotFound
	}
	delete(m.items, itemID)
	return nil
}

func (m *MockItemRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// MockWishlistRepository is an in-memory domain.WishlistRepository
type MockWishlistRepository struct {
	wishlists map[int64]domain.Wishlist
	nextID    int64
}

func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{wishlists: make(map[int64]domain.Wishlist), nextID: 1}
}

func (m *MockWishlistRepository) Create(ctx context.Context, userID int64, name string) (*domain.Wishlist, error) {
	now := time.Now()
	w := domain.Wishlist{ID: m.nextID, UserID: userID, Name: name, CreatedAt: now, UpdatedAt: now}
	m.wishlists[w.ID] = w
	m.nextID++
	return &w, nil
}

func (m *MockWishlistRepository) ListActive(ctx context.Context, userID int64) ([]domain.Wishlist, error) {
	out := []domain.Wishlist{}
	for _, w := range m.wishlists {
		if w.UserID == userID && w.DeletedAt == nil {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *MockWishlistRepository) GetActive(ctx context.Context, wishlistID, userID int64) (*domain.Wishlist, error) {
	w, ok := m.wishlists[wishlistID]
	if !ok || w.UserID != userID || w.DeletedAt != nil {
		return nil, domain.ErrWishlistNotFound
	}
	return &w, nil
}

func (m *MockWishlistRepository) Rename(ctx context.Context, wishlistID, userID int64, name string) (*domain.Wishlist, error) {
	w, err := m.GetActive(ctx, wishlistID, userID)
	if err != nil {
		return nil, err
	}
	w.Name = name
	m.wishlists[w.ID] = *w
	return w, nil
}

func (m *MockWishlistRepository) SoftDelete(ctx context.Context, wishlistID, userID int64) error {
	w, err := m.GetActive(ctx, wishlistID, userID)
	if err != nil {
		return err
	}
	now := time.Now()
	w.DeletedAt = &now
	m.wishlists[w.ID] = *w
	return nil
}

// MockUserRepository is an in-memory domain.UserRepository
type MockUserRepository struct {
	users  map[int64]domain.User
	nextID int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]domain.User), nextID: 1}
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash string, name *string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	u := domain.User{ID: m.nextID, Email: email, PasswordHash: passwordHash, Name: name, CreatedAt: time.Now()}
	m.users[u.ID] = u
	m.nextID++
	return &u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// MockPublisher records published items
type MockPublisher struct {
	published []*domain.WishlistItem
	err       error
}

func (m *MockPublisher) PublishItemCreated(ctx context.Context, item *domain.WishlistItem) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, item)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// plainHasher "hashes" by prefixing, enough to exercise the service logic
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

// stubTokens issues "token-{email}"
type stubTokens struct{}

func (stubTokens) Generate(user *domain.User) (string, error) {
	return "token-" + user.Email, nil
}

func (stubTokens) Parse(token string) (*domain.TokenClaims, error) {
	if !strings.HasPrefix(token, "token-") {
		return nil, domain.ErrUnauthorized
	}
	return &domain.TokenClaims{UserID: 1, Email: strings.TrimPrefix(token, "token-")}, nil
}

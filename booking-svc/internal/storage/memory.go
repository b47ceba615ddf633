package storage

import (
	"context"
	"sort"
	"sync"

	"cafe-assistant/booking-svc/internal/domain"
)

// MemoryStore keeps everything in process. The overlap re-check and the
// reservation insert happen under one write lock.
type MemoryStore struct {
	mu           sync.RWMutex
	menu         map[int64]domain.MenuItem
	tables       map[int64]domain.Table
	reservations map[int64]domain.Reservation
	orders       map[int64]domain.Order
	nextID       int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		menu:         make(map[int64]domain.MenuItem),
		tables:       make(map[int64]domain.Table),
		reservations: make(map[int64]domain.Reservation),
		orders:       make(map[int64]domain.Order),
	}
}

func (s *MemoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

// AddTable stores t and returns it with its assigned id.
func (s *MemoryStore) AddTable(t domain.Table) domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.newID()
	s.tables[t.ID] = t
	return t
}

// AddMenuItem stores it and returns it with its assigned id.
func (s *MemoryStore) AddMenuItem(it domain.MenuItem) domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	it.ID = s.newID()
	s.menu[it.ID] = it
	return it
}

func (s *MemoryStore) SetMenuItemActive(id int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.menu[id]; ok {
		it.IsActive = active
		s.menu[id] = it
	}
}

func (s *MemoryStore) SetTableActive(id int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[id]; ok {
		t.IsActive = active
		s.tables[id] = t
	}
}

func (s *MemoryStore) SeedIfEmpty(_ context.Context) error {
	s.mu.RLock()
	noTables, noMenu := len(s.tables) == 0, len(s.menu) == 0
	s.mu.RUnlock()

	if noTables {
		for _, t := range SeedTables() {
			s.AddTable(t)
		}
	}
	if noMenu {
		for _, it := range ReferenceMenu() {
			it.IsActive = true
			s.AddMenuItem(it)
		}
	}
	return nil
}

func (s *MemoryStore) ApplyReferenceMenu(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, it := range s.menu {
		it.IsActive = false
		s.menu[id] = it
	}
	for _, ref := range ReferenceMenu() {
		if it, ok := s.findLocked(ref.Category, ref.Title); ok {
			it.Description = ref.Description
			it.PriceCents = ref.PriceCents
			it.IsActive = true
			s.menu[it.ID] = it
			continue
		}
		ref.ID = s.newID()
		ref.IsActive = true
		s.menu[ref.ID] = ref
	}
	return nil
}

func (s *MemoryStore) sortedMenu() []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(s.menu))
	for _, it := range s.menu {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, it := range s.menu {
		if it.IsActive && !seen[it.Category] {
			seen[it.Category] = true
			categories = append(categories, it.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *MemoryStore) ListMenuItems(_ context.Context, category string) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []domain.MenuItem{}
	for _, it := range s.sortedMenu() {
		if it.IsActive && it.Category == category {
			items = append(items, it)
		}
	}
	return items, nil
}

func (s *MemoryStore) ListActiveMenuItems(_ context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []domain.MenuItem{}
	for _, it := range s.sortedMenu() {
		if it.IsActive {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Category < items[j].Category })
	return items, nil
}

func (s *MemoryStore) GetMenuItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.menu[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (s *MemoryStore) findLocked(category, title string) (domain.MenuItem, bool) {
	var found domain.MenuItem
	ok := false
	for _, it := range s.sortedMenu() {
		if it.Category != category || it.Title != title {
			continue
		}
		if !ok || (it.IsActive && !found.IsActive) {
			found, ok = it, true
		}
	}
	return found, ok
}

func (s *MemoryStore) FindMenuItem(_ context.Context, category, title string) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.findLocked(category, title)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (s *MemoryStore) UpdateMenuItemPrice(_ context.Context, id int64, priceCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.menu[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.PriceCents = priceCents
	s.menu[id] = it
	return nil
}

func (s *MemoryStore) ListTables(_ context.Context, minSeats int) ([]domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := []domain.Table{}
	for _, t := range s.tables {
		if t.IsActive && t.Seats >= minSeats {
			tables = append(tables, t)
		}
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Seats != tables[j].Seats {
			return tables[i].Seats < tables[j].Seats
		}
		return tables[i].ID < tables[j].ID
	})
	return tables, nil
}

func (s *MemoryStore) GetTable(_ context.Context, id int64) (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) overlapLocked(tableID, skipID int64, window domain.Window) bool {
	for _, r := range s.reservations {
		if r.ID == skipID || r.TableID != tableID || !r.Status.Blocking() {
			continue
		}
		if r.Window().Overlaps(window) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) HasOverlap(_ context.Context, tableID int64, window domain.Window) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlapLocked(tableID, 0, window), nil
}

func (s *MemoryStore) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlapLocked(res.TableID, 0, res.Window()) {
		return domain.ErrSlotTaken
	}
	res.ID = s.newID()
	if t, ok := s.tables[res.TableID]; ok {
		res.TableCode = t.Code
	}
	s.reservations[res.ID] = *res
	return nil
}

func (s *MemoryStore) GetReservation(_ context.Context, id int64) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) ListRecentReservations(_ context.Context, limit int) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *MemoryStore) UpdateReservationStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if status.Blocking() && !r.Status.Blocking() && s.overlapLocked(r.TableID, r.ID, r.Window()) {
		return domain.ErrSlotTaken
	}
	r.Status = status
	s.reservations[id] = r
	return nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.newID()
	stored := *order
	stored.Lines = append([]domain.OrderLine(nil), order.Lines...)
	s.orders[order.ID] = stored
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &o, nil
}

func (s *MemoryStore) ListRecentOrders(_ context.Context, limit int) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		o.Lines = append([]domain.OrderLine(nil), o.Lines...)
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

// MemorySessionStore keeps encoded sessions so callers never share drafts.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64][]byte)}
}

func (s *MemorySessionStore) Load(_ context.Context, userID int64) (domain.Session, error) {
	s.mu.Lock()
	data, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return domain.Idle{}, nil
	}
	return domain.UnmarshalSession(data)
}

func (s *MemorySessionStore) Save(_ context.Context, userID int64, session domain.Session) error {
	data, err := domain.MarshalSession(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[userID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

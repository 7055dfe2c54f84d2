package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"orderdesk/internal/domain/order"
	"orderdesk/internal/infrastructure/encoding/orderjson"
	"orderdesk/pkg/logger"
)

// State is the list view lifecycle: Idle -> Loading -> {Loaded, Failed},
// back to Loading on every refetch.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Client abstracts the upstream commerce backend so the service can be tested
// without a network.
type Client interface {
	ListOrders(ctx context.Context) ([]json.RawMessage, error)
	GetOrder(ctx context.Context, id string) (json.RawMessage, error)
	GetOrderByNumber(ctx context.Context, number string) (json.RawMessage, error)
	CreateOrder(ctx context.Context, payload []byte) error
	UpdateOrderStatus(ctx context.Context, id string, status int) error
	DeleteOrder(ctx context.Context, id string) error
	RestoreOrder(ctx context.Context, id string) error
}

// CreateOrderCommand is the create request accepted from dashboard clients
// and forwarded upstream.
type CreateOrderCommand struct {
	CustomerName  string                   `json:"customerName" binding:"required"`
	CustomerEmail string                   `json:"customerEmail"`
	CustomerPhone string                   `json:"customerPhone"`
	Items         []CreateOrderItemCommand `json:"items" binding:"required,min=1"`
	Notes         string                   `json:"notes"`
}

type CreateOrderItemCommand struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price"`
}

// ListView is the serializable view-model handed to UI collaborators.
type ListView struct {
	State      State          `json:"state"`
	Items      []order.Record `json:"data"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalCount int            `json:"totalCount"`
	Error      string         `json:"error,omitempty"`
}

// Service orchestrates fetch -> normalize -> filter/sort -> paginate and the
// mutation round-trips. The order list is fetched once and selected entirely
// in memory; every mutation triggers a full refetch instead of patching the
// mutated record locally.
type Service struct {
	client Client
	log    logger.Logger

	mu         sync.Mutex
	refreshing bool
	state      State
	records    []order.Record
	lastErr    error
}

func NewService(client Client, log logger.Logger) *Service {
	return &Service{
		client: client,
		log:    log,
		state:  StateIdle,
	}
}

// Refresh replaces the in-memory collection with a freshly fetched and
// normalized one. At most one refresh runs at a time; concurrent calls
// return immediately and leave the in-flight one to finish.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return nil
	}
	s.refreshing = true
	s.state = StateLoading
	s.mu.Unlock()

	payloads, err := s.client.ListOrders(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false

	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		if errors.Is(err, order.ErrMalformedResponse) {
			// unusable payload shape: show an empty list rather than stale data
			s.records = nil
		}
		// otherwise keep the previously loaded records so the view stays consistent
		s.log.Error("order list refresh failed", logger.Error(err))
		return err
	}

	records := make([]order.Record, 0, len(payloads))
	for _, payload := range payloads {
		rec, err := orderjson.FromJSON(payload)
		if err != nil {
			s.log.Warn("skipping undecodable order payload", logger.Error(err))
			continue
		}
		records = append(records, rec)
	}

	s.records = records
	s.state = StateLoaded
	s.lastErr = nil
	s.log.Info("order list refreshed", logger.Int("count", len(records)))
	return nil
}

// List runs the selection pipeline over the current collection.
func (s *Service) List(q Query, pageNumber, pageSize int) ListView {
	s.mu.Lock()
	state := s.state
	lastErr := s.lastErr
	records := make([]order.Record, len(s.records))
	copy(records, s.records)
	s.mu.Unlock()

	filtered := ApplyQuery(records, q)
	page := Paginate(filtered, pageSize, 1)
	pageNumber = ClampPage(pageNumber, page.TotalPages)
	page = Paginate(filtered, pageSize, pageNumber)

	view := ListView{
		State:      state,
		Items:      page.Items,
		Page:       pageNumber,
		TotalPages: page.TotalPages,
		TotalCount: len(filtered),
	}
	if lastErr != nil {
		view.Error = lastErr.Error()
	}
	return view
}

// Get fetches and normalizes a single order by id.
func (s *Service) Get(ctx context.Context, id string) (order.Record, error) {
	payload, err := s.client.GetOrder(ctx, id)
	if err != nil {
		return order.Record{}, err
	}
	return orderjson.FromJSON(payload)
}

// GetByNumber fetches and normalizes a single order by its order number.
func (s *Service) GetByNumber(ctx context.Context, number string) (order.Record, error) {
	payload, err := s.client.GetOrderByNumber(ctx, number)
	if err != nil {
		return order.Record{}, err
	}
	return orderjson.FromJSON(payload)
}

// Create submits a new order upstream and refetches the list.
func (s *Service) Create(ctx context.Context, cmd CreateOrderCommand) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode create order command: %w", err)
	}
	if err := s.client.CreateOrder(ctx, payload); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// UpdateStatus changes an order's status upstream and refetches the list.
func (s *Service) UpdateStatus(ctx context.Context, id string, status int) error {
	if err := s.client.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Delete marks the record deleted locally for responsiveness, then calls
// upstream and refetches. The local toggle is reverted if the call fails.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.setDeleted(id, true)
	if err := s.client.DeleteOrder(ctx, id); err != nil {
		s.setDeleted(id, false)
		return err
	}
	return s.Refresh(ctx)
}

// Restore is the inverse of Delete.
func (s *Service) Restore(ctx context.Context, id string) error {
	s.setDeleted(id, false)
	if err := s.client.RestoreOrder(ctx, id); err != nil {
		s.setDeleted(id, true)
		return err
	}
	return s.Refresh(ctx)
}

// RunAutoRefresh refetches the list on a fixed interval until the context is
// cancelled.
func (s *Service) RunAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Warn("auto refresh failed", logger.Error(err))
			}
		}
	}
}

func (s *Service) setDeleted(id string, deleted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Deleted = deleted
		}
	}
}

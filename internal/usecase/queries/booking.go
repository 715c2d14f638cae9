package queries

import (
	"context"
	"errors"
	"sort"

	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

const listFetchConcurrency = 8

var (
	ErrBookingNotFound = errs.Mark(errors.New("Booking not found"), errs.ErrNotFound)
	ErrNotParty        = errs.Mark(errors.New("not a party to this booking"), errs.ErrPermission)
	ErrInvalidCursor   = errs.Mark(errors.New("invalid cursor"), errs.ErrValidation)
)

type BookingListItem struct {
	BookingID    string
	Status       booking.Status
	ServiceName  string
	LocationText string
	CustomerID   string
	CustomerName string
	WorkerID     string
	Subtotal     *float64
	CreatedAt    int64
	UpdatedAt    int64
}

type BookingQueries interface {
	GetBooking(ctx context.Context, actor user.Identity, bookingID string) (*booking.Booking, error)
	ListMyBookings(ctx context.Context, actor user.Identity, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	store shared.DocumentStore
}

func NewBookingQueries(store shared.DocumentStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetBooking is visible to both parties and to admins.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor user.Identity, bookingID string) (*booking.Booking, error) {
	if bookingID == "" {
		return nil, errs.Validation("bookingId is required")
	}
	b, err := q.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !b.IsParty(actor.UID) && !actor.IsAdmin() {
		return nil, ErrNotParty
	}
	return b, nil
}

// ListMyBookings walks the caller's userBookings index, newest first.
// Index entries whose booking is gone are skipped.
func (q *bookingQueriesImpl) ListMyBookings(ctx context.Context, actor user.Identity, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	if actor.Role != user.RoleCustomer && actor.Role != user.RoleWorker {
		return []*BookingListItem{}, nil, nil
	}

	var (
		afterAt int64
		afterID string
	)
	if after != nil && after.After != "" {
		var err error
		if afterAt, afterID, err = DecodeAfterCursor(after.After); err != nil {
			return nil, nil, errs.Mark(errs.Wrap(err, "decode cursor"), ErrInvalidCursor)
		}
	}

	snap, err := q.store.Get(ctx, shared.UserBookingsPath(actor.Role, actor.UID))
	if err != nil {
		return nil, nil, errs.Internal(err, "read booking index")
	}
	index, _ := snap.Value.(map[string]any)
	ids := make([]string, 0, len(index))
	for id, v := range index {
		if v == true {
			ids = append(ids, id)
		}
	}

	loaded := make([]*booking.Booking, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listFetchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			b, err := q.load(gctx, id)
			loaded[i] = b
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	items := make([]*BookingListItem, 0, len(loaded))
	for _, b := range loaded {
		if b != nil {
			items = append(items, toListItem(b))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return newer(items[i].CreatedAt, items[i].BookingID, items[j].CreatedAt, items[j].BookingID)
	})

	if afterID != "" {
		start := sort.Search(len(items), func(i int) bool {
			return newer(afterAt, afterID, items[i].CreatedAt, items[i].BookingID)
		})
		items = items[start:]
	}

	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.BookingID)}
	}
	return items, next, nil
}

func newer(at int64, id string, otherAt int64, otherID string) bool {
	if at != otherAt {
		return at > otherAt
	}
	return id > otherID
}

func (q *bookingQueriesImpl) load(ctx context.Context, bookingID string) (*booking.Booking, error) {
	snap, err := q.store.Get(ctx, shared.BookingPath(bookingID))
	if err != nil {
		if errors.Is(err, shared.ErrInvalidPath) {
			return nil, errs.Validation("invalid bookingId")
		}
		return nil, errs.Internal(err, "load booking")
	}
	if !snap.Exists() {
		return nil, nil
	}
	var b booking.Booking
	if err := snap.Decode(&b); err != nil {
		return nil, errs.Internal(err, "decode booking")
	}
	if b.BookingID == "" {
		b.BookingID = bookingID
	}
	return &b, nil
}

func toListItem(b *booking.Booking) *BookingListItem {
	item := &BookingListItem{
		BookingID:    b.BookingID,
		Status:       b.Status,
		ServiceName:  b.ServiceName,
		LocationText: b.LocationText,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		WorkerID:     b.WorkerID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Invoice != nil {
		subtotal := b.Invoice.Subtotal
		item.Subtotal = &subtotal
	}
	return item
}

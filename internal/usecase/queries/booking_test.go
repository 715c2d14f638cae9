//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"testing"

	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/user"
	"servicebook/internal/infra/docstore"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/testutil/builder"
	"servicebook/internal/usecase/queries"
	"servicebook/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store shared.DocumentStore, bookings ...*booking.Booking) {
	t.Helper()
	ws := shared.WriteSet{}
	for _, b := range bookings {
		ws[shared.BookingPath(b.BookingID)] = b
		ws[shared.UserBookingPath(user.RoleCustomer, b.CustomerID, b.BookingID)] = true
		ws[shared.UserBookingPath(user.RoleWorker, b.WorkerID, b.BookingID)] = true
	}
	require.NoError(t, store.Update(context.Background(), ws))
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(docstore.DefaultMaxAttempts)
	seed(t, store, builder.NewBookingBuilder().WithInvoice(2800).Build())
	q := queries.NewBookingQueries(store)

	for _, actor := range []user.Identity{
		{UID: builder.CustomerUID, Role: user.RoleCustomer},
		{UID: builder.WorkerUID, Role: user.RoleWorker},
		{UID: "admin-1", Role: user.RoleAdmin},
	} {
		b, err := q.GetBooking(ctx, actor, builder.BookingID)
		require.NoError(t, err, actor.UID)
		assert.Equal(t, builder.BookingID, b.BookingID)
		assert.Equal(t, 2800.0, b.Invoice.Subtotal)
	}

	_, err := q.GetBooking(ctx, user.Identity{UID: builder.StrangerUID, Role: user.RoleCustomer}, builder.BookingID)
	assert.ErrorIs(t, err, queries.ErrNotParty)
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))

	_, err = q.GetBooking(ctx, user.Identity{UID: builder.CustomerUID, Role: user.RoleCustomer}, "bk-404")
	assert.ErrorIs(t, err, queries.ErrBookingNotFound)

	_, err = q.GetBooking(ctx, user.Identity{UID: builder.CustomerUID, Role: user.RoleCustomer}, "bad.id")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestListMyBookings(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(docstore.DefaultMaxAttempts)
	var all []*booking.Booking
	for i := range 5 {
		all = append(all, builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = fmt.Sprintf("bk-%d", i)
			b.CreatedAt = builder.BaseMillis + int64(i)
		}).Build())
	}
	seed(t, store, all...)
	// index entry whose booking vanished
	require.NoError(t, store.Update(ctx, shared.WriteSet{"userBookings/customers/cust-1/bk-gone": true}))
	q := queries.NewBookingQueries(store)
	customer := user.Identity{UID: builder.CustomerUID, Role: user.RoleCustomer}

	page, next, err := q.ListMyBookings(ctx, customer, nil, 2)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"bk-4", "bk-3"}, ids(page))

	page, next, err = q.ListMyBookings(ctx, customer, next, 2)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"bk-2", "bk-1"}, ids(page))

	page, next, err = q.ListMyBookings(ctx, customer, next, 2)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"bk-0"}, ids(page))

	page, _, err = q.ListMyBookings(ctx, user.Identity{UID: builder.WorkerUID, Role: user.RoleWorker}, nil, 0)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	page, _, err = q.ListMyBookings(ctx, user.Identity{UID: "nobody"}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, _, err = q.ListMyBookings(ctx, customer, &queries.Cursor{After: "%%%"}, 2)
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func ids(items []*queries.BookingListItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.BookingID
	}
	return out
}

func TestCursorRoundTrip(t *testing.T) {
	c := queries.EncodeAfterCursor(1760000000000, "0199-abc-def")
	at, id, err := queries.DecodeAfterCursor(c)
	require.NoError(t, err)
	assert.Equal(t, int64(1760000000000), at)
	assert.Equal(t, "0199-abc-def", id)

	_, _, err = queries.DecodeAfterCursor("")
	assert.Error(t, err)
}

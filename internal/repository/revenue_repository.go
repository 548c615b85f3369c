package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// RevenueRepo runs the reporting queries.  Totals are computed by MySQL;
// only the per-booking lines are materialised.
type RevenueRepo struct {
	db *sql.DB
}

func NewRevenueRepo(db *sql.DB) *RevenueRepo { return &RevenueRepo{db: db} }

// HotelRevenue sums active bookings of a hotel whose stay lies entirely
// within [from, to].
func (r *RevenueRepo) HotelRevenue(ctx context.Context, hotelID uint64, from, to model.Date) (*model.HotelRevenue, error) {
	out := &model.HotelRevenue{HotelID: hotelID, Details: []model.RevenueLine{}}
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_amount_cents), 0), COUNT(*) FROM bookings WHERE hotel_id = ? AND status = 'booked' AND start_date >= ? AND end_date <= ?",
		hotelID, from, to).Scan(&out.TotalRevenue, &out.BookingCount)
	if err != nil {
		return nil, err
	}

	const q = `SELECT b.id, h.name, b.customer_name, rt.type, b.quantity, b.total_amount_cents, b.start_date, b.end_date
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
JOIN room_types rt ON rt.id = b.room_type_id
WHERE b.hotel_id = ? AND b.status = 'booked' AND b.start_date >= ? AND b.end_date <= ?
ORDER BY b.start_date, b.id`
	rows, err := r.db.QueryContext(ctx, q, hotelID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l model.RevenueLine
		if err := rows.Scan(&l.BookingID, &l.HotelName, &l.CustomerName, &l.RoomType,
			&l.Quantity, &l.BookingRevenue, &l.StartDate, &l.EndDate); err != nil {
			return nil, err
		}
		l.PricePerRoom = chargedNightlyRate(l.BookingRevenue, l.Quantity, len(model.Nights(l.StartDate, l.EndDate)))
		out.Details = append(out.Details, l)
	}
	return out, rows.Err()
}

// chargedNightlyRate is the average amount a booking paid per room per
// night.  Rate overrides make it differ from the room type's current price.
func chargedNightlyRate(total model.Money, quantity, nights int) model.Money {
	if quantity <= 0 || nights <= 0 {
		return 0
	}
	return total / model.Money(quantity*nights)
}

// DailyRevenue groups the owner's active bookings by start date within
// [from, to], ascending.
func (r *RevenueRepo) DailyRevenue(ctx context.Context, ownerID uint64, from, to model.Date) ([]model.DailyRevenue, error) {
	const q = `SELECT b.start_date, SUM(b.total_amount_cents)
FROM bookings b JOIN hotels h ON h.id = b.hotel_id
WHERE h.owner_id = ? AND b.status = 'booked' AND b.start_date >= ? AND b.start_date <= ?
GROUP BY b.start_date
ORDER BY b.start_date`
	rows, err := r.db.QueryContext(ctx, q, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DailyRevenue{}
	for rows.Next() {
		var d model.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

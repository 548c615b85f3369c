package service

import (
	"context"
	"time"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

// RevenueHistory is the daily revenue of an owner's hotels over a window.
type RevenueHistory struct {
	From         model.Date           `json:"from"`
	To           model.Date           `json:"to"`
	TotalRevenue model.Money          `json:"totalRevenue"`
	History      []model.DailyRevenue `json:"history"`
}

type RevenueService struct {
	revenue   *repository.RevenueRepo
	ownership *Ownership
	now       func() time.Time
}

func NewRevenueService(revenue *repository.RevenueRepo, ownership *Ownership) *RevenueService {
	return &RevenueService{revenue: revenue, ownership: ownership, now: time.Now}
}

// HotelRevenue reports the active bookings of an owned hotel whose stay
// lies within [from, to].
func (s *RevenueService) HotelRevenue(ctx context.Context, ownerID, hotelID uint64, from, to model.Date) (*model.HotelRevenue, error) {
	if to.Before(from) {
		return nil, invalid("End date must be after start date")
	}
	if err := s.ownership.Authorize(ctx, hotelID, ownerID); err != nil {
		return nil, err
	}
	return s.revenue.HotelRevenue(ctx, hotelID, from, to)
}

// LastThreeMonths buckets the owner's revenue by booking start date from
// the first of the month two months back until today.
func (s *RevenueService) LastThreeMonths(ctx context.Context, ownerID uint64) (*RevenueHistory, error) {
	from, to := LastThreeMonthsWindow(model.NewDate(s.now()))
	days, err := s.revenue.DailyRevenue(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	out := &RevenueHistory{From: from, To: to, History: days}
	for _, d := range days {
		out.TotalRevenue += d.Revenue
	}
	return out, nil
}

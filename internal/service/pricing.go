package service

import (
	"time"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// QuoteStay prices one room for every night of [start, end): the override
// for that day when present, otherwise base.
func QuoteStay(base model.Money, rates []model.RoomRate, start, end model.Date) model.Money {
	byDay := make(map[string]model.Money, len(rates))
	for _, r := range rates {
		byDay[r.Date.String()] = r.Price
	}
	var total model.Money
	for _, night := range model.Nights(start, end) {
		if p, ok := byDay[night.String()]; ok {
			total += p
			continue
		}
		total += base
	}
	return total
}

// LastThreeMonthsWindow returns the first day of the month two months
// before today, and today.
func LastThreeMonthsWindow(today model.Date) (model.Date, model.Date) {
	y, m, _ := today.Date()
	return model.NewDate(time.Date(y, m-2, 1, 0, 0, 0, 0, time.UTC)), today
}

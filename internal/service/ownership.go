package service

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

type ownerLookup interface {
	OwnerOf(ctx context.Context, hotelID uint64) (uint64, error)
}

// Ownership answers "does this admin own this hotel" for the read-heavy
// room and revenue endpoints.  Owners never change, so lookups are cached
// in process for ttl.
type Ownership struct {
	lookup ownerLookup
	cache  *ttlcache.Cache[uint64, uint64]
}

func NewOwnership(lookup ownerLookup, ttl time.Duration) *Ownership {
	cache := ttlcache.New(
		ttlcache.WithTTL[uint64, uint64](ttl),
		ttlcache.WithDisableTouchOnHit[uint64, uint64](),
	)
	go cache.Start()
	return &Ownership{lookup: lookup, cache: cache}
}

// OwnerOf returns the owner of hotelID.  Errors are not cached.
func (o *Ownership) OwnerOf(ctx context.Context, hotelID uint64) (uint64, error) {
	if item := o.cache.Get(hotelID); item != nil {
		return item.Value(), nil
	}
	owner, err := o.lookup.OwnerOf(ctx, hotelID)
	if err != nil {
		return 0, err
	}
	o.cache.Set(hotelID, owner, ttlcache.DefaultTTL)
	return owner, nil
}

// Authorize returns repository.ErrHotelNotFound unless adminID owns
// hotelID, so foreign hotels look exactly like missing ones.
func (o *Ownership) Authorize(ctx context.Context, hotelID, adminID uint64) error {
	owner, err := o.OwnerOf(ctx, hotelID)
	if err != nil {
		return err
	}
	if owner != adminID {
		return repository.ErrHotelNotFound
	}
	return nil
}

// Close stops the expiry loop.
func (o *Ownership) Close() { o.cache.Stop() }

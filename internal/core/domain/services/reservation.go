package services

import (
	"sync"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// ReservationRegistry is a short-lived, in-process lease on vehicle and
// driver ids. Greedy selection reads fleet state and later commits an
// assignment without any optimistic concurrency control; taking a lease
// between the two steps keeps a concurrent handler from picking the same
// vehicle or driver while an assignment is in flight.
//
// Leases expire after the configured TTL so a crashed handler cannot strand
// a resource. The registry is safe for concurrent use.
type ReservationRegistry struct {
	mu     sync.Mutex
	ttl    time.Duration
	leases map[string]time.Time
}

// NewReservationRegistry creates a registry whose leases expire after ttl.
func NewReservationRegistry(ttl time.Duration) *ReservationRegistry {
	return &ReservationRegistry{
		ttl:    ttl,
		leases: make(map[string]time.Time),
	}
}

// TryReserve takes a lease on every given id, all-or-nothing. It returns
// false, reserving nothing, if any id already holds an unexpired lease.
func (r *ReservationRegistry) TryReserve(ids ...kernel.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		if expiry, held := r.leases[id.String()]; held && expiry.After(now) {
			return false
		}
	}

	expiry := now.Add(r.ttl)
	for _, id := range ids {
		r.leases[id.String()] = expiry
	}
	return true
}

// Release drops the leases for the given ids. Releasing an unheld id is a
// no-op.
func (r *ReservationRegistry) Release(ids ...kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.leases, id.String())
	}
}

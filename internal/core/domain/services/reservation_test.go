package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestReservationRegistry(t *testing.T) {
	t.Run("reserve then release", func(t *testing.T) {
		registry := services.NewReservationRegistry(time.Minute)
		vehicleID := kernel.NewUUID()
		driverID := kernel.NewUUID()

		assert.True(t, registry.TryReserve(vehicleID, driverID))
		assert.False(t, registry.TryReserve(vehicleID))
		assert.False(t, registry.TryReserve(driverID))

		registry.Release(vehicleID, driverID)
		assert.True(t, registry.TryReserve(vehicleID, driverID))
	})

	t.Run("all-or-nothing when one id is held", func(t *testing.T) {
		registry := services.NewReservationRegistry(time.Minute)
		held := kernel.NewUUID()
		free := kernel.NewUUID()

		assert.True(t, registry.TryReserve(held))
		assert.False(t, registry.TryReserve(free, held))

		// free must not have been leased by the failed attempt
		assert.True(t, registry.TryReserve(free))
	})

	t.Run("expired leases are reclaimable", func(t *testing.T) {
		registry := services.NewReservationRegistry(10 * time.Millisecond)
		id := kernel.NewUUID()

		assert.True(t, registry.TryReserve(id))
		time.Sleep(20 * time.Millisecond)
		assert.True(t, registry.TryReserve(id))
	})

	t.Run("only one of many concurrent reservers wins", func(t *testing.T) {
		registry := services.NewReservationRegistry(time.Minute)
		id := kernel.NewUUID()

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0

		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if registry.TryReserve(id) {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})
}

package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"medimeet-api/internal/domain/entity"
	"medimeet-api/pkg/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestSlotCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *metrics.Metrics, SlotCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	return mr, m, NewSlotCacheService(client, ttl, testLogger(), m)
}

func countingLoader(calls *int32, slots []entity.SlotAvailability) SlotLoader {
	return func(context.Context) ([]entity.SlotAvailability, error) {
		atomic.AddInt32(calls, 1)
		return slots, nil
	}
}

func freeDay() []entity.SlotAvailability {
	return entity.ResolveSlotAvailability([]entity.DoctorID{uuid.New()}, nil)
}

func TestSlotCacheKeys(t *testing.T) {
	id := uuid.MustParse("7f1e3c1a-4b7a-4c1e-9a55-0c0a9e6f2d10")

	assert.Equal(t, "slots:doctor:7f1e3c1a-4b7a-4c1e-9a55-0c0a9e6f2d10:2024-06-01", DoctorSlotsKey(id, testDay))
	assert.Equal(t, "slots:specialty:Cardiology:2024-06-01", SpecialtySlotsKey("Cardiology", testDay))
}

func TestSlotCache_HitAfterMiss(t *testing.T) {
	mr, m, cache := newTestSlotCache(t, 30*time.Second)
	key := DoctorSlotsKey(uuid.New(), testDay)
	slots := []entity.SlotAvailability{{Slot: entity.TimeSlots()[0], Available: false}, {Slot: entity.TimeSlots()[1], Available: true}}
	var calls int32

	first, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, slots))
	require.NoError(t, err)
	second, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, nil))
	require.NoError(t, err)

	assert.Equal(t, slots, first)
	assert.Equal(t, slots, second)
	assert.EqualValues(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotCacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotCacheHits))
	assert.Equal(t, 30*time.Second, mr.TTL(key))

	mr.FastForward(31 * time.Second)
	_, err = cache.GetOrLoad(context.Background(), key, countingLoader(&calls, slots))
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls, "expired entries are reloaded")
}

func TestSlotCache_EmptyAnswerNotCached(t *testing.T) {
	mr, _, cache := newTestSlotCache(t, time.Minute)
	key := DoctorSlotsKey(uuid.New(), testDay)
	var calls int32

	for i := 0; i < 2; i++ {
		slots, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, []entity.SlotAvailability{}))
		require.NoError(t, err)
		assert.Empty(t, slots)
	}

	assert.EqualValues(t, 2, calls)
	assert.False(t, mr.Exists(key))
}

func TestSlotCache_LoaderErrorIsReturned(t *testing.T) {
	mr, _, cache := newTestSlotCache(t, time.Minute)
	key := SpecialtySlotsKey("Cardiology", testDay)
	boom := errors.New("db down")

	_, err := cache.GetOrLoad(context.Background(), key, func(context.Context) ([]entity.SlotAvailability, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(key))
}

func TestSlotCache_CorruptEntryIsReloaded(t *testing.T) {
	mr, _, cache := newTestSlotCache(t, time.Minute)
	key := SpecialtySlotsKey("Cardiology", testDay)
	require.NoError(t, mr.Set(key, "{not json"))
	var calls int32

	slots, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, freeDay()))

	require.NoError(t, err)
	assert.Len(t, slots, 8)
	assert.EqualValues(t, 1, calls)
}

func TestSlotCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	_, _, cache := newTestSlotCache(t, time.Minute)
	key := SpecialtySlotsKey("Cardiology", testDay)
	release := make(chan struct{})
	var calls int32

	load := func(context.Context) ([]entity.SlotAvailability, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return freeDay(), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slots, err := cache.GetOrLoad(context.Background(), key, load)
			assert.NoError(t, err)
			assert.Len(t, slots, 8)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(10))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestSlotCache_InvalidateDate(t *testing.T) {
	mr, _, cache := newTestSlotCache(t, time.Minute)
	doctorID := uuid.New()
	nextDay := testDay.AddDate(0, 0, 1)
	var calls int32

	for _, key := range []string{
		DoctorSlotsKey(doctorID, testDay),
		DoctorSlotsKey(doctorID, nextDay),
		SpecialtySlotsKey("Cardiology", testDay),
		SpecialtySlotsKey("Dermatology", testDay),
	} {
		_, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, freeDay()))
		require.NoError(t, err)
	}

	cache.InvalidateDate(context.Background(), doctorID, "Cardiology", testDay)

	assert.False(t, mr.Exists(DoctorSlotsKey(doctorID, testDay)))
	assert.False(t, mr.Exists(SpecialtySlotsKey("Cardiology", testDay)))
	assert.True(t, mr.Exists(DoctorSlotsKey(doctorID, nextDay)))
	assert.True(t, mr.Exists(SpecialtySlotsKey("Dermatology", testDay)))
}

func TestSlotCache_InvalidateDoctor(t *testing.T) {
	mr, _, cache := newTestSlotCache(t, time.Minute)
	doctorID := uuid.New()
	other := uuid.New()
	var calls int32

	for day := 0; day < 5; day++ {
		date := testDay.AddDate(0, 0, day)
		for _, key := range []string{
			DoctorSlotsKey(doctorID, date),
			DoctorSlotsKey(other, date),
			SpecialtySlotsKey("Cardiology", date),
		} {
			_, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, freeDay()))
			require.NoError(t, err)
		}
	}

	cache.InvalidateDoctor(context.Background(), doctorID, "Cardiology")

	var cached []string
	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, slotCacheKeyPrefix) {
			cached = append(cached, key)
		}
	}
	for _, key := range cached {
		assert.NotContains(t, key, doctorID.String())
		assert.NotContains(t, key, "Cardiology")
	}
	assert.Len(t, cached, 5)
	assert.Equal(t, "1", mustGet(t, mr, doctorGenerationKey(doctorID)))
	assert.Equal(t, "1", mustGet(t, mr, specialtyGenerationKey("Cardiology")))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestSlotCache_RedisDownFallsBackToLoader(t *testing.T) {
	mr, m, cache := newTestSlotCache(t, time.Minute)
	mr.Close()
	var calls int32
	doctorID := uuid.New()

	slots, err := cache.GetOrLoad(context.Background(), DoctorSlotsKey(doctorID, testDay), countingLoader(&calls, freeDay()))
	require.NoError(t, err)
	assert.Len(t, slots, 8)
	assert.EqualValues(t, 1, calls)

	cache.InvalidateDate(context.Background(), doctorID, "Cardiology", testDay)
	cache.InvalidateDoctor(context.Background(), doctorID, "Cardiology")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotCacheErrors.WithLabelValues("get")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SlotCacheErrors.WithLabelValues("set")), "no write is attempted after a failed read")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotCacheErrors.WithLabelValues("del")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotCacheErrors.WithLabelValues("incr")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotCacheErrors.WithLabelValues("scan")))
}

func bookedAt(slot entity.TimeSlot) []entity.SlotAvailability {
	doctorID := uuid.New()
	return entity.ResolveSlotAvailability(
		[]entity.DoctorID{doctorID},
		[]entity.Booking{{DoctorID: &doctorID, TimeSlot: slot}},
	)
}

func TestSlotCache_LoadRacingInvalidationIsNotCached(t *testing.T) {
	tests := []struct {
		name       string
		key        func(doctorID uuid.UUID) string
		invalidate func(cache SlotCache, doctorID uuid.UUID)
	}{
		{
			name: "doctor key, booking on the date",
			key:  func(id uuid.UUID) string { return DoctorSlotsKey(id, testDay) },
			invalidate: func(c SlotCache, id uuid.UUID) {
				c.InvalidateDate(context.Background(), id, "Cardiology", testDay)
			},
		},
		{
			name: "specialty key, booking on the date",
			key:  func(uuid.UUID) string { return SpecialtySlotsKey("Cardiology", testDay) },
			invalidate: func(c SlotCache, id uuid.UUID) {
				c.InvalidateDate(context.Background(), id, "Cardiology", testDay)
			},
		},
		{
			name: "doctor key, doctor removed",
			key:  func(id uuid.UUID) string { return DoctorSlotsKey(id, testDay) },
			invalidate: func(c SlotCache, id uuid.UUID) {
				c.InvalidateDoctor(context.Background(), id, "Cardiology")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, _, cache := newTestSlotCache(t, time.Minute)
			doctorID := uuid.New()
			key := tt.key(doctorID)
			first := entity.TimeSlots()[0]

			started := make(chan struct{})
			release := make(chan struct{})
			done := make(chan []entity.SlotAvailability)
			go func() {
				slots, err := cache.GetOrLoad(context.Background(), key, func(context.Context) ([]entity.SlotAvailability, error) {
					close(started)
					<-release
					return freeDay(), nil
				})
				assert.NoError(t, err)
				done <- slots
			}()

			<-started
			tt.invalidate(cache, doctorID)
			close(release)
			stale := <-done
			assert.True(t, stale[0].Available, "the read that began before the booking still sees it free")
			assert.False(t, mr.Exists(key), "a superseded read must not be cached")

			var calls int32
			slots, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, bookedAt(first)))
			require.NoError(t, err)
			assert.EqualValues(t, 1, calls)
			assert.Equal(t, first, slots[0].Slot)
			assert.False(t, slots[0].Available)

			// The fresh answer is cached under the new generation.
			again, err := cache.GetOrLoad(context.Background(), key, countingLoader(&calls, freeDay()))
			require.NoError(t, err)
			assert.EqualValues(t, 1, calls)
			assert.False(t, again[0].Available)
		})
	}
}

func TestSlotCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	_, _, cache := newTestSlotCache(t, time.Minute)
	key := SpecialtySlotsKey("Cardiology", testDay)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	load := func(ctx context.Context) ([]entity.SlotAvailability, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return freeDay(), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error)
	go func() {
		_, err := cache.GetOrLoad(ctx, key, load)
		firstErr <- err
	}()
	<-started

	waiter := make(chan []entity.SlotAvailability)
	go func() {
		slots, err := cache.GetOrLoad(context.Background(), key, load)
		assert.NoError(t, err)
		waiter <- slots
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.Len(t, <-waiter, 8)
}

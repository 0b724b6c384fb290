package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"medimeet-api/internal/domain/entity"
	"medimeet-api/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	slotCacheKeyPrefix = "slots:"

	// Generation counters live outside the slots: prefix so SCAN patterns
	// over cached answers never match them.
	slotGenerationKeyPrefix = "slotgen:"
	slotGenerationTTL       = 24 * time.Hour

	// Timeout for individual Redis operations
	slotCacheTimeout = 2 * time.Second

	// Upper bound of a shared storage read
	slotLoadTimeout = 5 * time.Second

	// SCAN page size used when dropping every date of a doctor or specialty
	slotCacheScanCount = 200
)

// SlotLoader computes slot availability from storage.
type SlotLoader func(ctx context.Context) ([]entity.SlotAvailability, error)

// SlotCache memoises resolved slot availability per doctor or specialty and
// date. It only ever serves reads: booking creation re-checks storage.
type SlotCache interface {
	GetOrLoad(ctx context.Context, key string, load SlotLoader) ([]entity.SlotAvailability, error)
	// InvalidateDate drops the cached answers a booking change on date affects.
	InvalidateDate(ctx context.Context, doctorID uuid.UUID, specialty string, date time.Time)
	// InvalidateDoctor drops every cached date of the doctor and of its
	// specialty. Used when a doctor joins, leaves or changes specialty.
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID, specialty string)
}

// DoctorSlotsKey is the cache key of a single doctor's slots on date.
func DoctorSlotsKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%sdoctor:%s:%s", slotCacheKeyPrefix, doctorID, entity.FormatCalendarDate(date))
}

// SpecialtySlotsKey is the cache key of a specialty's combined slots on date.
func SpecialtySlotsKey(specialty string, date time.Time) string {
	return fmt.Sprintf("%sspecialty:%s:%s", slotCacheKeyPrefix, specialty, entity.FormatCalendarDate(date))
}

// setIfGeneration stores an answer only while the generation it was loaded
// under is still current. A missing counter reads as "0".
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// generationKey maps a cached answer to the counter of its doctor or
// specialty, e.g. slots:doctor:<id>:<date> to slotgen:doctor:<id>.
func generationKey(key string) string {
	scope := strings.TrimPrefix(key, slotCacheKeyPrefix)
	if i := strings.LastIndex(scope, ":"); i >= 0 {
		scope = scope[:i]
	}
	return slotGenerationKeyPrefix + scope
}

func doctorGenerationKey(doctorID uuid.UUID) string {
	return fmt.Sprintf("%sdoctor:%s", slotGenerationKeyPrefix, doctorID)
}

func specialtyGenerationKey(specialty string) string {
	return fmt.Sprintf("%sspecialty:%s", slotGenerationKeyPrefix, specialty)
}

type slotCacheService struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
	metrics     *metrics.Metrics

	// Coalesces concurrent misses on the same key into one storage read
	group singleflight.Group
}

// NewSlotCacheService returns a Redis backed SlotCache. Redis failures are
// logged and the loader is used directly.
func NewSlotCacheService(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger, m *metrics.Metrics) SlotCache {
	return &slotCacheService{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
		metrics:     m,
	}
}

// GetOrLoad serves key from Redis or runs load. An answer is written back only
// if no invalidation of its doctor or specialty happened while it was loading,
// so a read racing a booking never re-caches the pre-booking state.
func (s *slotCacheService) GetOrLoad(ctx context.Context, key string, load SlotLoader) ([]entity.SlotAvailability, error) {
	slots, generation, cacheable := s.get(ctx, key)
	if slots != nil {
		s.metrics.SlotCacheHits.Inc()
		return slots, nil
	}
	s.metrics.SlotCacheMisses.Inc()

	// Callers arriving after an invalidation see a new generation and start
	// their own read instead of joining a stale one.
	flight := s.group.DoChan(key+"@"+generation, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), slotLoadTimeout)
		defer cancel()

		slots, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		// An empty answer usually means an unknown doctor or specialty; not
		// worth a key.
		if cacheable && len(slots) > 0 {
			s.set(loadCtx, key, generation, slots)
		}
		return slots, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]entity.SlotAvailability), nil
	}
}

// get returns the cached answer, if any, together with the generation a fresh
// load has to be stored under. cacheable is false when Redis could not be read.
func (s *slotCacheService) get(ctx context.Context, key string) (slots []entity.SlotAvailability, generation string, cacheable bool) {
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	values, err := s.redisClient.MGet(ctx, key, generationKey(key)).Result()
	if err != nil {
		s.metrics.SlotCacheErrors.WithLabelValues("get").Inc()
		s.log.Warnf("Failed to read slot cache %s: %+v", key, err)
		return nil, "", false
	}

	generation = "0"
	if g, ok := values[1].(string); ok {
		generation = g
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, true
	}
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		s.log.Warnf("Discarding corrupt slot cache entry %s: %+v", key, err)
		return nil, generation, true
	}
	return slots, generation, true
}

func (s *slotCacheService) set(ctx context.Context, key, generation string, slots []entity.SlotAvailability) {
	raw, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to encode slot cache entry %s: %+v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	stored, err := setIfGeneration.Run(ctx, s.redisClient,
		[]string{key, generationKey(key)},
		generation, raw, s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		s.metrics.SlotCacheErrors.WithLabelValues("set").Inc()
		s.log.Warnf("Failed to write slot cache %s: %+v", key, err)
		return
	}
	if stored == 0 {
		s.log.Debugf("Skipped slot cache write %s: invalidated while loading", key)
	}
}

func (s *slotCacheService) InvalidateDate(ctx context.Context, doctorID uuid.UUID, specialty string, date time.Time) {
	keys := []string{DoctorSlotsKey(doctorID, date)}
	generations := []string{doctorGenerationKey(doctorID)}
	if specialty != "" {
		keys = append(keys, SpecialtySlotsKey(specialty, date))
		generations = append(generations, specialtyGenerationKey(specialty))
	}

	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		queueGenerationBumps(ctx, pipe, generations)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		s.metrics.SlotCacheErrors.WithLabelValues("del").Inc()
		s.log.Warnf("Failed to invalidate slot cache %v: %+v", keys, err)
		return
	}
	s.log.Debugf("Invalidated slot cache %v", keys)
}

func (s *slotCacheService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID, specialty string) {
	patterns := []string{fmt.Sprintf("%sdoctor:%s:*", slotCacheKeyPrefix, doctorID)}
	generations := []string{doctorGenerationKey(doctorID)}
	if specialty != "" {
		patterns = append(patterns, fmt.Sprintf("%sspecialty:%s:*", slotCacheKeyPrefix, specialty))
		generations = append(generations, specialtyGenerationKey(specialty))
	}

	// Bump first so loads already in flight cannot refill what SCAN removes.
	if err := s.bumpGenerations(ctx, generations); err != nil {
		s.metrics.SlotCacheErrors.WithLabelValues("incr").Inc()
		s.log.Warnf("Failed to bump slot cache generations %v: %+v", generations, err)
	}

	for _, pattern := range patterns {
		if err := s.deleteMatching(ctx, pattern); err != nil {
			s.metrics.SlotCacheErrors.WithLabelValues("scan").Inc()
			s.log.Warnf("Failed to invalidate slot cache %s: %+v", pattern, err)
		}
	}
}

func queueGenerationBumps(ctx context.Context, pipe redis.Pipeliner, generations []string) {
	for _, g := range generations {
		pipe.Incr(ctx, g)
		pipe.Expire(ctx, g, slotGenerationTTL)
	}
}

func (s *slotCacheService) bumpGenerations(ctx context.Context, generations []string) error {
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		queueGenerationBumps(ctx, pipe, generations)
		return nil
	})
	return err
}

// deleteMatching removes keys page by page so a large keyspace is never held
// in memory at once.
func (s *slotCacheService) deleteMatching(ctx context.Context, pattern string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*slotCacheTimeout)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, pattern, slotCacheScanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

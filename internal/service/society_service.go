package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/pkg/config"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type societyStore interface {
	GetByID(ctx context.Context, id string) (*models.Society, error)
	FindLatestByName(ctx context.Context, name string) (*models.Society, error)
	List(ctx context.Context, filter models.SocietyFilter) ([]models.Society, int, error)
	Statistics(ctx context.Context, year int) (*models.SocietyStatistics, error)
	SetStatus(ctx context.Context, id string, status models.SocietyStatus) error
}

type societyCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type societyListPayload struct {
	Societies []models.Society `json:"societies"`
	Total     int              `json:"total"`
}

type cacheObserver interface {
	RecordCacheOperation(hit bool)
}

// SocietyService serves the public society directory and its dashboard
// statistics, both cached in Redis with short TTLs.
type SocietyService struct {
	repo    societyStore
	cache   societyCache
	cfg     config.SocietiesConfig
	metrics cacheObserver
	logger  *zap.Logger
	now     func() time.Time
}

// NewSocietyService constructs the service.
func NewSocietyService(repo societyStore, cache societyCache, cfg config.SocietiesConfig, logger *zap.Logger) *SocietyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SocietyService{
		repo:   repo,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics attaches a cache hit ratio observer.
func (s *SocietyService) WithMetrics(metrics cacheObserver) *SocietyService {
	s.metrics = metrics
	return s
}

func (s *SocietyService) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}

// Get returns one society by identifier.
func (s *SocietyService) Get(ctx context.Context, id string) (*models.Society, error) {
	society, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load society")
	}
	return society, nil
}

// GetByName returns the latest record for a society name.
func (s *SocietyService) GetByName(ctx context.Context, name string) (*models.Society, error) {
	society, err := s.repo.FindLatestByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load society")
	}
	return society, nil
}

func listCacheKey(filter models.SocietyFilter) string {
	status := ""
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	year := 0
	if filter.Year != nil {
		year = *filter.Year
	}
	return fmt.Sprintf("societies:list:%s:%s:%d:%d:%d", filter.Search, status, year, filter.Page, filter.PageSize)
}

// List returns societies matching the filter, serving repeated queries from
// cache.
func (s *SocietyService) List(ctx context.Context, filter models.SocietyFilter) ([]models.Society, int, error) {
	key := listCacheKey(filter)
	if s.cache != nil {
		var cached societyListPayload
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.observeCache(true)
			return cached.Societies, cached.Total, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("society list cache read failed", zap.Error(err))
		}
		s.observeCache(false)
	}

	societies, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list societies")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, societyListPayload{Societies: societies, Total: total}, s.cfg.ListCacheTTL); err != nil {
			s.logger.Warn("society list cache write failed", zap.Error(err))
		}
	}
	return societies, total, nil
}

// Statistics returns registry counts for the dashboard, cached briefly.
func (s *SocietyService) Statistics(ctx context.Context) (*models.SocietyStatistics, error) {
	const key = "societies:stats"
	if s.cache != nil {
		var cached models.SocietyStatistics
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.observeCache(true)
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("society stats cache read failed", zap.Error(err))
		}
		s.observeCache(false)
	}

	stats, err := s.repo.Statistics(ctx, s.now().Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute society statistics")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.cfg.StatsCacheTTL); err != nil {
			s.logger.Warn("society stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// SetStatus updates a society's lifecycle status and drops stale cache
// entries.
func (s *SocietyService) SetStatus(ctx context.Context, id string, status models.SocietyStatus) error {
	switch status {
	case models.SocietyActive, models.SocietyInactive, models.SocietyPending:
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown society status '%s'", status))
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update society status")
	}
	s.invalidate(ctx)
	return nil
}

func (s *SocietyService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "societies:*"); err != nil {
		s.logger.Warn("failed to invalidate society cache", zap.Error(err))
	}
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/pkg/config"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type mockSocietyStore struct {
	society   *models.Society
	list      []models.Society
	total     int
	stats     *models.SocietyStatistics
	listCalls int
	setStatus []models.SocietyStatus
	statusErr error
}

func (m *mockSocietyStore) GetByID(context.Context, string) (*models.Society, error) {
	if m.society == nil {
		return nil, sql.ErrNoRows
	}
	return m.society, nil
}

func (m *mockSocietyStore) FindLatestByName(context.Context, string) (*models.Society, error) {
	if m.society == nil {
		return nil, sql.ErrNoRows
	}
	return m.society, nil
}

func (m *mockSocietyStore) List(context.Context, models.SocietyFilter) ([]models.Society, int, error) {
	m.listCalls++
	return m.list, m.total, nil
}

func (m *mockSocietyStore) Statistics(context.Context, int) (*models.SocietyStatistics, error) {
	return m.stats, nil
}

func (m *mockSocietyStore) SetStatus(_ context.Context, _ string, status models.SocietyStatus) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.setStatus = append(m.setStatus, status)
	return nil
}

type fakeSocietyCache struct {
	store   map[string][]byte
	deleted []string
}

func (c *fakeSocietyCache) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := c.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (c *fakeSocietyCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.store == nil {
		c.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = payload
	return nil
}

func (c *fakeSocietyCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	c.store = nil
	return nil
}

func newSocietyFixture(store *mockSocietyStore) (*SocietyService, *fakeSocietyCache) {
	if store == nil {
		store = &mockSocietyStore{}
	}
	cache := &fakeSocietyCache{}
	cfg := config.SocietiesConfig{StatsCacheTTL: time.Minute, ListCacheTTL: time.Minute}
	svc := NewSocietyService(store, cache, cfg, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, cache
}

func TestListSocietiesCachesResults(t *testing.T) {
	store := &mockSocietyStore{
		list:  []models.Society{{ID: "soc-1", SocietyName: "Astronomy Society"}},
		total: 1,
	}
	svc, cache := newSocietyFixture(store)

	filter := models.SocietyFilter{Search: "astro", Page: 1, PageSize: 20}
	societies, total, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, societies, 1)
	require.Equal(t, 1, total)
	require.Equal(t, 1, store.listCalls)
	require.NotEmpty(t, cache.store)

	societies, total, err = svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, societies, 1)
	require.Equal(t, 1, total)
	require.Equal(t, 1, store.listCalls)
}

func TestListCacheKeyVariesByFilter(t *testing.T) {
	active := models.SocietyActive
	year := 2025
	a := listCacheKey(models.SocietyFilter{Search: "astro", Page: 1, PageSize: 20})
	b := listCacheKey(models.SocietyFilter{Search: "astro", Status: &active, Year: &year, Page: 1, PageSize: 20})
	require.NotEqual(t, a, b)
}

func TestSocietyStatisticsCached(t *testing.T) {
	store := &mockSocietyStore{stats: &models.SocietyStatistics{TotalSocieties: 12, ActiveSocieties: 9}}
	svc, cache := newSocietyFixture(store)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, stats.TotalSocieties)
	require.Contains(t, cache.store, "societies:stats")
}

func TestSetStatusInvalidatesCache(t *testing.T) {
	store := &mockSocietyStore{list: []models.Society{{ID: "soc-1"}}, total: 1}
	svc, cache := newSocietyFixture(store)

	_, _, err := svc.List(context.Background(), models.SocietyFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.NotEmpty(t, cache.store)

	require.NoError(t, svc.SetStatus(context.Background(), "soc-1", models.SocietyInactive))
	require.Equal(t, []models.SocietyStatus{models.SocietyInactive}, store.setStatus)
	require.Equal(t, []string{"societies:*"}, cache.deleted)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newSocietyFixture(nil)

	err := svc.SetStatus(context.Background(), "soc-1", models.SocietyStatus("FROZEN"))
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSetStatusNotFound(t *testing.T) {
	store := &mockSocietyStore{statusErr: sql.ErrNoRows}
	svc, _ := newSocietyFixture(store)

	err := svc.SetStatus(context.Background(), "missing", models.SocietyActive)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestGetSocietyNotFound(t *testing.T) {
	svc, _ := newSocietyFixture(nil)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/usecase"
)

const (
	keyPrefix     = "sendlog:catalog:"
	generationKey = keyPrefix + "gen"
)

// Catalog serves catalog reads from memcached and company lookups from process memory.
// Every successful write moves the memcached generation forward, orphaning all list entries at once.
type Catalog struct {
	usecase.CatalogRepository
	mc        *memcache.Client
	companies *gocache.Cache
	ttl       time.Duration
}

// NewCatalog wraps repo. mc may be nil, in which case only the company cache is used.
func NewCatalog(repo usecase.CatalogRepository, mc *memcache.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{
		CatalogRepository: repo,
		mc:                mc,
		companies:         gocache.New(ttl, 2*ttl),
		ttl:               ttl,
	}
}

// Key derives the memcached key for one list query at a given generation.
func Key(generation uint64, name string, args ...string) string {
	h := xxh3.HashString(strconv.FormatUint(generation, 10) + "\x00" + name + "\x00" + strings.Join(args, "\x00"))
	return keyPrefix + name + ":" + strconv.FormatUint(h, 16)
}

func (c *Catalog) generation() (uint64, error) {
	item, err := c.mc.Get(generationKey)
	if errors.Is(err, memcache.ErrCacheMiss) {
		seed := strconv.FormatInt(time.Now().UnixNano(), 10)
		err = c.mc.Add(&memcache.Item{Key: generationKey, Value: []byte(seed)})
		if err != nil && !errors.Is(err, memcache.ErrNotStored) {
			return 0, err
		}
		item, err = c.mc.Get(generationKey)
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(string(item.Value), 10, 64)
}

func (c *Catalog) bump() {
	if c.mc == nil {
		return
	}
	_, err := c.mc.Increment(generationKey, 1)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		slog.Warn(
			"failed to advance catalog cache generation",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

func cached[T any](ctx context.Context, c *Catalog, name string, args []string, load func(context.Context) (T, error)) (T, error) {
	if c.mc == nil {
		return load(ctx)
	}

	gen, err := c.generation()
	if err != nil {
		slog.DebugContext(ctx, "catalog cache unavailable", slog.String("error", err.Error()), slog.String("module", "cache"))
		return load(ctx)
	}
	key := Key(gen, name, args...)

	if item, err := c.mc.Get(key); err == nil {
		var value T
		if err := json.Unmarshal(item.Value, &value); err == nil {
			return value, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		err = c.mc.Set(&memcache.Item{Key: key, Value: raw, Expiration: int32(c.ttl.Seconds())})
		if err != nil {
			slog.DebugContext(ctx, "catalog cache store failed", slog.String("key", key), slog.String("error", err.Error()), slog.String("module", "cache"))
		}
	}
	return value, nil
}

func (c *Catalog) written(err error) error {
	if err == nil {
		c.bump()
	}
	return err
}

func (c *Catalog) GetCompany(ctx context.Context, name string) (domain.Company, error) {
	if v, ok := c.companies.Get(name); ok {
		return v.(domain.Company), nil
	}
	company, err := c.CatalogRepository.GetCompany(ctx, name)
	if err != nil {
		return company, err
	}
	c.companies.SetDefault(name, company)
	return company, nil
}

func (c *Catalog) CreateCompany(ctx context.Context, company domain.Company) error {
	err := c.CatalogRepository.CreateCompany(ctx, company)
	if err == nil {
		c.companies.Delete(company.CompanyName)
	}
	return c.written(err)
}

func (c *Catalog) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return cached(ctx, c, "companies", nil, c.CatalogRepository.ListCompanies)
}

func (c *Catalog) CreateGym(ctx context.Context, gym domain.Gym) error {
	return c.written(c.CatalogRepository.CreateGym(ctx, gym))
}

func (c *Catalog) ListGyms(ctx context.Context, company string) ([]domain.Gym, error) {
	return cached(ctx, c, "gyms", []string{company}, func(ctx context.Context) ([]domain.Gym, error) {
		return c.CatalogRepository.ListGyms(ctx, company)
	})
}

func (c *Catalog) CreateLocation(ctx context.Context, location domain.Location) error {
	return c.written(c.CatalogRepository.CreateLocation(ctx, location))
}

func (c *Catalog) ListLocations(ctx context.Context, company, suburb string) ([]domain.Location, error) {
	return cached(ctx, c, "locations", []string{company, suburb}, func(ctx context.Context) ([]domain.Location, error) {
		return c.CatalogRepository.ListLocations(ctx, company, suburb)
	})
}

func (c *Catalog) ListClimbTypes(ctx context.Context, company, suburb string) ([]string, error) {
	return cached(ctx, c, "climbtypes", []string{company, suburb}, func(ctx context.Context) ([]string, error) {
		return c.CatalogRepository.ListClimbTypes(ctx, company, suburb)
	})
}

func (c *Catalog) CreateColour(ctx context.Context, colour domain.Colour) error {
	return c.written(c.CatalogRepository.CreateColour(ctx, colour))
}

func (c *Catalog) ListColours(ctx context.Context, company string) ([]domain.Colour, error) {
	return cached(ctx, c, "colours", []string{company}, func(ctx context.Context) ([]domain.Colour, error) {
		return c.CatalogRepository.ListColours(ctx, company)
	})
}

func (c *Catalog) CreateGradeSystem(ctx context.Context, name string) error {
	return c.written(c.CatalogRepository.CreateGradeSystem(ctx, name))
}

func (c *Catalog) ListGradeSystems(ctx context.Context) ([]string, error) {
	return cached(ctx, c, "gradesystems", nil, c.CatalogRepository.ListGradeSystems)
}

func (c *Catalog) CreateGrade(ctx context.Context, grade domain.Grade) error {
	return c.written(c.CatalogRepository.CreateGrade(ctx, grade))
}

func (c *Catalog) ListGrades(ctx context.Context, system string) ([]domain.Grade, error) {
	return cached(ctx, c, "grades", []string{system}, func(ctx context.Context) ([]domain.Grade, error) {
		return c.CatalogRepository.ListGrades(ctx, system)
	})
}

func (c *Catalog) CreateMode(ctx context.Context, mode domain.Mode) error {
	return c.written(c.CatalogRepository.CreateMode(ctx, mode))
}

func (c *Catalog) ListModes(ctx context.Context) ([]domain.Mode, error) {
	return cached(ctx, c, "modes", nil, c.CatalogRepository.ListModes)
}

func (c *Catalog) CreateResult(ctx context.Context, result domain.Result) error {
	return c.written(c.CatalogRepository.CreateResult(ctx, result))
}

func (c *Catalog) ListResults(ctx context.Context) ([]domain.Result, error) {
	return cached(ctx, c, "results", nil, c.CatalogRepository.ListResults)
}

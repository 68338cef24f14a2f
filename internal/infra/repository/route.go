package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/infra/database/models"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func routeToDomain(m models.Route) domain.Route {
	return domain.Route{
		ID:            m.ID,
		CreationDate:  m.CreationDate,
		CompanyName:   m.CompanyName,
		Suburb:        m.Suburb,
		Location:      m.Location,
		GradingSystem: m.GradingSystem,
		Grade:         m.Grade,
		ClimbType:     m.ClimbType,
		Colour:        m.Colour,
		NumberHolds:   m.NumberHolds,
		Existing:      m.Existing,
	}
}

// wallScope applies the non-empty parts of a filter to a query over routes aliased as table.
func wallScope(table string, filter domain.RouteFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.CompanyName != "" {
			q = q.Where(table+".company_name = ?", filter.CompanyName)
		}
		if filter.Suburb != "" {
			q = q.Where(table+".suburb = ?", filter.Suburb)
		}
		if filter.Location != "" {
			q = q.Where(table+".location = ?", filter.Location)
		}
		if filter.ClimbType != "" {
			q = q.Where(table+".climb_type = ?", filter.ClimbType)
		}
		return q
	}
}

func (r *RouteRepository) Get(ctx context.Context, id int64) (domain.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).Take(&route, "id = ?", id).Error
	if err != nil {
		return domain.Route{}, translate(err, "route")
	}
	return routeToDomain(route), nil
}

func (r *RouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	var routes []models.Route
	err := r.db.WithContext(ctx).
		Scopes(wallScope("routes", filter)).
		Where("routes.existing = ?", true).
		Order("routes.id").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Route, 0, len(routes))
	for _, route := range routes {
		result = append(result, routeToDomain(route))
	}
	return result, nil
}

func (r *RouteRepository) Archive(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Route{}).
		Where("id = ?", id).
		Update("existing", false).Error
}

func (r *RouteRepository) Create(ctx context.Context, route domain.Route) (int64, error) {
	model := models.Route{
		CreationDate:  route.CreationDate,
		CompanyName:   route.CompanyName,
		Suburb:        route.Suburb,
		Location:      route.Location,
		GradingSystem: route.GradingSystem,
		Grade:         route.Grade,
		ClimbType:     route.ClimbType,
		Colour:        route.Colour,
		NumberHolds:   route.NumberHolds,
		Existing:      true,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, translate(err, "route")
	}
	return model.ID, nil
}

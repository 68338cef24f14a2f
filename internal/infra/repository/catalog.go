package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/infra/database/models"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateCompany(ctx context.Context, company domain.Company) error {
	err := r.db.WithContext(ctx).Create(&models.Company{
		CompanyName:        company.CompanyName,
		BoulderGradeSystem: company.BoulderGradeSystem,
		SportGradeSystem:   company.SportGradeSystem,
		PrimaryCountry:     company.PrimaryCountry,
	}).Error
	return translate(err, "company")
}

func (r *CatalogRepository) GetCompany(ctx context.Context, name string) (domain.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Take(&company, "company_name = ?", name).Error
	if err != nil {
		return domain.Company{}, translate(err, "company")
	}
	return domain.Company(company), nil
}

func (r *CatalogRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Order("company_name").Find(&companies).Error; err != nil {
		return nil, err
	}

	result := make([]domain.Company, 0, len(companies))
	for _, c := range companies {
		result = append(result, domain.Company(c))
	}
	return result, nil
}

func (r *CatalogRepository) CreateGym(ctx context.Context, gym domain.Gym) error {
	err := r.db.WithContext(ctx).Create(&models.Gym{
		CompanyName: gym.CompanyName,
		Suburb:      gym.Suburb,
		City:        gym.City,
		Country:     gym.Country,
	}).Error
	return translate(err, "gym")
}

func (r *CatalogRepository) GymExists(ctx context.Context, company, suburb string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Gym{}).
		Where("company_name = ? AND suburb = ?", company, suburb).
		Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) ListGyms(ctx context.Context, company string) ([]domain.Gym, error) {
	var gyms []models.Gym
	err := r.db.WithContext(ctx).
		Where("company_name = ?", company).
		Order("suburb").
		Find(&gyms).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Gym, 0, len(gyms))
	for _, g := range gyms {
		result = append(result, domain.Gym(g))
	}
	return result, nil
}

func (r *CatalogRepository) CreateLocation(ctx context.Context, location domain.Location) error {
	climbType := location.ClimbType
	if climbType == "" {
		climbType = domain.DefaultClimbType
	}
	err := r.db.WithContext(ctx).Create(&models.Location{
		CompanyName: location.CompanyName,
		Suburb:      location.Suburb,
		Location:    location.Location,
		ClimbType:   climbType,
	}).Error
	return translate(err, "location")
}

func (r *CatalogRepository) ListLocations(ctx context.Context, company, suburb string) ([]domain.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).
		Where("company_name = ? AND suburb = ?", company, suburb).
		Order("location").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Location, 0, len(locations))
	for _, l := range locations {
		result = append(result, domain.Location(l))
	}
	return result, nil
}

// ListClimbTypes returns the distinct wall types, narrowed to one gym when company and suburb are set.
func (r *CatalogRepository) ListClimbTypes(ctx context.Context, company, suburb string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&models.Location{}).Distinct("climb_type")
	if company != "" {
		q = q.Where("company_name = ?", company)
	}
	if suburb != "" {
		q = q.Where("suburb = ?", suburb)
	}

	types := []string{}
	err := q.Order("climb_type").Pluck("climb_type", &types).Error
	return types, err
}

func (r *CatalogRepository) CreateColour(ctx context.Context, colour domain.Colour) error {
	err := r.db.WithContext(ctx).Create(&models.Colour{
		CompanyName: colour.CompanyName,
		Colour:      colour.Colour,
	}).Error
	return translate(err, "colour")
}

func (r *CatalogRepository) ListColours(ctx context.Context, company string) ([]domain.Colour, error) {
	var colours []models.Colour
	err := r.db.WithContext(ctx).
		Where("company_name = ?", company).
		Order("colour").
		Find(&colours).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Colour, 0, len(colours))
	for _, c := range colours {
		result = append(result, domain.Colour(c))
	}
	return result, nil
}

func (r *CatalogRepository) CreateGradeSystem(ctx context.Context, name string) error {
	err := r.db.WithContext(ctx).Create(&models.GradeSystem{GradingSystem: name}).Error
	return translate(err, "grading system")
}

func (r *CatalogRepository) GradeSystemExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GradeSystem{}).
		Where("grading_system = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) ListGradeSystems(ctx context.Context) ([]string, error) {
	systems := []string{}
	err := r.db.WithContext(ctx).Model(&models.GradeSystem{}).
		Order("grading_system").
		Pluck("grading_system", &systems).Error
	return systems, err
}

func (r *CatalogRepository) CreateGrade(ctx context.Context, grade domain.Grade) error {
	err := r.db.WithContext(ctx).Create(&models.Grade{
		Grade:         grade.Grade,
		GradingSystem: grade.GradingSystem,
		GradeOrder:    grade.GradeOrder,
	}).Error
	return translate(err, "grade")
}

func (r *CatalogRepository) ListGrades(ctx context.Context, system string) ([]domain.Grade, error) {
	var grades []models.Grade
	err := r.db.WithContext(ctx).
		Where("grading_system = ?", system).
		Order("grade_order").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Grade, 0, len(grades))
	for _, g := range grades {
		result = append(result, domain.Grade(g))
	}
	return result, nil
}

func (r *CatalogRepository) CreateMode(ctx context.Context, mode domain.Mode) error {
	err := r.db.WithContext(ctx).Create(&models.Mode{Mode: mode.Mode}).Error
	return translate(err, "mode")
}

func (r *CatalogRepository) ListModes(ctx context.Context) ([]domain.Mode, error) {
	var modes []models.Mode
	if err := r.db.WithContext(ctx).Order("mode").Find(&modes).Error; err != nil {
		return nil, err
	}

	result := make([]domain.Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, domain.Mode(m))
	}
	return result, nil
}

func (r *CatalogRepository) CreateResult(ctx context.Context, result domain.Result) error {
	err := r.db.WithContext(ctx).Create(&models.Result{
		Result:      result.Result,
		ResultOrder: result.ResultOrder,
	}).Error
	return translate(err, "result")
}

func (r *CatalogRepository) ListResults(ctx context.Context) ([]domain.Result, error) {
	var results []models.Result
	if err := r.db.WithContext(ctx).Order("result_order").Find(&results).Error; err != nil {
		return nil, err
	}

	list := make([]domain.Result, 0, len(results))
	for _, res := range results {
		list = append(list, domain.Result(res))
	}
	return list, nil
}

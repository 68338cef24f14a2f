package usecase

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/sendlog/internal/domain"
)

type LocationInput struct {
	Location  string `json:"location" validate:"required"`
	Type      string `json:"type"`
	ClimbType string `json:"climbType"`
}

type GradeSystemInput struct {
	GradingSystem string         `json:"gradingSystem" validate:"required"`
	Grades        []domain.Grade `json:"grades"`
}

type CatalogUsecase struct {
	repo CatalogRepository
}

func NewCatalogUsecase(repo CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

func conflictAs(err error, resource string) error {
	if errors.Is(err, domain.ErrConflict) {
		return domain.ConflictError{Resource: resource}
	}
	return err
}

func (uc *CatalogUsecase) requireCompany(ctx context.Context, name string) (domain.Company, error) {
	company, err := uc.repo.GetCompany(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Company{}, domain.Invalid("company %s does not exist", name)
		}
		return domain.Company{}, pkgerrors.Wrap(err, "company lookup failed")
	}
	return company, nil
}

func (uc *CatalogUsecase) AddCompany(ctx context.Context, company domain.Company) error {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.AddCompany")
	defer span.End()

	if err := checkInput(company); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("Company", company.CompanyName))

	if err := uc.repo.CreateCompany(ctx, company); err != nil {
		span.RecordError(err)
		return conflictAs(err, "company "+company.CompanyName)
	}
	return nil
}

func (uc *CatalogUsecase) AddGym(ctx context.Context, gym domain.Gym) error {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.AddGym")
	defer span.End()

	if err := checkInput(gym); err != nil {
		return err
	}
	if _, err := uc.requireCompany(ctx, gym.CompanyName); err != nil {
		return err
	}

	if err := uc.repo.CreateGym(ctx, gym); err != nil {
		span.RecordError(err)
		return conflictAs(err, "gym "+gym.CompanyName+" "+gym.Suburb)
	}
	return nil
}

// AddLocations inserts walls for a gym one at a time and reports how many were written.
// The first failure stops the batch.
func (uc *CatalogUsecase) AddLocations(ctx context.Context, company, suburb string, inputs []LocationInput) (int, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.AddLocations")
	defer span.End()

	if company == "" || suburb == "" {
		return 0, domain.ValidationError{Message: "companyName and suburb are required for locations"}
	}
	if len(inputs) == 0 {
		return 0, domain.ValidationError{Message: "No locations provided"}
	}
	for i, input := range inputs {
		if err := checkInput(input); err != nil {
			return 0, domain.Invalid("data[%d]: %s", i, err.Error())
		}
	}

	exists, err := uc.repo.GymExists(ctx, company, suburb)
	if err != nil {
		span.RecordError(err)
		return 0, pkgerrors.Wrap(err, "CatalogUsecase.AddLocations: gym lookup failed")
	}
	if !exists {
		return 0, domain.Invalid("gym %s %s does not exist", company, suburb)
	}

	inserted := 0
	for _, input := range inputs {
		climbType := input.Type
		if climbType == "" {
			climbType = input.ClimbType
		}
		if climbType == "" {
			climbType = domain.DefaultClimbType
		}

		err := uc.repo.CreateLocation(ctx, domain.Location{
			CompanyName: company,
			Suburb:      suburb,
			Location:    input.Location,
			ClimbType:   climbType,
		})
		if err != nil {
			span.RecordError(err)
			return inserted, conflictAs(err, "location "+input.Location)
		}
		inserted++
	}
	return inserted, nil
}

func (uc *CatalogUsecase) AddColour(ctx context.Context, colour domain.Colour) error {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.AddColour")
	defer span.End()

	if err := checkInput(colour); err != nil {
		return err
	}
	if _, err := uc.requireCompany(ctx, colour.CompanyName); err != nil {
		return err
	}

	if err := uc.repo.CreateColour(ctx, colour); err != nil {
		span.RecordError(err)
		return conflictAs(err, "colour "+colour.Colour)
	}
	return nil
}

func (uc *CatalogUsecase) AddGradeSystem(ctx context.Context, input GradeSystemInput) error {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.AddGradeSystem")
	defer span.End()

	if err := checkInput(input); err != nil {
		return err
	}
	for i, grade := range input.Grades {
		if grade.Grade == "" {
			return domain.Invalid("grades[%d]: grade is required", i)
		}
	}

	if err := uc.repo.CreateGradeSystem(ctx, input.GradingSystem); err != nil {
		span.RecordError(err)
		return conflictAs(err, "grading system "+input.GradingSystem)
	}

	for _, grade := range input.Grades {
		grade.GradingSystem = input.GradingSystem
		if err := uc.repo.CreateGrade(ctx, grade); err != nil {
			span.RecordError(err)
			return conflictAs(err, "grade "+grade.Grade)
		}
	}
	return nil
}

func (uc *CatalogUsecase) AddGrade(ctx context.Context, grade domain.Grade) error {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.AddGrade")
	defer span.End()

	if grade.Grade == "" || grade.GradingSystem == "" {
		return domain.ValidationError{Message: "grade and gradingSystem are required"}
	}

	exists, err := uc.repo.GradeSystemExists(ctx, grade.GradingSystem)
	if err != nil {
		span.RecordError(err)
		return pkgerrors.Wrap(err, "CatalogUsecase.AddGrade: lookup failed")
	}
	if !exists {
		return domain.Invalid("grading system %s does not exist", grade.GradingSystem)
	}

	if err := uc.repo.CreateGrade(ctx, grade); err != nil {
		span.RecordError(err)
		return conflictAs(err, "grade "+grade.Grade)
	}
	return nil
}

func (uc *CatalogUsecase) AddMode(ctx context.Context, mode domain.Mode) error {
	if err := checkInput(mode); err != nil {
		return err
	}
	return conflictAs(uc.repo.CreateMode(ctx, mode), "mode "+mode.Mode)
}

func (uc *CatalogUsecase) AddResult(ctx context.Context, result domain.Result) error {
	if err := checkInput(result); err != nil {
		return err
	}
	err := uc.repo.CreateResult(ctx, result)
	if !errors.Is(err, domain.ErrConflict) {
		return err
	}

	existing, lerr := uc.repo.ListResults(ctx)
	if lerr == nil {
		for _, r := range existing {
			if r.Result != result.Result && r.ResultOrder == result.ResultOrder {
				return domain.ConflictError{Resource: fmt.Sprintf("result order %d (%s)", r.ResultOrder, r.Result)}
			}
		}
	}
	return domain.ConflictError{Resource: "result " + result.Result}
}

func (uc *CatalogUsecase) Companies(ctx context.Context) ([]domain.Company, error) {
	return uc.repo.ListCompanies(ctx)
}

func (uc *CatalogUsecase) Gyms(ctx context.Context, company string) ([]domain.Gym, error) {
	if company == "" {
		return nil, domain.ValidationError{Message: "company is required for gyms"}
	}
	return uc.repo.ListGyms(ctx, company)
}

func (uc *CatalogUsecase) Locations(ctx context.Context, company, suburb string) ([]domain.Location, error) {
	if company == "" || suburb == "" {
		return nil, domain.ValidationError{Message: "company and suburb are required for locations"}
	}
	return uc.repo.ListLocations(ctx, company, suburb)
}

// ClimbTypes lists distinct wall types, for one gym when company and suburb are given.
func (uc *CatalogUsecase) ClimbTypes(ctx context.Context, company, suburb string) ([]string, error) {
	return uc.repo.ListClimbTypes(ctx, company, suburb)
}

func (uc *CatalogUsecase) GradeSystems(ctx context.Context) ([]string, error) {
	return uc.repo.ListGradeSystems(ctx)
}

// Grades resolves the company's scale for the climb type and lists it in order.
func (uc *CatalogUsecase) Grades(ctx context.Context, company, suburb, climbType string) ([]domain.Grade, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Usecase.Grades")
	defer span.End()

	if company == "" || suburb == "" || climbType == "" {
		return nil, domain.ValidationError{Message: "company, suburb, and climbType are required for grades"}
	}

	c, err := uc.repo.GetCompany(ctx, company)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, "CatalogUsecase.Grades: company lookup failed")
	}
	system := GradingSystemFor(c, climbType)
	if system == "" {
		return nil, domain.Invalid("Could not determine grading system for company %s and type %s", company, climbType)
	}

	return uc.repo.ListGrades(ctx, system)
}

func (uc *CatalogUsecase) Colours(ctx context.Context, company string) ([]domain.Colour, error) {
	if company == "" {
		return nil, domain.ValidationError{Message: "company is required for colours"}
	}
	return uc.repo.ListColours(ctx, company)
}

func (uc *CatalogUsecase) Modes(ctx context.Context) ([]domain.Mode, error) {
	return uc.repo.ListModes(ctx)
}

func (uc *CatalogUsecase) Results(ctx context.Context) ([]domain.Result, error) {
	return uc.repo.ListResults(ctx)
}

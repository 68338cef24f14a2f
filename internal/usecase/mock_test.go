package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/totegamma/sendlog/internal/domain"
)

// --- mocks ---

type mockClimberRepo struct {
	climbers map[string]domain.Climber
	created  []domain.Climber
}

func newMockClimberRepo() *mockClimberRepo {
	return &mockClimberRepo{climbers: map[string]domain.Climber{}}
}

func (m *mockClimberRepo) Get(ctx context.Context, username string) (domain.Climber, error) {
	c, ok := m.climbers[username]
	if !ok {
		return domain.Climber{}, domain.NotFoundError{Resource: "climber"}
	}
	return c, nil
}

func (m *mockClimberRepo) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := m.climbers[username]
	return ok, nil
}

func (m *mockClimberRepo) Create(ctx context.Context, climber domain.Climber) error {
	if _, ok := m.climbers[climber.Username]; ok {
		return domain.ConflictError{}
	}
	m.climbers[climber.Username] = climber
	m.created = append(m.created, climber)
	return nil
}

// plainHasher keeps tests independent of the real hashing schemes.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }
func (plainHasher) Verify(stored, password string) bool  { return stored == "plain:"+password }

type attemptKey struct {
	username string
	routeID  int64
	mode     string
	no       int
}

type mockAttemptRepo struct {
	attempts   map[attemptKey]domain.Attempt
	conflictOn map[int]bool // attempt numbers that fail once with a conflict
	creates    int
}

func newMockAttemptRepo() *mockAttemptRepo {
	return &mockAttemptRepo{
		attempts:   map[attemptKey]domain.Attempt{},
		conflictOn: map[int]bool{},
	}
}

func (m *mockAttemptRepo) MaxAttemptNo(ctx context.Context, username string, routeID int64, mode string) (int, error) {
	max := 0
	for k := range m.attempts {
		if k.username == username && k.routeID == routeID && k.mode == mode && k.no > max {
			max = k.no
		}
	}
	return max, nil
}

func (m *mockAttemptRepo) Create(ctx context.Context, a domain.Attempt) error {
	m.creates++
	key := attemptKey{a.Username, a.RouteID, a.Mode, a.AttemptNo}
	if m.conflictOn[a.AttemptNo] {
		delete(m.conflictOn, a.AttemptNo)
		// simulate a concurrent writer taking the number first
		m.attempts[key] = domain.Attempt{Username: a.Username, RouteID: a.RouteID, Mode: a.Mode, AttemptNo: a.AttemptNo}
		return domain.ConflictError{}
	}
	if _, ok := m.attempts[key]; ok {
		return domain.ConflictError{}
	}
	m.attempts[key] = a
	return nil
}

func (m *mockAttemptRepo) List(ctx context.Context, username string, filter domain.RouteFilter) ([]domain.AttemptView, error) {
	var out []domain.AttemptView
	for k, a := range m.attempts {
		if k.username == username {
			out = append(out, domain.AttemptView{Attempt: a})
		}
	}
	return out, nil
}

func (m *mockAttemptRepo) OpenProjects(ctx context.Context, username string, limit int) ([]domain.Project, error) {
	return []domain.Project{{RouteID: 1, Mode: domain.ModeLead, AttemptCount: limit}}, nil
}

func (m *mockAttemptRepo) SortedHistory(ctx context.Context, username string) ([]domain.AttemptView, error) {
	return m.List(ctx, username, domain.RouteFilter{})
}

type mockRouteRepo struct {
	routes   map[int64]domain.Route
	nextID   int64
	failAt   int
	creates  int
	archived []int64
}

func newMockRouteRepo(routes ...domain.Route) *mockRouteRepo {
	m := &mockRouteRepo{routes: map[int64]domain.Route{}, nextID: 100}
	for _, r := range routes {
		m.routes[r.ID] = r
	}
	return m
}

func (m *mockRouteRepo) Get(ctx context.Context, id int64) (domain.Route, error) {
	r, ok := m.routes[id]
	if !ok {
		return domain.Route{}, domain.NotFoundError{Resource: "route"}
	}
	return r, nil
}

func (m *mockRouteRepo) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	var out []domain.Route
	for _, r := range m.routes {
		if r.Existing {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRouteRepo) Archive(ctx context.Context, id int64) error {
	r := m.routes[id]
	r.Existing = false
	m.routes[id] = r
	m.archived = append(m.archived, id)
	return nil
}

func (m *mockRouteRepo) Create(ctx context.Context, route domain.Route) (int64, error) {
	m.creates++
	if m.failAt > 0 && m.creates == m.failAt {
		return 0, fmt.Errorf("insert exploded")
	}
	m.nextID++
	route.ID = m.nextID
	m.routes[route.ID] = route
	return route.ID, nil
}

type mockCatalogRepo struct {
	companies map[string]domain.Company
	gyms      map[string]domain.Gym
	locations []domain.Location
	colours   []domain.Colour
	systems   map[string]bool
	grades    []domain.Grade
	modes     []domain.Mode
	results   []domain.Result
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		companies: map[string]domain.Company{},
		gyms:      map[string]domain.Gym{},
		systems:   map[string]bool{},
	}
}

func (m *mockCatalogRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	if _, ok := m.companies[c.CompanyName]; ok {
		return domain.ConflictError{}
	}
	m.companies[c.CompanyName] = c
	return nil
}

func (m *mockCatalogRepo) GetCompany(ctx context.Context, name string) (domain.Company, error) {
	c, ok := m.companies[name]
	if !ok {
		return domain.Company{}, domain.NotFoundError{Resource: "company"}
	}
	return c, nil
}

func (m *mockCatalogRepo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var out []domain.Company
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCatalogRepo) CreateGym(ctx context.Context, g domain.Gym) error {
	m.gyms[g.CompanyName+"/"+g.Suburb] = g
	return nil
}

func (m *mockCatalogRepo) GymExists(ctx context.Context, company, suburb string) (bool, error) {
	_, ok := m.gyms[company+"/"+suburb]
	return ok, nil
}

func (m *mockCatalogRepo) ListGyms(ctx context.Context, company string) ([]domain.Gym, error) {
	var out []domain.Gym
	for _, g := range m.gyms {
		if g.CompanyName == company {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) CreateLocation(ctx context.Context, l domain.Location) error {
	for _, existing := range m.locations {
		if existing.CompanyName == l.CompanyName && existing.Suburb == l.Suburb && existing.Location == l.Location {
			return domain.ConflictError{}
		}
	}
	m.locations = append(m.locations, l)
	return nil
}

func (m *mockCatalogRepo) ListLocations(ctx context.Context, company, suburb string) ([]domain.Location, error) {
	return m.locations, nil
}

func (m *mockCatalogRepo) ListClimbTypes(ctx context.Context, company, suburb string) ([]string, error) {
	return []string{"boulder"}, nil
}

func (m *mockCatalogRepo) CreateColour(ctx context.Context, c domain.Colour) error {
	m.colours = append(m.colours, c)
	return nil
}

func (m *mockCatalogRepo) ListColours(ctx context.Context, company string) ([]domain.Colour, error) {
	return m.colours, nil
}

func (m *mockCatalogRepo) CreateGradeSystem(ctx context.Context, name string) error {
	if m.systems[name] {
		return domain.ConflictError{}
	}
	m.systems[name] = true
	return nil
}

func (m *mockCatalogRepo) GradeSystemExists(ctx context.Context, name string) (bool, error) {
	return m.systems[name], nil
}

func (m *mockCatalogRepo) ListGradeSystems(ctx context.Context) ([]string, error) {
	var out []string
	for s := range m.systems {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockCatalogRepo) CreateGrade(ctx context.Context, g domain.Grade) error {
	m.grades = append(m.grades, g)
	return nil
}

func (m *mockCatalogRepo) ListGrades(ctx context.Context, system string) ([]domain.Grade, error) {
	var out []domain.Grade
	for _, g := range m.grades {
		if strings.EqualFold(g.GradingSystem, system) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) CreateMode(ctx context.Context, mode domain.Mode) error {
	m.modes = append(m.modes, mode)
	return nil
}

func (m *mockCatalogRepo) ListModes(ctx context.Context) ([]domain.Mode, error) { return m.modes, nil }

func (m *mockCatalogRepo) CreateResult(ctx context.Context, r domain.Result) error {
	for _, existing := range m.results {
		if existing.Result == r.Result || existing.ResultOrder == r.ResultOrder {
			return domain.ConflictError{}
		}
	}
	m.results = append(m.results, r)
	return nil
}

func (m *mockCatalogRepo) ListResults(ctx context.Context) ([]domain.Result, error) {
	return m.results, nil
}

type mockPublisher struct {
	events []domain.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/sendlog"
	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/observability"
	"github.com/totegamma/sendlog/internal/present/rest/middleware"
	"github.com/totegamma/sendlog/internal/present/rest/presenter"
	"github.com/totegamma/sendlog/internal/service"
	"github.com/totegamma/sendlog/internal/usecase"
)

type Handler struct {
	version  string
	auth     *usecase.AuthUsecase
	attempts *usecase.AttemptUsecase
	routes   *usecase.RouteUsecase
	catalog  *usecase.CatalogUsecase
	signal   *service.SignalService
	metrics  *observability.Metrics
}

// NewHandler wires the usecases to echo. signal may be nil, which disables /realtime.
func NewHandler(
	version string,
	auth *usecase.AuthUsecase,
	attempts *usecase.AttemptUsecase,
	routes *usecase.RouteUsecase,
	catalog *usecase.CatalogUsecase,
	signal *service.SignalService,
	metrics *observability.Metrics,
) *Handler {
	return &Handler{
		version:  version,
		auth:     auth,
		attempts: attempts,
		routes:   routes,
		catalog:  catalog,
		signal:   signal,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, basePath string) {
	basePath = strings.TrimSuffix(basePath, "/")
	if e.Validator == nil {
		e.Validator = NewValidator()
	}

	e.GET("/health", h.handleHealth)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	e.Use(middleware.Metrics(h.metrics))
	e.Use(middleware.IdentifyUsername)

	g := e.Group(basePath)
	g.GET("/.well-known/sendlog", h.handleWellKnown(basePath))
	g.POST("/login_user", h.handleLogin)
	g.POST("/register_users", h.handleRegister)
	g.GET("/routes", h.handleListRoutes)
	g.POST("/routes", h.handleRouteAction, middleware.RequireUsername)
	g.GET("/attempts", h.handleListAttempts, middleware.RequireUsername)
	g.POST("/attempts", h.handleRecordAttempt, middleware.RequireUsername)
	g.GET("/misc_additions", h.handleMiscLookup)
	g.POST("/misc_additions", h.handleMiscAdd, middleware.RequireUsername)
	g.GET("/realtime", h.handleRealtime, middleware.RequireUsername)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) handleWellKnown(basePath string) echo.HandlerFunc {
	wellknown := sendlog.WellKnown{
		Version: h.version,
		Endpoints: map[string]sendlog.Endpoint{
			"login": {
				Template: basePath + "/login_user",
				Method:   []string{http.MethodPost},
			},
			"register": {
				Template: basePath + "/register_users",
				Method:   []string{http.MethodPost},
			},
			"routes": {
				Template: basePath + "/routes",
				Method:   []string{http.MethodGet, http.MethodPost},
				Query:    &[]string{"company", "suburb", "location", "type"},
			},
			"attempts": {
				Template: basePath + "/attempts",
				Method:   []string{http.MethodGet, http.MethodPost},
				Query:    &[]string{"company", "suburb", "location", "type", "dashboard"},
			},
			"misc_additions": {
				Template: basePath + "/misc_additions",
				Method:   []string{http.MethodGet, http.MethodPost},
				Query:    &[]string{"entity", "company", "suburb", "climbType"},
			},
			"realtime": {
				Template: basePath + "/realtime",
				Method:   []string{http.MethodGet},
			},
		},
	}
	return func(c echo.Context) error {
		return presenter.OK(c, wellknown)
	}
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req sendlog.LoginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.Error(c, err)
	}

	profile, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, sendlog.LoginResponse{Message: "Login successful", User: profile})
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return presenter.Error(c, err)
	}

	if err := h.auth.Register(ctx, input); err != nil {
		return presenter.Error(c, err)
	}

	return presenter.Created(c, sendlog.MessageResponse{Message: "User registered successfully"})
}

func routeFilter(c echo.Context) domain.RouteFilter {
	climbType := c.QueryParam("type")
	if climbType == "" {
		climbType = c.QueryParam("type_column")
	}
	return domain.RouteFilter{
		CompanyName: c.QueryParam("company"),
		Suburb:      c.QueryParam("suburb"),
		Location:    c.QueryParam("location"),
		ClimbType:   climbType,
	}
}

func (h *Handler) handleListRoutes(c echo.Context) error {
	routes, err := h.routes.List(c.Request().Context(), routeFilter(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sendlog.RoutesResponse{Routes: routes})
}

func (h *Handler) handleRouteAction(c echo.Context) error {
	ctx := c.Request().Context()

	var req sendlog.RouteRequest
	if err := c.Bind(&req); err != nil {
		return presenter.Error(c, err)
	}

	switch strings.ToLower(req.Action) {
	case "archive":
		if err := h.routes.Archive(ctx, req.RID); err != nil {
			return presenter.Error(c, err)
		}
		h.metrics.RoutesArchived.Inc()
		return presenter.OK(c, sendlog.MessageResponse{
			Message: fmt.Sprintf("Route %d archived successfully", req.RID),
		})

	case "add":
		inputs, err := sendlog.DecodeOneOrMany[usecase.RouteInput](req.Route, req.Routes)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid route payload: "+err.Error())
		}
		rids, err := h.routes.Add(ctx, inputs)
		h.metrics.RoutesAdded.Add(float64(len(rids)))
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.Created(c, sendlog.RoutesAddedResponse{
			Message: fmt.Sprintf("%d route(s) added successfully", len(rids)),
			RIDs:    rids,
		})

	default:
		return presenter.BadRequestMessage(c, `Invalid action. Use "archive" or "add".`)
	}
}

func (h *Handler) handleListAttempts(c echo.Context) error {
	ctx := c.Request().Context()
	username := middleware.Username(c)

	switch c.QueryParam("dashboard") {
	case "projects":
		projects, err := h.attempts.Projects(ctx, username)
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, sendlog.ProjectsResponse{Projects: projects})

	case "all_attempts_sorted":
		attempts, err := h.attempts.SortedHistory(ctx, username)
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, sendlog.AttemptsResponse{Attempts: attempts})

	case "":
		attempts, err := h.attempts.List(ctx, username, routeFilter(c))
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, sendlog.AttemptsResponse{Attempts: attempts})

	default:
		return presenter.BadRequestMessage(c, "Invalid dashboard view")
	}
}

func (h *Handler) handleRecordAttempt(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.RecordAttemptInput
	if err := c.Bind(&input); err != nil {
		return presenter.Error(c, err)
	}

	attemptNo, err := h.attempts.Record(ctx, middleware.Username(c), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	h.metrics.AttemptsRecorded.WithLabelValues(input.Mode).Inc()

	return presenter.Created(c, sendlog.AttemptAddedResponse{Message: "Attempt added", AttemptNo: attemptNo})
}

func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return domain.ValidationError{Message: "data is required"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return domain.Invalid("invalid data: %s", err.Error())
	}
	return nil
}

func (h *Handler) handleMiscAdd(c echo.Context) error {
	ctx := c.Request().Context()

	var req sendlog.MiscRequest
	if err := c.Bind(&req); err != nil {
		return presenter.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return presenter.BadRequestMessage(c, "Invalid entity type")
	}

	var message string
	var err error
	switch req.Entity {
	case "company":
		var company domain.Company
		if err = decodeData(req.Data, &company); err == nil {
			err = h.catalog.AddCompany(ctx, company)
		}
		message = "Company added"

	case "gym":
		var gym domain.Gym
		if err = decodeData(req.Data, &gym); err == nil {
			err = h.catalog.AddGym(ctx, gym)
		}
		message = "Gym added"

	case "location":
		var inputs []usecase.LocationInput
		inputs, err = sendlog.DecodeOneOrMany[usecase.LocationInput](req.Data, nil)
		if err != nil {
			err = domain.Invalid("invalid data: %s", err.Error())
			break
		}
		var inserted int
		inserted, err = h.catalog.AddLocations(ctx, req.CompanyName, req.Suburb, inputs)
		message = fmt.Sprintf("%d location(s) added", inserted)

	case "colour":
		var colour domain.Colour
		if err = decodeData(req.Data, &colour); err == nil {
			err = h.catalog.AddColour(ctx, colour)
		}
		message = "Colour added"

	case "grade_system":
		var input usecase.GradeSystemInput
		if err = decodeData(req.Data, &input); err == nil {
			err = h.catalog.AddGradeSystem(ctx, input)
		}
		message = "Grading system added"

	case "grade":
		var grade domain.Grade
		if err = decodeData(req.Data, &grade); err == nil {
			err = h.catalog.AddGrade(ctx, grade)
		}
		message = "Grade added"

	case "mode":
		var mode domain.Mode
		if err = decodeData(req.Data, &mode); err == nil {
			err = h.catalog.AddMode(ctx, mode)
		}
		message = "Mode added"

	case "result":
		var result domain.Result
		if err = decodeData(req.Data, &result); err == nil {
			err = h.catalog.AddResult(ctx, result)
		}
		message = "Result added"

	default:
		return presenter.BadRequestMessage(c, "Invalid entity type")
	}

	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, sendlog.MessageResponse{Message: message})
}

func results[T any](c echo.Context, items T, err error) error {
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sendlog.ResultsResponse[T]{Results: items})
}

func (h *Handler) handleMiscLookup(c echo.Context) error {
	ctx := c.Request().Context()
	company := c.QueryParam("company")
	suburb := c.QueryParam("suburb")

	switch c.QueryParam("entity") {
	case "company":
		items, err := h.catalog.Companies(ctx)
		return results(c, items, err)

	case "gym":
		items, err := h.catalog.Gyms(ctx, company)
		return results(c, items, err)

	case "location":
		items, err := h.catalog.Locations(ctx, company, suburb)
		return results(c, items, err)

	case "climbtype":
		items, err := h.catalog.ClimbTypes(ctx, company, suburb)
		return results(c, items, err)

	case "climbtype_location":
		if company == "" || suburb == "" {
			return presenter.BadRequestMessage(c, "company and suburb are required for climbtype_location")
		}
		climbTypes, err := h.catalog.ClimbTypes(ctx, company, suburb)
		if err != nil {
			return presenter.Error(c, err)
		}
		locations, err := h.catalog.Locations(ctx, company, suburb)
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, sendlog.ClimbTypeLocations{ClimbTypes: climbTypes, Locations: locations})

	case "grade_system":
		items, err := h.catalog.GradeSystems(ctx)
		return results(c, items, err)

	case "grades":
		items, err := h.catalog.Grades(ctx, company, suburb, c.QueryParam("climbType"))
		return results(c, items, err)

	case "colours":
		items, err := h.catalog.Colours(ctx, company)
		return results(c, items, err)

	case "mode":
		items, err := h.catalog.Modes(ctx)
		return results(c, items, err)

	case "result":
		items, err := h.catalog.Results(ctx)
		return results(c, items, err)

	default:
		return presenter.BadRequestMessage(c, "Invalid or missing entity parameter")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if h.signal == nil {
		return presenter.NotFound(c, "realtime is disabled")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return nil
	}
	defer ws.Close()

	username := middleware.Username(c)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan domain.Event)
	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{}, 1)

	go func() {
		defer func() { quit <- struct{}{} }()
		for {
			var req sendlog.RealtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else if ctx.Err() == nil {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "listen":
				channels := make([]string, 0, len(req.Channels))
				for _, channel := range req.Channels {
					if !domain.CanListen(username, channel) {
						slog.InfoContext(
							ctx, "Socket subscribe refused",
							slog.String("channel", channel),
							slog.String("username", username),
							slog.String("module", "socket"),
						)
						continue
					}
					channels = append(channels, channel)
				}
				select {
				case input <- channels:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", channels),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}

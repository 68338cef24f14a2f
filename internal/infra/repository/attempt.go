package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/infra/database/models"
)

type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

const attemptViewColumns = `a.username, a.route_id, a.mode, a.attempt_no, a.date, a.time, a.result,
	a.rating, a.notes, a.video, a.c_date,
	r.company_name, r.suburb, r.location, r.grade, r.grading_system,
	COALESCE(g.grade_order, -1) AS grade_order, r.climb_type, r.colour`

// modePriority renders domain.ModePriority as a SQL expression over column.
func modePriority(column string) string {
	return fmt.Sprintf(
		"CASE %s WHEN '%s' THEN 1 WHEN '%s' THEN 2 WHEN '%s' THEN 3 ELSE 4 END",
		column, domain.ModeLead, domain.ModeTopRope, domain.ModeAutoBelay,
	)
}

func (r *AttemptRepository) attemptView(ctx context.Context, username string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("attempts AS a").
		Select(attemptViewColumns).
		Joins("JOIN routes r ON r.id = a.route_id AND r.existing = ?", true).
		Joins("LEFT JOIN grades g ON g.grade = r.grade AND g.grading_system = r.grading_system").
		Where("a.username = ?", username)
}

func (r *AttemptRepository) MaxAttemptNo(ctx context.Context, username string, routeID int64, mode string) (int, error) {
	var maxNo int
	err := r.db.WithContext(ctx).Model(&models.Attempt{}).
		Select("COALESCE(MAX(attempt_no), 0)").
		Where("username = ? AND route_id = ? AND mode = ?", username, routeID, mode).
		Scan(&maxNo).Error
	return maxNo, err
}

func (r *AttemptRepository) Create(ctx context.Context, attempt domain.Attempt) error {
	err := r.db.WithContext(ctx).Create(&models.Attempt{
		Username:  attempt.Username,
		RouteID:   attempt.RouteID,
		Mode:      attempt.Mode,
		AttemptNo: attempt.AttemptNo,
		Date:      attempt.Date,
		Time:      attempt.Time,
		Result:    attempt.Result,
		Rating:    attempt.Rating,
		Notes:     attempt.Notes,
		Video:     attempt.Video,
	}).Error
	return translate(err, "attempt")
}

func (r *AttemptRepository) List(ctx context.Context, username string, filter domain.RouteFilter) ([]domain.AttemptView, error) {
	attempts := []domain.AttemptView{}
	err := r.attemptView(ctx, username).
		Scopes(wallScope("r", filter)).
		Order("a.date DESC").
		Order("a.time DESC").
		Scan(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) SortedHistory(ctx context.Context, username string) ([]domain.AttemptView, error) {
	attempts := []domain.AttemptView{}
	err := r.attemptView(ctx, username).
		Order("COALESCE(g.grade_order, -1) DESC").
		Order("a.route_id").
		Order(modePriority("a.mode")).
		Order("a.attempt_no DESC").
		Scan(&attempts).Error
	return attempts, err
}

// OpenProjects groups a climber's attempts by (route, mode), drops every pair that has a send,
// and ranks what is left hardest first.
func (r *AttemptRepository) OpenProjects(ctx context.Context, username string, limit int) ([]domain.Project, error) {
	query := `
SELECT p.route_id, p.mode,
	r.company_name, r.suburb, r.location, r.grade, r.grading_system,
	COALESCE(g.grade_order, -1) AS grade_order, r.climb_type, r.colour,
	p.attempt_count, p.last_attempt_date, COALESCE(br.result, '') AS best_result
FROM (
	SELECT a.route_id, a.mode,
		COUNT(*) AS attempt_count,
		MAX(a.date) AS last_attempt_date,
		MAX(COALESCE(rs.result_order, -1)) AS best_order
	FROM attempts a
	LEFT JOIN results rs ON rs.result = a.result
	WHERE a.username = ?
	GROUP BY a.route_id, a.mode
	HAVING SUM(CASE WHEN a.result = ? THEN 1 ELSE 0 END) = 0
) p
JOIN routes r ON r.id = p.route_id AND r.existing = ?
LEFT JOIN grades g ON g.grade = r.grade AND g.grading_system = r.grading_system
LEFT JOIN results br ON br.result_order = p.best_order
ORDER BY COALESCE(g.grade_order, -1) DESC, ` + modePriority("p.mode") + `, p.route_id
LIMIT ?`

	projects := []domain.Project{}
	err := r.db.WithContext(ctx).
		Raw(query, username, domain.ResultSent, true, limit).
		Scan(&projects).Error
	return projects, err
}

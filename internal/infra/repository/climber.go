package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/infra/database/models"
)

type ClimberRepository struct {
	db *gorm.DB
}

func NewClimberRepository(db *gorm.DB) *ClimberRepository {
	return &ClimberRepository{db: db}
}

func (r *ClimberRepository) Get(ctx context.Context, username string) (domain.Climber, error) {
	var climber models.Climber
	err := r.db.WithContext(ctx).Take(&climber, "username = ?", username).Error
	if err != nil {
		return domain.Climber{}, translate(err, "climber")
	}

	return domain.Climber{
		Username:  climber.Username,
		Password:  climber.Pass,
		FirstName: climber.FirstName,
		LastName:  climber.LastName,
		Email:     climber.Email,
		Access:    climber.Access,
		CDate:     climber.CDate,
	}, nil
}

func (r *ClimberRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Climber{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *ClimberRepository) Create(ctx context.Context, climber domain.Climber) error {
	access := climber.Access
	if access == "" {
		access = domain.AccessRegular
	}
	err := r.db.WithContext(ctx).Create(&models.Climber{
		Username:  climber.Username,
		Pass:      climber.Password,
		FirstName: climber.FirstName,
		LastName:  climber.LastName,
		Email:     climber.Email,
		Access:    access,
	}).Error
	return translate(err, "climber")
}

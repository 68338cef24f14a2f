package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/totegamma/sendlog/internal/domain"
)

// translate maps gorm's translated driver errors onto domain errors.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ConflictError{Resource: resource}
	default:
		return err
	}
}

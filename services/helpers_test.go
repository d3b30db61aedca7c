package services

import (
	"errors"

	"clubpoints/models"
)

func errorsIsDuplicate(err error) bool {
	return errors.Is(err, models.ErrDuplicateName)
}

func errorsIsEmpty(err error) bool {
	return errors.Is(err, models.ErrEmptyField)
}

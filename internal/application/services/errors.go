package services

import (
	apperrors "github.com/servineo/backend/pkg/errors"
)

// existsFromErr turns a lookup error into an existence answer: not-found
// means absent, anything else is a real failure.
func existsFromErr(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

package impl

import (
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/repository"

	"github.com/pkg/errors"
)

// softFailureKinds are the error kinds use cases report inside a 200 result.
//
//nolint:gochecknoglobals
var softFailureKinds = []error{
	domainerrors.ErrUnauthenticated,
	domainerrors.ErrUnauthorized,
	domainerrors.ErrUserNotFound,
	domainerrors.ErrEmailInUse,
	domainerrors.ErrPasswordStrength,
}

// softFailure maps a business error to the message shown to the client.
// The second result is false for anything that must become a 500.
func softFailure(err error) (string, bool) {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.Message(), true
	}

	for _, kind := range softFailureKinds {
		if !errors.Is(err, kind) {
			continue
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return appErr.Message(), true
		}
	}

	return "", false
}

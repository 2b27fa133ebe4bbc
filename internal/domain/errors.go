package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument отклонённый запрос на регистрацию сотрудника.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrTaxRateUnavailable     = errors.New("tax rate unavailable")
	ErrPerformanceUnavailable = errors.New("performance score unavailable")
)

// InvalidArgument оборачивает ErrInvalidArgument с причиной.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

package driversuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the drivers use case.
type Option func(uc *UseCase) error

// WithDefaultPageSize option configures the page size which the List
// operation uses when the caller does not provide a limit. This
// option may be passed to the New() function.
func WithDefaultPageSize(size int) Option {
	return func(uc *UseCase) error {
		if size <= 0 {
			return fmt.Errorf("page size (%d) is not positive", size)
		}
		if size > maxPageSize {
			return fmt.Errorf(
				"page size (%d) exceeds the %d maximum",
				size, maxPageSize,
			)
		}
		if uc.defaultPageSize != 0 {
			return errors.New("page size is already configured")
		}
		uc.defaultPageSize = size
		return nil
	}
}

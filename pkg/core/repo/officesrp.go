package repo

import (
	"context"

	"github.com/flotamx/flotaweb/pkg/core/model"
)

// OfficesListQuery carries the filters of the paginated offices
// listing. Search is matched case-insensitively as a substring of the
// office name, CUO code, municipality, and entity columns.
type OfficesListQuery struct {
	Search string
	Offset int
	Limit  int
}

type OfficesConnQueryer interface {
	OfficesQueryer
}

type OfficesTxQueryer interface {
	OfficesQueryer
}

// OfficesQueryer exposes the read-only branch office and vehicle type
// reference data.
type OfficesQueryer interface {
	// ListActive returns the active branch offices ordered by name.
	ListActive(ctx context.Context) ([]model.BranchRef, error)

	// List returns one page of branch offices plus the total number
	// of rows matching the query filters, ordered by name.
	List(ctx context.Context, q OfficesListQuery) (
		[]model.BranchOffice, int64, error,
	)

	// VehicleTypes returns the vehicle types catalog ordered by name.
	VehicleTypes(ctx context.Context) ([]model.VehicleType, error)
}

type Offices interface {
	Conn(Conn) OfficesConnQueryer
	Tx(Tx) OfficesTxQueryer
}

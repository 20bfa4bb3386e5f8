package model

// BranchOffice models a branch office (oficina), keyed by its CUO
// code. Offices are read-only reference data for this service:
// drivers and vehicles reference them by Code.
type BranchOffice struct {
	ID           int64
	Code         string // clave CUO, unique
	Name         string
	Entity       string
	Municipality string
	Address      string
	Phone        string
	Active       bool
}

// Ref returns the listing subset of the office fields.
func (o BranchOffice) Ref() BranchRef {
	return BranchRef{
		Code:         o.Code,
		Name:         o.Name,
		Entity:       o.Entity,
		Municipality: o.Municipality,
	}
}

// VehicleType models an entry of the vehicle types catalog.
type VehicleType struct {
	ID         int64
	Name       string
	CapacityKg float64
}

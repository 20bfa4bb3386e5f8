// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import "fmt"

// DuplicateError is the closed-set violation kind raised when a store
// write collides with a unique constraint. It is created at the store
// boundary (which is the only layer that may inspect driver-specific
// error codes) and matched by the use case layer with errors.As in
// order to produce a field-attributed user message.
// Constraint holds the violated constraint name; constraint names
// embed the offending column name (e.g. conductores_curp_key), which
// is what the message translation matches on.
type DuplicateError struct {
	Constraint string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates %q", e.Constraint)
}

// ForeignKeyError is the closed-set violation kind raised when a
// store write references a row which does not exist. Constraint holds
// the violated foreign key constraint name, which embeds the
// referencing column name (e.g. conductores_clave_oficina_fkey).
type ForeignKeyError struct {
	Constraint string
}

// Error implements the error interface.
func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key violation on %q", e.Constraint)
}

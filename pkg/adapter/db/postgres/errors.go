// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes of the constraint violations which the use case
// layer needs to tell apart. See
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// WrapWriteError maps a failed write to the closed set of violation
// kinds which the use case layer matches on: unique violations become
// cerr.DuplicateError, foreign key violations cerr.ForeignKeyError
// (both wrapped as cerr.Conflict/cerr.BadRequest respectively), and a
// gorm record-not-found becomes cerr.NotFound. All other errors pass
// through unchanged. This is the only place which may inspect
// driver-specific error codes; above this boundary only tagged error
// values travel.
func WrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case uniqueViolation:
			return cerr.Conflict(&cerr.DuplicateError{
				Constraint: pgErr.ConstraintName,
			})
		case foreignKeyViolation:
			return cerr.BadRequest(&cerr.ForeignKeyError{
				Constraint: pgErr.ConstraintName,
			})
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(err)
	}
	return err
}

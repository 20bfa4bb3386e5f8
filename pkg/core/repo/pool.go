// Package repo contains the repository interfaces through which the
// use case layer talks to the database, keeping the core independent
// of the concrete DBMS adapter. The Pool/Conn/Tx triple models the
// connection lifecycle while the per-aggregate interfaces (Drivers,
// Vehicles, Offices) expose the typed queries.
package repo

import "context"

type ConnHandler func(context.Context, Conn) error

type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}

// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. A catalog contract (see Catalog) for the read-only country directory:
//     All, ByName, ByRegion and ByCode.
//  2. A concrete HTTP implementation (see HTTPCatalog) against the
//     restcountries v3.1 API, with an optional request pacer and a
//     per-request timeout.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations), opening the
//     SQLite registry and applying embedded goose migrations.
//
// # Error Handling
//
// Every failed remote call is logged and returned as a *TransportError.
// Callers match conditions with errors.Is: ErrTransport for any remote
// failure, ErrNotFound for a 404. Invalid arguments are rejected before any
// request is made: ErrEmptyQuery, ErrUnknownRegion, ErrInvalidCode.
//
// Nothing is retried.
package client

// Package userdata reads the application's own user records and turns them
// into identity enrichments for the session projection.
//
// Records are keyed by the SSO subject. Two backends exist: PostgresStore
// (pgx, schema in Migrations) and MongoStore. Wrap either in an Enricher and
// pass it to session.WithEnricher.
package userdata

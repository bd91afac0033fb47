// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an embedded filesystem.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, userdata.Migrations, cfg, log); err != nil {
//		return err
//	}
//
// Connect retries with a growing delay and honours context cancellation.
// Healthcheck adapts the pool to the HTTP server's readiness probe.
package pg

// Package tweets provides the client-side persistence layer for cached tweets.
//
// # Overview
//
// Repository covers the two things the timeline engine needs from the cache:
// replace-on-conflict writes of tweet rows and a recency-ordered read joined
// with the users table. SQLiteRepository implements it over a dbx.DBTX, so the
// same code runs on *sql.DB or inside a transaction opened by dbx.WithTx.
//
// # Ordering
//
// Recency is tweet ID order: the feed service assigns increasing IDs, so
// Recent sorts by id DESC rather than by created_at, which may tie.
//
// # Joins
//
// Authors are joined at read time with a LEFT JOIN. A tweet whose author row
// is missing is still returned, with a zero-valued User.
//
// Typical Usage
//
//	repo := tweets.NewSQLiteRepository(db)
//	_ = repo.UpsertMany(ctx, batch)
//	recent, _ := repo.Recent(ctx, 50)
package tweets

// Package kv provides the SQLite persistence of the durable key/value table.
//
// Each row holds one logical record: the namespaced storage key and the raw
// string persisted under it (plain JSON, or a JSON encryption envelope).
// The repository works over dbx.DBTX, so it runs unchanged against *sql.DB
// or inside a transaction.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, key, raw)
//	raw, ok, _ := repo.Get(ctx, key)
//	_ = repo.Delete(ctx, key)
package kv

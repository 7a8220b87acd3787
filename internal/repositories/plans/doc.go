// Package plans provides the persistence layer for travel plans.
//
// The Repository interface covers the operations the domain store needs on
// the travel_plans table. SQLiteRepository implements it over a dbx.DBTX,
// so the same code runs against *sql.DB or inside a *sql.Tx.
//
// Listings are ordered newest first (created_at DESC, id DESC). Deleting a
// plan cascades to its plan_details rows through the foreign key.
//
// Typical Usage
//
//	repo := plans.NewSQLiteRepository(db)
//	p, _ := repo.Insert(ctx, in, createdAt)
//	all, _ := repo.List(ctx)
//	deleted, _ := repo.DeleteByID(ctx, p.ID)
package plans

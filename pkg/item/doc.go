// Package item provides the item collection served by itemd.
//
// An Item is an id/name pair. Ids are assigned by the store, start at 1,
// increase monotonically and are never reused, even after the item they
// named has been deleted.
//
// Core Types:
//
//   - Item: a single record
//   - Store: CRUD contract implemented by MemoryStore and SQLiteStore
//   - Payload: a validated create/update request body
//   - Filter: optional name glob applied to List results
//
// Thread Safety:
//
// MemoryStore guards its map and id counter with a single sync.RWMutex, so id
// assignment is atomic with insertion. SQLiteStore holds one database
// connection, which serializes every statement.
//
// Usage:
//
//	store := item.NewMemoryStore()
//	it, err := store.Create(ctx, "Item 1")
//	it, err = store.Update(ctx, it.ID, "New")
//	err = store.Delete(ctx, it.ID)
//	_, err = store.Get(ctx, it.ID) // *item.NotFoundError
package item

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the exam snapshot and derives listings from it.

# Store

Store mirrors a Remote collection (the SQL repository on the server, the
HTTP client in examctl):

	store := catalog.NewStore(remote)
	res := store.Load(ctx)        // newest first
	res = store.Add(ctx, input)   // prepended on success
	res = store.Update(ctx, id, patch)
	res = store.Delete(ctx, id)

Each operation makes exactly one remote call and never retries. The
snapshot changes only after the remote succeeds, and only with the row the
remote returned. Failures come back as a Result with Success=false and the
upstream message; the snapshot is left as it was.

# Query

Query is a pure function over a snapshot:

	exams := catalog.Query(store.Snapshot(), catalog.Filter{
		Career: "informatica",
		Q:      "algo",
		Sort:   catalog.SortOldest,
	})

Q matches title or course, case-insensitively, as a literal substring.
Cycle, Type and Period match exactly after normalisation; Year matches the
decimal year. Results are stably ordered by year.

# Upload

Upload and Edit normalise and validate before touching the store:

	res := catalog.Upload(ctx, store, input)
	if errors.Is(res.Err(), catalog.ErrInvalidExam) { ... }

Cycles are stored as "1".."10" and the substitute exam as "Sustitutorio";
Roman numerals and "Susti" are accepted on input.
*/
package catalog

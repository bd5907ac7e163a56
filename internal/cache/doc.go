// SPDX-License-Identifier: Apache-2.0

// Package cache implements the keyed query cache of the sync layer.
//
// Each entry holds the last loaded value, its load timestamp, and the
// loader that produced it. Fetch serves fresh data synchronously, coalesces
// concurrent loads for the same key, and revalidates stale entries in the
// background while still returning the last-known value (stale-while-
// revalidate). Entries registered with a refresh interval are reloaded on a
// timer for as long as at least one consumer retains the key.
//
// Partial updates from the push channel are applied through Merge, with
// the merge helpers in merge.go handling id-matched list updates.
package cache

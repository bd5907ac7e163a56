// SPDX-License-Identifier: Apache-2.0

// Package sync composes the pull adapter, the push transport, and the query
// cache into per-domain hooks: jobs, nodes, providers, wallet, agent, and
// system.
//
// A [Session] owns the shared collaborators for one authenticated user.
// Hooks are created from it and follow a common lifecycle: Attach registers
// the push subscriptions that merge or invalidate the hook's cache keys and
// retains those keys for proactive refresh; Detach releases both. Reads go
// through the cache (stale-while-revalidate), writes go through [Mutate],
// which applies the declared cache effect only on success.
//
// Presentation code talks to hooks only; raw channel access for anything
// outside them is available through Session.Subscribe and Session.Send.
package sync

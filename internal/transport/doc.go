// SPDX-License-Identifier: Apache-2.0

// Package transport owns the push channel: one persistent websocket
// connection to the marketplace, multiplexing every push topic the client
// consumes.
//
// The [Transport] handles connect, reconnect with capped exponential backoff
// and jitter, the bearer-token handshake, heartbeats that detect half-open
// connections, and a bounded outbound queue drained once the connection is
// ready. Inbound frames are handed to the [Router], which dispatches them to
// topic subscribers and wildcard subscribers in registration order.
//
// Lifecycle topics (connected, disconnected) are synthesised locally from
// the transport's own state transitions and delivered to wildcard
// subscribers only; auth_success and auth_error arrive from the server as
// ordinary frames during the handshake.
//
// A transient network failure is never surfaced to callers as fatal: the
// transport keeps retrying per the backoff policy. An explicit rejection of
// the credentials is terminal: reconnection stops, the state drops to
// Disconnected, and the auth_error frame reaches wildcard subscribers
// exactly once so the UI can prompt for re-authentication.
package transport

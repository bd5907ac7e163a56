// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive console application runtime.
//
// It wires the sync session, the local snapshot store, background workers
// and the terminal dashboard into a single process lifecycle.
package client

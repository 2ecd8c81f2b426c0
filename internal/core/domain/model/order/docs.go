// Package order implements the order aggregate and its lifecycle state machine.
//
// The package contains three closely related pieces:
//
//   - Status: the fixed registry of lifecycle states with wire names and
//     presentation metadata, plus the pure transition policy (single-step
//     forward progression, universal cancel escape, role-gated cancellation).
//   - Action: the named lifecycle operations clients invoke, each mapping
//     to a target status.
//   - Order: the aggregate root whose mutators funnel every status change
//     through one policy-checked choke point, maintaining the timestamp
//     and side-effect-field invariants.
//
// The aggregate has no notion of previously persisted state; checking a
// requested transition against the stored status (and persisting it with a
// compare-and-swap) is the application layer's responsibility.
package order

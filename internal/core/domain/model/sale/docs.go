// Package sale holds the Sale aggregate and its append-only event ledger.
//
// A sale moves through a fixed state machine, and every accepted transition
// bumps the aggregate version by exactly one and appends exactly one event at
// the new version. The event stream is therefore gapless per sale, and
// replaying it reconstructs the aggregate's current status and version.
package sale

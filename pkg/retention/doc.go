// Package retention provides the snapshot that carries a live connection
// across a deep sleep.
//
// Before sleep the connection state is captured into a Snapshot and saved
// to a Store. After wake a Handoff exposes the snapshot read-only to the
// resume engine; the only change ever written back is clearing the
// recovered flag once the resume window closes.
//
// Snapshots are encoded as CBOR with integer keys and carry FormatVersion.
package retention

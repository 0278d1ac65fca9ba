// Package driver implements the per-interface connection state of the
// wireless driver shim.
//
// A Driver owns one Interface per virtual radio interface. An Interface
// tracks its BSS, its peers and their cipher keys, drives the station
// lifecycle state machine, installs and removes keys on the radio, and
// keeps the link alive while associated.
//
// # Peers
//
// In the AP role every peer has a record in a fixed-capacity
// station.Registry. In the STA role the interface has a single "self"
// record tracking the AP it is associated with.
//
// # Locking
//
// Every exported Interface method takes the interface lock, and so does
// the keep-alive timer callback. The radio Commander, the event Sink and
// the AppNotifier are called with the lock held and must not call back
// into the Interface.
package driver

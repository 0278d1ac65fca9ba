// Package resume replays a retained connection after deep sleep.
//
// The upstream framework calls Engine.Resume at each connection stage
// before doing the real work. On ResultSuccess the stage has been replayed
// from the retention snapshot and the live path must be skipped; any other
// result means "do it the normal way". Results are never errors for the
// end user.
//
// Every call passes a validation gate first: the interface must be in STA
// role, and except for PORT a recovered snapshot identifying the AP must
// be present. The resume window closes when the snapshot is invalidated,
// after which every gated stage returns ResultFailNotRecovered.
package resume

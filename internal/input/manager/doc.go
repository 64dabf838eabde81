// Package manager provides the building blocks of concrete device managers.
//
// StdManager combines a device directory, a listener dispatcher and the
// per-class enablement vector. Backends embed *StdManager, add and remove
// devices, and publish events with Send or, for events closing some state,
// SendSince:
//
//	type Backend struct {
//		*manager.StdManager
//	}
//
//	func NewBackend() *Backend {
//		b := &Backend{}
//		b.StdManager = manager.New(cfg, b.finalizeListener, manager.WithOwner(b))
//		return b
//	}
//
// When a listener is removed with finalization, the finalize hook sends the
// listener cancel events for all open state through SendTo. Hooks wrap this
// work in BeginCancelFrame and EndCancelFrame so that per-listener extra data
// tracking already canceled state is reset once the outermost frame ends.
//
// ParentManager presents several managers as one.
package manager

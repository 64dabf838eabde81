// Package input defines the data model shared by every device manager:
// capabilities, devices, events, accessors, listeners and the class
// registries that give capability and event kinds a stable runtime identity.
//
// # Architecture
//
// Backends create devices, each exposing a fixed set of typed capabilities,
// and publish events generated by those capabilities. Listeners subscribe to
// a device manager with an optional CallIf filter. The dispatching machinery
// lives in the dispatch package; predicate combinators live in callif.
//
//	backend ──▶ Device/Capability ──▶ Event ──▶ DeviceManager ──▶ Listener
//
// # Ownership
//
// Devices own their capabilities. Capabilities reference their device
// weakly, events reference their capability weakly, and dispatchers reference
// listeners weakly. A listener is kept alive only by its creator: once
// unreachable it is dropped silently on the next delivery.
//
// # Thread Safety
//
// Nothing in this package or its subpackages is safe for concurrent use,
// except UniqueTimeStamp and id allocation, which are process-wide. All
// delivery is synchronous and may recurse through listener callbacks.
package input

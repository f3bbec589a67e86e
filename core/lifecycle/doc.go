// Package lifecycle provides explicit attach/detach scopes with guaranteed
// cleanup, the tree-lifecycle half of the provider pattern.
//
// A Scope stands in for one attachment of a component to the tree. Everything
// the component acquires while attached (subscriptions, connections, watchers)
// registers a cleanup with OnDetach; when the component leaves the tree,
// Detach runs every cleanup exactly once, in reverse registration order.
//
//	scope := lifecycle.NewScope()
//
//	stop := settings.Watch(render)
//	scope.OnDetach(stop)
//
//	// later, when the component is removed:
//	scope.Detach()
//
// Cleanup is guaranteed rather than best-effort: registering on a scope that
// already detached runs the cleanup immediately instead of discarding it. That
// closes the race where a component is torn down while it is still acquiring
// resources.
//
// Child scopes mirror nested subtrees: detaching a parent detaches its
// children first (children registered later detach earlier, per LIFO), and a
// child that detaches on its own unregisters from the parent.
//
//	page := lifecycle.NewScope()
//	widget := page.Child()
//	// page.Detach() also detaches widget
//
// All methods are safe for concurrent use. Detach is idempotent and terminal;
// a detached scope cannot be re-attached, so create a new Scope for a new
// attachment.
package lifecycle

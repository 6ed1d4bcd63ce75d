// Package property implements observable value cells and the directional
// bindings that keep them synchronized.
//
// A [Property] holds one typed value. Setting it to a different value
// notifies its subscribers in subscription order and invalidates its owning
// element. A [Link] created by [Bind] keeps two properties synchronized in
// one or both directions; at most one link may drive a given property.
//
// [Collection] and [BindCollections] generalize the same model to ordered
// lists, mirroring structural edits at the same index.
//
// All operations must run on the UI thread of the [gui.Env] the property
// was created with. Calls from any other goroutine fail with a
// *gui.ThreadError.
package property

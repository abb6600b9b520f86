// Package form owns the mutable registration form state: the current values,
// the set of touched fields and the live validation result. A Controller
// re-runs the schema on every change, exposes which errors a presentation
// layer may show (touched and failing) and guards Submit so it only fires on
// a fully valid record.
//
// A successful submission raises a success banner that expires after a fixed
// TTL. The expiry is a cancellable timer owned by the controller: a newer
// submission or an explicit Reset invalidates the pending expiry so it can
// never hide a newer banner.
package form

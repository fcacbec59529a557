// Package ui defines the page adapter the controller talks to: typed view
// models plus narrow widget interfaces for the users table, the create forms,
// the dialogs and the selection lists.
//
// The package deliberately owns no rendering. A concrete Document wraps
// whatever widget toolkit the page uses and resolves logical widget names to
// element identifiers once, via a Bindings map. The bundled Fake* types
// implement every interface in memory and record interactions, so controller
// behavior is testable without a page.
package ui

// Package controller wires the library page together: form validation, API
// calls, table synchronization, dialogs and notifications.
//
// State synchronization is deliberately coarse. After every successful
// mutation the controller re-fetches the full user list and redraws the
// table, trading bandwidth for correctness at library-scale data volumes.
// Concurrent submissions are not serialized; both requests fly and the last
// completing reload wins.
//
// Every failure path leaves the page interactive: local validation blocks
// submission with inline messages, server field errors map back onto the
// same inline channel, and everything else becomes a transient notification.
package controller

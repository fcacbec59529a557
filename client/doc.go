// Package client is a typed REST client for the library management API.
//
// Every call takes a context and returns either decoded records or a typed
// error. The error taxonomy mirrors what the interface layer needs to decide:
//
//   - *Error with Fields: server rejected specific inputs, map messages back
//     onto the matching form fields
//   - *Error without Fields: general server failure, show Message (or a
//     fallback) as a notification
//   - anything wrapping ErrConnection: transport or decode failure, show the
//     generic connection message
package client

// Package notify shows transient, auto-expiring alerts on a page surface.
//
// Alerts stack and each one dismisses itself after a TTL (5 seconds by
// default). The emitter also broadcasts every alert over an in-process hub
// so other layers can observe the stream:
//
//	emitter := notify.New(presenter)
//	defer emitter.Close()
//
//	emitter.Success("Usuario creado exitosamente")
//
//	sub := emitter.Subscribe(ctx)
//	for msg := range sub.Receive(ctx) {
//	    log.Printf("alert: %s %s", msg.Data.Level, msg.Data.Message)
//	}
//
// The historical page removed the newest alert when any timer fired, which
// dismisses the wrong alert when several overlap within the TTL window.
// WithLegacyDismiss preserves that behavior for faithful ports; the default
// removes each alert by its own id.
package notify

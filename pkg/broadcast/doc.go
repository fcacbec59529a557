// Package broadcast provides a generic publish/subscribe primitive for
// fan-out of typed messages to multiple subscribers.
//
// The in-memory implementation favors liveness over delivery guarantees:
// a slow subscriber has messages dropped rather than stalling the publisher.
//
//	hub := broadcast.NewMemoryBroadcaster[string](16)
//	sub := hub.Subscribe(ctx)
//	defer sub.Close()
//
//	go hub.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
//	for msg := range sub.Receive(ctx) {
//	    fmt.Println(msg.Data)
//	}
package broadcast

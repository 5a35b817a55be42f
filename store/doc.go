// Package store holds the storefront's client-side state.
//
// Each resource (auth, cart, products, orders, theme) lives in its own
// store built on Store, a value container that notifies subscribers
// synchronously after every change. Auth, cart and theme mirror their
// state into durable storage so it survives restarts:
//
//	cart := store.NewCartStore(st, log)
//	unsubscribe := cart.Subscribe(func(s store.CartState) {
//		fmt.Println(len(s.Items), s.Total)
//	})
//	defer unsubscribe()
//	_ = cart.AddItem(product, 2)
package store

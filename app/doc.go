// Package app assembles a storefront client from configuration and runs
// the store actions: each action updates a store, calls the API through
// the service layer, and writes the outcome back into the stores.
//
//	cfg, _ := app.Load("")
//	a, err := app.New(ctx, cfg)
//	if err != nil { ... }
//	defer a.Close(ctx)
//	if err := a.Login(ctx, email, password); err != nil { ... }
package app

// Package fakeapi is an in-memory storefront REST API for tests.
//
// It serves the same routes as the real API under /api, issues HS256 JWTs
// on register and login, and requires a bearer token for cart and order
// routes:
//
//	api := fakeapi.Start(t)
//	p := api.SeedProduct(model.Product{Name: "Lamp", Price: 20})
//	client, _ := httpclient.New(httpclient.Config{BaseURL: api.BaseURL()})
package fakeapi

// Package service maps each storefront REST action onto the HTTP client.
//
// Functions assemble paths and query strings, validate payload shape
// before dispatch, and return the client's typed APIResponse unchanged.
// A payload that fails validation yields a 400 response without a
// network call.
package service

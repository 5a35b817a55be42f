// Package model holds the storefront API's resource shapes. JSON field
// names match the REST API (camelCase).
package model

// Package server assembles the filesystem server: sandbox, operations,
// middleware chain and routes. It owns the http.Server lifecycle.
package server

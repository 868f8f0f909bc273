// Package http exposes the sandboxed filesystem operations as a JSON API.
//
// Every operation is a POST with a JSON body naming the target path. Paths
// are resolved against the allowed roots before anything touches the disk.
// Failures are reported with a status derived from their kind:
//
//	invalid, wrong_type, decode_error  400
//	denied                             403
//	not_found                          404
//	directory_not_empty                409
//	too_large                          413
//	io_error                           500
//
// and a body of the form {"detail": "...", "kind": "..."}.
package http

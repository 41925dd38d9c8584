// Package grocery is a client for the grocery inventory REST backend. The
// backend exposes four endpoints below a fixed base URL:
//
//	GET    /getdata      -> {"result": [item, ...]}
//	POST   /postdata     item with a client generated id
//	PUT    /update/{id}  full replacement of the item
//	DELETE /delete/{id}
//
// Responses to writes are treated as opaque success signals. The Client wraps
// a Backend so tests and offline runs can swap the HTTP transport for the
// in-memory implementation in package mock.
package grocery

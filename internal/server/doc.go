// Package server provides HTTP routing, middleware, and the proxy handlers
// fronting the shelf API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally; handlers
// filter methods themselves.
//
// # Proxy Handlers
//
// [CompleteHandler] exposes the gallery's read API: a liveness probe at
// /api/ and the per-category, per-year completed shelves at
// /api/complete/{category}/{year}. [NewProxyRouter] wires the handler with
// request logging and the allow-all CORS policy the original backend used.
package server

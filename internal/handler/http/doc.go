// Package http serves the chama document API: per-collection queries by
// updated_after, signed document uploads, and the public version and
// collection listings. Middleware handles device tokens, trace ids, access
// logs, gzip and body signatures before a request reaches the services.
package http

// Package requestid assigns every inbound request a correlation id.
//
// An incoming X-Request-ID header is honored when it looks sane,
// otherwise a fresh uuid is generated. The id is echoed on the
// response and exposed through the context for logging.
package requestid

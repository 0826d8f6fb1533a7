// Package pg manages the PostgreSQL connection pool and schema
// migrations for the identity service. Connection setup retries with
// linear backoff so restarts during database failover do not kill the
// process immediately.
package pg

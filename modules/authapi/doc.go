// Package authapi is the HTTP boundary of the identity service.
//
// It validates request payloads, calls into svc/auth and svc/user, and
// translates domain errors to HTTP statuses. Status mapping happens
// only here; the services below know nothing about HTTP.
package authapi

// Package auth implements the authentication flows of the identity
// core: password login, registration, signed bearer session tokens with
// a short-lived identity cache, the email-verification one-time-code
// lifecycle, and reconciliation of Google sign-ins against existing
// accounts.
//
// The package depends on svc/user for persistence and on a Notifier
// collaborator for outbound email; both are supplied at construction so
// every flow is testable against in-memory fakes.
package auth

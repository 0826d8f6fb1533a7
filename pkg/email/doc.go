// Package email delivers transactional email for the identity service.
//
// EmailSender is the transport abstraction: Postmark in production,
// DevSender (files on disk) for local development. Notifier sits on top
// and renders the verification-code and welcome messages the auth flows
// dispatch.
package email

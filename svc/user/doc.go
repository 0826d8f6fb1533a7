// Package user is the credential store of the identity core: the single
// source of truth for user records, password hashes, linked Google
// identities and email-verification state.
//
// Reads come in two projections. The default projection excludes the
// password hash and the verification-code fields so generic list/find
// paths can never leak secrets; the WithSecrets variants exist only for
// the call sites that genuinely need them (password login, OTP checks).
//
// Deleting a user is a soft delete: the record stays, Active flips to
// false, and nothing resurrects it.
package user

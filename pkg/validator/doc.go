// Package validator provides explicit, rule-based validation of boundary
// input. Rules are plain values combined with Apply, so every handler
// states exactly what it checks before the core services are called:
//
//	if err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.StrongPassword("password", req.Password, validator.DefaultPasswordStrength),
//	); err != nil {
//		// err is a ValidationErrors listing every failed field
//	}
package validator

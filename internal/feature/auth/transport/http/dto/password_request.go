package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// EmailRequest is the body of POST /password (reset request phase).
type EmailRequest struct {
	Email string `json:"email"`
}

// Validate runs the email schema.
func (r EmailRequest) Validate() error {
	return validation.Validate(r.Email,
		validation.Required.Error("Email is a required field"),
		is.Email.Error("Email must be valid"),
	)
}

// PasswordRequest is the body of PATCH /password/:token (reset confirm
// phase). The password/confirmation match is a workflow rule, not a schema
// rule, so both fields only get the shape checks here.
type PasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs the new-password schema.
func (r PasswordRequest) Validate() error {
	if err := validation.Validate(r.Password,
		validation.Required.Error("Password is a required field"),
		validation.RuneLength(4, 8).Error("Invalid password"),
	); err != nil {
		return err
	}
	return validation.Validate(r.ConfirmPassword,
		validation.Required.Error("Confirm password is a required field"),
	)
}

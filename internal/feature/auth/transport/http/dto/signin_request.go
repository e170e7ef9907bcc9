package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// SigninRequest is the body of POST /signin.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate runs the signin schema.
func (r SigninRequest) Validate() error {
	if err := validation.Validate(r.Username,
		validation.Required.Error("Username is a required field"),
		validation.RuneLength(4, 8).Error("Invalid username"),
	); err != nil {
		return err
	}
	return validation.Validate(r.Password,
		validation.Required.Error("Password is a required field"),
		validation.RuneLength(4, 8).Error("Invalid password"),
	)
}

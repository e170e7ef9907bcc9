// Package dto defines the request bodies for the auth feature's HTTP
// transport, each carrying its own validation schema. Schemas check fields
// in declaration order and stop at the first violation so the response
// message always names the offending field.
package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AvatarColor string `json:"avatarColor"`
	AvatarImage string `json:"avatarImage"`
}

// Validate runs the signup schema.
func (r SignupRequest) Validate() error {
	if err := validation.Validate(r.Username,
		validation.Required.Error("Username is a required field"),
		validation.RuneLength(4, 8).Error("Invalid username"),
	); err != nil {
		return err
	}
	if err := validation.Validate(r.Password,
		validation.Required.Error("Password is a required field"),
		validation.RuneLength(4, 8).Error("Invalid password"),
	); err != nil {
		return err
	}
	if err := validation.Validate(r.Email,
		validation.Required.Error("Email is a required field"),
		is.Email.Error("Email must be valid"),
	); err != nil {
		return err
	}
	if err := validation.Validate(r.AvatarColor,
		validation.Required.Error("Avatar color is required"),
	); err != nil {
		return err
	}
	return validation.Validate(r.AvatarImage,
		validation.Required.Error("Avatar image is required"),
	)
}

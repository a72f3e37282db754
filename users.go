package shoptaboard

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UsersService manages the shopper's own account. Profile edits never patch
// the session's user in place: after a successful update the identity is
// re-fetched and replaced wholesale.
type UsersService struct {
	client *Client
}

// UpdateProfileRequest is the input for UpdateProfile.
type UpdateProfileRequest struct {
	Firstname string `json:"firstname" validate:"min=2"`
	Lastname  string `json:"lastname" validate:"min=2"`
	Email     string `json:"email" validate:"required,contains=@"`
}

// UpdateProfile updates the shopper's name and email, then forces a full
// identity reload in the session.
func (s *UsersService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	if err := s.validateUpdateProfile(&req); err != nil {
		return nil, err
	}

	token, err := s.client.accessToken()
	if err != nil {
		return nil, err
	}

	if err := s.client.patch(ctx, "/users/me", token, req, nil); err != nil {
		return nil, err
	}

	return s.client.Session.reloadUser(ctx)
}

// validateUpdateProfile normalizes and validates profile input without any
// I/O.
func (s *UsersService) validateUpdateProfile(req *UpdateProfileRequest) error {
	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)

	err := s.client.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("", "invalid profile data")
	}

	switch fe := fieldErrs[0]; fe.StructField() {
	case "Firstname":
		return newValidationError("firstname", "firstname must be at least 2 characters")
	case "Lastname":
		return newValidationError("lastname", "lastname must be at least 2 characters")
	case "Email":
		return newValidationError("email", "invalid email address")
	default:
		return newValidationError(strings.ToLower(fe.StructField()), fe.Error())
	}
}

// DeleteAccount deletes the shopper's account, then applies local sign-out
// semantics: tokens cleared, session anonymous.
func (s *UsersService) DeleteAccount(ctx context.Context) error {
	token, err := s.client.accessToken()
	if err != nil {
		return err
	}

	if err := s.client.delete(ctx, "/users/me", token, nil); err != nil {
		return err
	}

	_ = s.client.tokens.Clear()
	s.client.Session.setAnonymous()
	return nil
}

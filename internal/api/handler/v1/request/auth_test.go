package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "ada@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password1",
		Name:            "Ada Lovelace",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{"valid", func(r *SignupRequest) {}, false},
		{"missing email", func(r *SignupRequest) { r.Email = "" }, true},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, true},
		{"password too short", func(r *SignupRequest) { r.Password = "Pass1"; r.ConfirmPassword = "Pass1" }, true},
		{"password without a digit", func(r *SignupRequest) { r.Password = "Passwords"; r.ConfirmPassword = "Passwords" }, true},
		{"password without a letter", func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }, true},
		{"confirm mismatch", func(r *SignupRequest) { r.ConfirmPassword = "Password2" }, true},
		{"missing name", func(r *SignupRequest) { r.Name = "" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "ada@example.com", Password: "Password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "Password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ada@example.com", Password: ""}).Validate())
}

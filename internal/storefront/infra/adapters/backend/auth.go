package backend

import (
	"context"
	"net/http"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

type profilePatchRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

func (c *Client) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResult, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register/", registerRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: out.Token, User: out.User}, nil
}

func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResult, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login/", loginRequest{
		Email:    req.Email,
		Password: req.Password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: out.Token, User: out.User}, nil
}

func (c *Client) Profile(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (*entity.User, error) {
	var out entity.User
	err := c.do(ctx, http.MethodPatch, "/auth/profile/", profilePatchRequest{
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
		Phone:     patch.Phone,
		Address:   patch.Address,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

package api

import (
	"context"
	"net/http"

	"airide/internal/models"
)

// VerifyResult is the answer to a code verification. User is set for
// existing users only. Token is the account token for an existing user, or
// for a new phone the short-lived token RegisterUser needs.
type VerifyResult struct {
	IsNewUser bool         `json:"isNewUser"`
	User      *models.User `json:"user,omitempty"`
	Token     string       `json:"-"`
}

type RegisterUserRequest struct {
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
	Language string `json:"language"`
	// VerificationToken is the token VerifyCode returned for the phone. It
	// is sent instead of the client's token source.
	VerificationToken string `json:"-"`
}

// SendCode asks the backend to issue a verification code for phone.
func (c *Client) SendCode(ctx context.Context, phone string) error {
	_, err := c.do(ctx, call{
		op:     "Send code",
		method: http.MethodPost,
		path:   "/auth/send-code",
		body:   map[string]string{"phone": phone},
	})
	return err
}

func (c *Client) VerifyCode(ctx context.Context, phone, code string) (*VerifyResult, error) {
	var out VerifyResult
	resp, err := c.do(ctx, call{
		op:     "Verify code",
		method: http.MethodPost,
		path:   "/auth/verify-code",
		body:   map[string]string{"phone": phone, "code": code},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	out.Token = resp.Header().Get(TokenHeader)
	return &out, nil
}

// RegisterUser creates the account for a verified phone and returns it with
// its token.
func (c *Client) RegisterUser(ctx context.Context, in RegisterUserRequest) (*models.User, string, error) {
	var out models.User
	resp, err := c.do(ctx, call{
		op:     "Register",
		method: http.MethodPost,
		path:   "/auth/register",
		body:   in,
		out:    &out,
		token:  in.VerificationToken,
	})
	if err != nil {
		return nil, "", err
	}
	return &out, resp.Header().Get(TokenHeader), nil
}

func (c *Client) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var out models.User
	_, err := c.do(ctx, call{
		op:     "Fetch user",
		method: http.MethodGet,
		path:   "/auth/user/{phone}",
		params: map[string]string{"phone": phone},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if _, err := c.do(ctx, call{op: "Fetch profile", method: http.MethodGet, path: "/auth/me", out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

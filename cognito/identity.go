// Package cognito wraps the managed identity provider. Account lifecycle
// (sign up, confirmation, login, password reset) is delegated entirely;
// nothing here stores credentials.
package cognito

import "context"

// LoginResult carries the token set issued on a successful login.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IdToken      string `json:"idToken"`
	ExpiresIn    int32  `json:"expiresIn"`
}

// IdentityService is the consumed surface of the identity provider. Pool
// and app client ids are passed per call because handlers resolve them from
// the environment on every request.
type IdentityService interface {
	SignUp(ctx context.Context, clientId, email, password string) (string, error)
	ConfirmSignUp(ctx context.Context, clientId, email, code string) error
	AdminGetUserSub(ctx context.Context, userPoolId, email string) (string, error)
	ForgotPassword(ctx context.Context, clientId, email string) error
	ConfirmForgotPassword(ctx context.Context, clientId, email, code, newPassword string) error
	Login(ctx context.Context, clientId, login, password string) (*LoginResult, error)
	// GetUserSub resolves an access token to the subject id, used by the
	// local gateway's auth middleware.
	GetUserSub(ctx context.Context, accessToken string) (string, error)
}

package cognito

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// FakeIdentityService records every identity provider call, so tests can
// assert that validation failures never reach the provider.
type FakeIdentityService struct {
	mu sync.Mutex

	// Calls lists the method names invoked, in order.
	Calls []string
	// Subs maps email to the sub the fake hands out.
	Subs map[string]string
	// Tokens maps access token to sub.
	Tokens map[string]string
	// Err, when set, is returned by every call after recording it.
	Err error
}

func NewFakeIdentityService() *FakeIdentityService {
	return &FakeIdentityService{
		Subs:   map[string]string{},
		Tokens: map[string]string{},
	}
}

func (s *FakeIdentityService) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, call)
}

func (s *FakeIdentityService) SignUp(ctx context.Context, clientId, email, password string) (string, error) {
	s.record("SignUp")
	if s.Err != nil {
		return "", s.Err
	}
	sub, ok := s.Subs[email]
	if !ok {
		sub = "sub-" + email
		s.Subs[email] = sub
	}
	return sub, nil
}

func (s *FakeIdentityService) ConfirmSignUp(ctx context.Context, clientId, email, code string) error {
	s.record("ConfirmSignUp")
	return s.Err
}

func (s *FakeIdentityService) AdminGetUserSub(ctx context.Context, userPoolId, email string) (string, error) {
	s.record("AdminGetUserSub")
	if s.Err != nil {
		return "", s.Err
	}
	if sub, ok := s.Subs[email]; ok {
		return sub, nil
	}
	return "", errors.New("fake identity: unknown email")
}

func (s *FakeIdentityService) ForgotPassword(ctx context.Context, clientId, email string) error {
	s.record("ForgotPassword")
	return s.Err
}

func (s *FakeIdentityService) ConfirmForgotPassword(ctx context.Context, clientId, email, code, newPassword string) error {
	s.record("ConfirmForgotPassword")
	return s.Err
}

func (s *FakeIdentityService) Login(ctx context.Context, clientId, login, password string) (*LoginResult, error) {
	s.record("Login")
	if s.Err != nil {
		return nil, s.Err
	}
	return &LoginResult{
		AccessToken:  "access-" + login,
		RefreshToken: "refresh-" + login,
		IdToken:      "id-" + login,
		ExpiresIn:    3600,
	}, nil
}

func (s *FakeIdentityService) GetUserSub(ctx context.Context, accessToken string) (string, error) {
	s.record("GetUserSub")
	if s.Err != nil {
		return "", s.Err
	}
	if sub, ok := s.Tokens[accessToken]; ok {
		return sub, nil
	}
	return "", errors.New("fake identity: unknown token")
}

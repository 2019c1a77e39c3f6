package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/pkg/errors"
)

// CognitoService is the IdentityService backed by a real Cognito user pool.
type CognitoService struct {
	client *cognitoidentityprovider.Client
}

// NewCognitoService creates a client with the default aws config chain
// (env credentials on Lambda, ~/.aws/config elsewhere).
func NewCognitoService(ctx context.Context) (*CognitoService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fail to load aws config")
	}
	return &CognitoService{client: cognitoidentityprovider.NewFromConfig(cfg)}, nil
}

func (s *CognitoService) SignUp(ctx context.Context, clientId, email, password string) (string, error) {
	out, err := s.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(clientId),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "cognito sign up failed")
	}
	return aws.ToString(out.UserSub), nil
}

func (s *CognitoService) ConfirmSignUp(ctx context.Context, clientId, email, code string) error {
	_, err := s.client.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(clientId),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return errors.Wrap(err, "cognito confirm sign up failed")
}

// AdminGetUserSub looks the subject id up by email. Needed at confirmation
// time, when the caller is not authenticated yet.
func (s *CognitoService) AdminGetUserSub(ctx context.Context, userPoolId, email string) (string, error) {
	out, err := s.client.AdminGetUser(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(userPoolId),
		Username:   aws.String(email),
	})
	if err != nil {
		return "", errors.Wrap(err, "cognito admin get user failed")
	}
	for _, attr := range out.UserAttributes {
		if aws.ToString(attr.Name) == "sub" {
			return aws.ToString(attr.Value), nil
		}
	}
	return "", errors.New("cognito user has no sub attribute")
}

func (s *CognitoService) ForgotPassword(ctx context.Context, clientId, email string) error {
	_, err := s.client.ForgotPassword(ctx, &cognitoidentityprovider.ForgotPasswordInput{
		ClientId: aws.String(clientId),
		Username: aws.String(email),
	})
	return errors.Wrap(err, "cognito forgot password failed")
}

func (s *CognitoService) ConfirmForgotPassword(ctx context.Context, clientId, email, code, newPassword string) error {
	_, err := s.client.ConfirmForgotPassword(ctx, &cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(clientId),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	return errors.Wrap(err, "cognito confirm forgot password failed")
}

func (s *CognitoService) Login(ctx context.Context, clientId, login, password string) (*LoginResult, error) {
	out, err := s.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(clientId),
		AuthParameters: map[string]string{
			"USERNAME": login,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "cognito login failed")
	}
	if out.AuthenticationResult == nil {
		// Challenge flows (MFA, forced password change) are not part of this
		// API surface.
		return nil, errors.New("cognito login requires an unsupported challenge")
	}
	return &LoginResult{
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
		IdToken:      aws.ToString(out.AuthenticationResult.IdToken),
		ExpiresIn:    out.AuthenticationResult.ExpiresIn,
	}, nil
}

func (s *CognitoService) GetUserSub(ctx context.Context, accessToken string) (string, error) {
	user, err := s.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return "", errors.Wrap(err, "cognito get user failed")
	}
	for _, attr := range user.UserAttributes {
		if aws.ToString(attr.Name) == "sub" {
			return aws.ToString(attr.Value), nil
		}
	}
	// Pools configured with email alias sign-in report the sub as Username.
	return aws.ToString(user.Username), nil
}

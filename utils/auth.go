package utils

import (
	"github.com/aws/aws-lambda-go/events"
)

// GetUserIdFromEvent extracts the caller's Cognito subject id from the API
// Gateway authorizer context. Returns "" when the event carries no
// authenticated principal.
func GetUserIdFromEvent(event events.APIGatewayProxyRequest) string {
	authorizer := event.RequestContext.Authorizer
	if authorizer == nil {
		return ""
	}

	// Cognito user pool authorizers nest the token payload under "claims".
	if claims, ok := authorizer["claims"].(map[string]interface{}); ok {
		if sub, ok := claims["sub"].(string); ok {
			return sub
		}
	}

	// The local gateway injects the resolved sub directly.
	if sub, ok := authorizer["sub"].(string); ok {
		return sub
	}
	return ""
}

package utils

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// DefaultResponseBody is the uniform body of every handler response:
// a human readable message and/or a data payload, plus a stable error code
// when the request failed.
type DefaultResponseBody struct {
	Code    ErrorKind   `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

var defaultHeaders = map[string]string{
	"Content-Type": "application/json",
}

func formatResponse(statusCode int, body DefaultResponseBody) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		// Marshaling the envelope itself cannot reasonably fail; keep the
		// contract anyway instead of returning a broken body.
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    defaultHeaders,
			Body:       `{"code":"internal"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    defaultHeaders,
		Body:       string(raw),
	}
}

// FormatDefaultResponse formats a message-only envelope. Error statuses get
// a generic code so clients always receive a machine readable kind.
func FormatDefaultResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body := DefaultResponseBody{Message: message}
	if statusCode >= http.StatusBadRequest {
		if statusCode == http.StatusBadRequest {
			body.Code = ErrorKindInvalidInput
		} else {
			body.Code = ErrorKindInternal
		}
	}
	return formatResponse(statusCode, body)
}

// FormatDataResponse formats a successful envelope carrying a payload.
func FormatDataResponse(data interface{}) events.APIGatewayProxyResponse {
	return formatResponse(http.StatusOK, DefaultResponseBody{Data: data})
}

// FormatApiError formats a failed envelope from a classified error.
func FormatApiError(apiErr *ApiError) events.APIGatewayProxyResponse {
	return formatResponse(apiErr.StatusCode(), DefaultResponseBody{
		Code:    apiErr.Kind,
		Message: apiErr.Message,
	})
}

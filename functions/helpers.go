package functions

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/utils"
	Logger "github.com/vamoslabs/redesocial/utils/log"
)

// formatHandlerError maps a domain error onto the response envelope.
// Classified errors keep their own status and message; anything else is
// logged and hidden behind the localized fallback, the original error never
// reaches the caller.
func formatHandlerError(err error, fallback string) events.APIGatewayProxyResponse {
	if apiErr := utils.AsApiError(err); apiErr != nil {
		if apiErr.Err != nil {
			Logger.Log.Error(apiErr.Message, ": ", apiErr.Err)
		}
		return utils.FormatApiError(apiErr)
	}
	Logger.Log.Error(fallback, ": ", err)
	return utils.FormatDefaultResponse(http.StatusInternalServerError, fallback)
}

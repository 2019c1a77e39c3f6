package utils

import (
	"encoding/base64"
	"io"
	"io/ioutil"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// FileData is one uploaded file decoded from a multipart form.
type FileData struct {
	Filename    string
	ContentType string
	Content     []byte
}

// FormData holds the decoded fields of a multipart form: plain text values
// keyed by field name, and uploaded files keyed by field name.
type FormData struct {
	Values map[string]string
	Files  map[string]*FileData
}

// ParseMultipartForm decodes the multipart body of an API Gateway proxy
// event. API Gateway delivers binary bodies base64 encoded, so both raw and
// encoded bodies are accepted.
func ParseMultipartForm(event events.APIGatewayProxyRequest) (*FormData, error) {
	contentType := headerValue(event.Headers, "Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, errors.New("request body is not multipart form data")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return nil, errors.New("multipart body without boundary")
	}

	var body io.Reader = strings.NewReader(event.Body)
	if event.IsBase64Encoded {
		body = base64.NewDecoder(base64.StdEncoding, strings.NewReader(event.Body))
	}

	form := &FormData{
		Values: map[string]string{},
		Files:  map[string]*FileData{},
	}
	reader := multipart.NewReader(body, boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "malformed multipart body")
		}
		content, err := ioutil.ReadAll(part)
		if err != nil {
			return nil, errors.Wrap(err, "fail to read multipart part")
		}
		if part.FileName() != "" {
			form.Files[part.FormName()] = &FileData{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Content:     content,
			}
		} else {
			form.Values[part.FormName()] = string(content)
		}
	}
	return form, nil
}

// headerValue looks a header up case-insensitively. API Gateway does not
// normalize header casing across invocation paths.
func headerValue(headers map[string]string, name string) string {
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}

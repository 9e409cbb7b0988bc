package test_utils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type TestResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	ExpectedStatus int
}

type MultipartFile struct {
	FieldName string
	FileName  string
	Content   []byte
}

type MultipartOptions struct {
	Method         string
	URL            string
	AuthToken      string
	Fields         map[string]string
	Files          []MultipartFile
	ExpectedStatus int
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	responseStruct any,
) *TestResponse {
	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshal(t, resp, responseStruct)
	return resp
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	responseStruct any,
) *TestResponse {
	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, resp, responseStruct)
	return resp
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

// MakeRequest sends a JSON request. A string body is sent verbatim so tests
// can exercise malformed payloads.
func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	var requestBody io.Reader = http.NoBody

	if options.Body != nil {
		switch body := options.Body.(type) {
		case string:
			requestBody = bytes.NewBufferString(body)
		case []byte:
			requestBody = bytes.NewBuffer(body)
		default:
			bodyJSON, err := json.Marshal(body)
			require.NoError(t, err, "failed to marshal request body")
			requestBody = bytes.NewBuffer(bodyJSON)
		}
	}

	req, err := http.NewRequest(options.Method, options.URL, requestBody)
	require.NoError(t, err, "failed to create request")

	if options.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return serve(t, router, req, options.AuthToken, options.ExpectedStatus)
}

func MakeMultipartRequest(
	t *testing.T,
	router *gin.Engine,
	options MultipartOptions,
) *TestResponse {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range options.Fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	for _, file := range options.Files {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		require.NoError(t, err)
		_, err = part.Write(file.Content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req, err := http.NewRequest(options.Method, options.URL, body)
	require.NoError(t, err, "failed to create request")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return serve(t, router, req, options.AuthToken, options.ExpectedStatus)
}

func MakeMultipartRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	options MultipartOptions,
	responseStruct any,
) *TestResponse {
	resp := MakeMultipartRequest(t, router, options)
	unmarshal(t, resp, responseStruct)
	return resp
}

func serve(
	t *testing.T,
	router *gin.Engine,
	req *http.Request,
	authToken string,
	expectedStatus int,
) *TestResponse {
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	response := &TestResponse{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
	}

	if expectedStatus != 0 {
		require.Equal(
			t,
			expectedStatus,
			w.Code,
			"unexpected status code, body: %s",
			w.Body.String(),
		)
	}

	return response
}

func unmarshal(t *testing.T, resp *TestResponse, responseStruct any) {
	if responseStruct == nil {
		return
	}

	err := json.Unmarshal(resp.Body, responseStruct)
	require.NoError(t, err, "failed to unmarshal response body: %s", string(resp.Body))
}

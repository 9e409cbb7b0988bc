package minio_image_host

import (
	"errors"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		expected string
	}{
		{
			name:     "https endpoint",
			endpoint: "https://minio.example.com",
			expected: "https://minio.example.com/workspaces/workspaces/a.png",
		},
		{
			name:     "http endpoint with port",
			endpoint: "http://localhost:9000",
			expected: "http://localhost:9000/workspaces/workspaces/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := url.Parse(tt.endpoint)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, buildObjectURL(endpoint, "workspaces", "workspaces/a.png"))
		})
	}
}

func Test_IsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("connection refused")))
}

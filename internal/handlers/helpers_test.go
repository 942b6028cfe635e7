package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"spotfolio/internal/model"

	"github.com/stretchr/testify/require"
)

// withSession seeds the request context the way SessionAuthMiddleware would
// after a successful token verification.
func withSession(identityID, accessToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), model.IdentityIDKey, identityID)
			ctx = context.WithValue(ctx, model.AccessTokenKey, accessToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// multipartProfileForm builds a profile form submission. avatarName == ""
// omits the file part.
func multipartProfileForm(t *testing.T, fields map[string]string, avatarName string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if avatarName != "" {
		part, err := writer.CreateFormFile("avatar", avatarName)
		require.NoError(t, err)
		_, err = io.WriteString(part, "fake image bytes")
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func jsonDecode(body io.Reader, dst any) error {
	return json.NewDecoder(body).Decode(dst)
}

// decodeErrorBody unpacks the standard error envelope.
func decodeErrorBody(t *testing.T, body io.Reader) model.APIErrorResponse {
	t.Helper()

	var resp model.APIErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

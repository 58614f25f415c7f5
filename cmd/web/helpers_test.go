package main

import (
	"github.com/intinc/platformexplorer/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	app := &application{logger: testhelpers.NewLogger(io.Discard)}

	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
	}{
		{name: "valid", body: `{"featureIdea":"Add dark mode"}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "malformed", body: `{"featureIdea":`, wantStatus: http.StatusBadRequest},
		{name: "trailing value", body: `{"featureIdea":"a"} {}`, wantStatus: http.StatusBadRequest},
		{
			name:       "too large",
			body:       `{"featureIdea":"` + strings.Repeat("x", maxBodyBytes) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/prd/generate", strings.NewReader(tt.body))
			var dst struct {
				FeatureIdea string `json:"featureIdea"`
			}
			require.Equal(t, tt.wantOK, app.decodeJSON(rr, r, &dst))
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/matrix?feature=speed", want: "/matrix?feature=speed"},
		{in: "", want: "/"},
		{in: "https://evil.example", want: "/"},
		{in: "//evil.example", want: "/"},
		{in: "/\\evil.example", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, localPath(tt.in, "/"))
		})
	}
}

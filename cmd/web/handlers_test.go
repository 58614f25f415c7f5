package main

import (
	"context"
	"github.com/PuerkitoBio/goquery"
	"github.com/alexedwards/scs/v2"
	"github.com/intinc/platformexplorer/internal/sqlite"
	"github.com/intinc/platformexplorer/internal/testhelpers"
	"github.com/intinc/platformexplorer/internal/webauthnhandler"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	sessionManager := scs.New()
	webAuthnHandler, err := webauthnhandler.New("localhost", []string{"http://localhost"}, logger, sessionManager, db)
	require.NoError(t, err)

	app, err := newApplication(logger, sessionManager, webAuthnHandler)
	require.NoError(t, err)
	return app
}

func TestSectionBoundary(t *testing.T) {
	app := newTestApplication(t)
	for i := range app.sections {
		if app.sections[i].name == "matrix" {
			app.sections[i].build = func(*http.Request) (any, error) {
				panic("matrix exploded")
			}
		}
	}
	handler := app.routes()

	tests := []struct {
		name      string
		hxRequest bool
	}{
		{name: "full page keeps the layout"},
		{name: "htmx request receives the region", hxRequest: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/matrix?feature=speed", nil)
			if tt.hxRequest {
				r.Header.Set("HX-Request", "true")
			}
			handler.ServeHTTP(rr, r)
			require.Equal(t, http.StatusOK, rr.Code)

			doc, err := goquery.NewDocumentFromReader(rr.Body)
			require.NoError(t, err)
			fallback := doc.Find("#region [data-testid=section-fallback]")
			require.Equal(t, 1, fallback.Length())
			require.Contains(t, fallback.Text(), "Something went wrong")
			retry, _ := fallback.Find("[data-testid=button-error-try-again]").Attr("hx-get")
			require.Equal(t, "/matrix?feature=speed", retry)
			reload, _ := fallback.Find("[data-testid=button-error-reload]").Attr("href")
			require.Equal(t, "/matrix", reload)

			require.Equal(t, !tt.hxRequest, doc.Find("nav.tabs").Length() == 1)
			if !tt.hxRequest {
				current, _ := doc.Find("nav.tabs [aria-current=page]").Attr("data-testid")
				require.Equal(t, "tab-matrix", current)
			}
		})
	}

	// The other sections are unaffected.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/strategy", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, rr.Body.String(), "section-fallback")
}

func TestScoreBand(t *testing.T) {
	tests := map[int]string{10: "excellent", 9: "excellent", 8: "strong", 7: "strong", 6: "moderate", 5: "moderate",
		4: "weak", 3: "weak", 2: "limited", 1: "limited"}
	for score, want := range tests {
		require.Equal(t, want, scoreBand(score), score)
	}
}

func TestTemplateFuncs(t *testing.T) {
	app := newTestApplication(t)
	funcs := app.templateFuncs()

	money, ok := funcs["money"].(func(float64) string)
	require.True(t, ok)
	require.Equal(t, "$3,937,500", money(3937500))
	require.Equal(t, "-$1,235", money(-1234.5))

	number, ok := funcs["number"].(func(float64) string)
	require.True(t, ok)
	require.Equal(t, "23,062", number(23062.4))
}

package main

import (
	"context"
	"fmt"
	"github.com/intinc/platformexplorer/internal/e2etest"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/logging"
	"github.com/intinc/platformexplorer/internal/models"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const (
	expectedPlatforms   = 16
	expectedPRDSections = 13
	// annualProductivityValue of models.DefaultROIInputs.
	expectedProductivityValue = 3937500
)

var errUnexpected = errors.NewSentinel("unexpected response")

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		_ = resp.Body.Close()
		return errors.Wrap(errUnexpected, "unexpected status",
			slog.Int("status", resp.StatusCode), slog.Int("want", want))
	}
	return nil
}

func TestHealth(ctx context.Context, client *e2etest.Client) error {
	resp, err := client.Get(ctx, "/api/healthy")
	if err != nil {
		return errors.Wrap(err, "get health")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return expectStatus(resp, http.StatusOK)
}

func TestPlatforms(ctx context.Context, client *e2etest.Client) error {
	resp, err := client.Get(ctx, "/api/platforms")
	if err != nil {
		return errors.Wrap(err, "get platforms")
	}
	if err = expectStatus(resp, http.StatusOK); err != nil {
		return err
	}
	var platforms []models.Platform
	if err = e2etest.DecodeJSON(resp, &platforms); err != nil {
		return err
	}
	if len(platforms) != expectedPlatforms {
		return errors.Wrap(errUnexpected, "platform count", slog.Int("count", len(platforms)))
	}
	return nil
}

func TestROI(ctx context.Context, client *e2etest.Client) error {
	resp, err := client.PostJSON(ctx, "/api/roi/calculate", models.DefaultROIInputs, nil)
	if err != nil {
		return errors.Wrap(err, "calculate ROI")
	}
	if err = expectStatus(resp, http.StatusOK); err != nil {
		return err
	}
	var results models.ROIResults
	if err = e2etest.DecodeJSON(resp, &results); err != nil {
		return err
	}
	if results.AnnualProductivityValue != expectedProductivityValue {
		return errors.Wrap(errUnexpected, "annual productivity value",
			slog.String("value", fmt.Sprint(results.AnnualProductivityValue)))
	}
	return nil
}

func TestPRD(ctx context.Context, client *e2etest.Client) error {
	body := map[string]string{"featureIdea": "Smoke test feature idea"}
	resp, err := client.PostJSON(ctx, "/api/prd/generate", body, nil)
	if err != nil {
		return errors.Wrap(err, "generate PRD")
	}
	if err = expectStatus(resp, http.StatusOK); err != nil {
		return err
	}
	var doc models.PRDDocument
	if err = e2etest.DecodeJSON(resp, &doc); err != nil {
		return err
	}
	if len(doc.Sections) != expectedPRDSections {
		return errors.Wrap(errUnexpected, "PRD section count", slog.Int("count", len(doc.Sections)))
	}
	return nil
}

func TestAuth(ctx context.Context, client *e2etest.Client) error {
	var err error
	if _, err = client.Register(ctx); err != nil {
		return errors.Wrap(err, "register user")
	}
	if _, err = client.Logout(ctx); err != nil {
		return errors.Wrap(err, "logout user")
	}
	if _, err = client.Login(ctx); err != nil {
		return errors.Wrap(err, "login user")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url, hostname, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}

	checks := []struct {
		name string
		run  func(context.Context, *e2etest.Client) error
	}{
		{name: "health", run: TestHealth},
		{name: "platforms", run: TestPlatforms},
		{name: "roi", run: TestROI},
		{name: "prd", run: TestPRD},
		{name: "auth", run: TestAuth},
	}
	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
		err = check.run(checkCtx, client)
		cancel()
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "smoke check failed", slog.String("check", check.name),
				errors.SlogError(err))
			os.Exit(1)
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "smoke check passed", slog.String("check", check.name))
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}

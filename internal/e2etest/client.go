package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/descope/virtualwebauthn"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/webauthnhandler"
	"github.com/justinas/nosurf"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

const (
	registrationStartPath  = "/api/registration/start"
	registrationFinishPath = "/api/registration/finish"
	loginStartPath         = "/api/login/start"
	loginFinishPath        = "/api/login/finish"
	logoutPath             = "/api/logout"

	readyTimeout  = time.Second
	readyInterval = 100 * time.Millisecond
)

var ErrUnexpectedStatus = errors.NewSentinel("unexpected status code")

// Client talks to a running server the way a browser would: it keeps cookies, submits forms with their CSRF token
// and completes passkey ceremonies with a virtual authenticator.
type Client struct {
	client        *http.Client
	url           string
	rp            virtualwebauthn.RelyingParty
	authenticator virtualwebauthn.Authenticator
}

// NewClient creates a Webauthn-aware HTTP client.
//
// rpID and rpOrigin should correspond to the Webauthn setup on the server.
func NewClient(url, rpID, rpOrigin string) (*Client, error) {
	jar, err := newInsecureCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	return &Client{
		client:        &http.Client{Jar: jar},
		url:           url,
		rp:            virtualwebauthn.RelyingParty{Name: webauthnhandler.RPDisplayName, ID: rpID, Origin: rpOrigin},
		authenticator: virtualwebauthn.NewAuthenticator(),
	}, nil
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		return errors.Wrap(ErrUnexpectedStatus, "check status",
			slog.Int("status", resp.StatusCode), slog.Int("want", want))
	}
	return nil
}

// do sends a request to urlPath. header may be nil. The caller must close the response body.
func (c *Client) do(
	ctx context.Context,
	method, urlPath string,
	header http.Header,
	body io.Reader,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request", slog.String("path", urlPath))
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request", slog.String("method", method), slog.String("path", urlPath))
	}
	return resp, nil
}

// WaitForReady polls urlPath until it responds with 200 OK, the context is done or a second has passed.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	deadline := time.Now().Add(readyTimeout)
	for {
		resp, err := c.do(ctx, http.MethodGet, urlPath, nil, nil)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return errors.New("timeout waiting for endpoint to be ready", slog.String("path", urlPath))
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		case <-time.After(readyInterval):
		}
	}
}

// Get fetches urlPath. The caller must close the response body.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, urlPath, nil, nil)
}

// GetDoc fetches urlPath and parses the HTML response, which must have status 200.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, err
	}
	return parseDocument(resp)
}

func parseDocument(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// Post posts body with contentType to urlPath. The caller must close the response body.
func (c *Client) Post(ctx context.Context, urlPath, contentType string, body io.Reader) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, urlPath, http.Header{"Content-Type": {contentType}}, body)
}

// PostJSON encodes body as JSON and posts it to urlPath. header is added to the request. The caller must close the
// response body.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any, header http.Header) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, errors.Wrap(err, "encode JSON body")
	}
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set("Content-Type", "application/json")
	return c.do(ctx, http.MethodPost, urlPath, h, &buf)
}

// DecodeJSON decodes the body of resp into v and closes it.
func DecodeJSON(resp *http.Response, v any) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode JSON body", slog.Int("status", resp.StatusCode))
	}
	return nil
}

// ceremony posts one step of a passkey ceremony and returns the response body.
func (c *Client) ceremony(ctx context.Context, urlPath, csrfToken, body string) (string, error) {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(nosurf.HeaderName, csrfToken)
	resp, err := c.do(ctx, http.MethodPost, urlPath, header, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err = expectStatus(resp, http.StatusOK); err != nil {
		return "", errors.Wrap(err, "ceremony step", slog.String("path", urlPath))
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read body")
	}
	return string(out), nil
}

// Register registers a new passkey with the server and returns the front page afterwards.
func (c *Client) Register(ctx context.Context) (*goquery.Document, error) {
	csrfToken, err := c.formCSRFToken(ctx, "/", registrationStartPath)
	if err != nil {
		return nil, err
	}

	options, err := c.ceremony(ctx, registrationStartPath, csrfToken, "")
	if err != nil {
		return nil, errors.Wrap(err, "start registration")
	}
	attOpts, err := virtualwebauthn.ParseAttestationOptions(options)
	if err != nil {
		return nil, errors.Wrap(err, "parse attestation options")
	}

	credential := virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2)
	attestation := virtualwebauthn.CreateAttestationResponse(c.rp, c.authenticator, credential, *attOpts)
	if _, err = c.ceremony(ctx, registrationFinishPath, csrfToken, attestation); err != nil {
		return nil, errors.Wrap(err, "finish registration")
	}

	c.authenticator.AddCredential(credential)
	// Discoverable login needs the user handle.
	c.authenticator.Options.UserHandle = []byte(attOpts.UserID)

	return c.GetDoc(ctx, "/")
}

// Login logs in with the passkey created by Register and returns the front page afterwards.
func (c *Client) Login(ctx context.Context) (*goquery.Document, error) {
	if len(c.authenticator.Credentials) == 0 {
		return nil, errors.New("no passkey registered")
	}
	csrfToken, err := c.formCSRFToken(ctx, "/", loginStartPath)
	if err != nil {
		return nil, err
	}

	options, err := c.ceremony(ctx, loginStartPath, csrfToken, "")
	if err != nil {
		return nil, errors.Wrap(err, "start login")
	}
	asOpts, err := virtualwebauthn.ParseAssertionOptions(options)
	if err != nil {
		return nil, errors.Wrap(err, "parse assertion options")
	}

	assertion := virtualwebauthn.CreateAssertionResponse(c.rp, c.authenticator, c.authenticator.Credentials[0], *asOpts)
	if _, err = c.ceremony(ctx, loginFinishPath, csrfToken, assertion); err != nil {
		return nil, errors.Wrap(err, "finish login")
	}

	return c.GetDoc(ctx, "/")
}

func (c *Client) Logout(ctx context.Context) (*goquery.Document, error) {
	return c.SubmitForm(ctx, "/", logoutPath, nil)
}

// formCSRFToken loads the page at pagePath and returns the CSRF token of its form posting to action.
func (c *Client) formCSRFToken(ctx context.Context, pagePath, action string) (string, error) {
	doc, err := c.GetDoc(ctx, pagePath)
	if err != nil {
		return "", errors.Wrap(err, "get form page", slog.String("path", pagePath))
	}
	token, ok := doc.Find(fmt.Sprintf("form[action='%s'] input[name=csrf_token]", action)).Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("action", action))
	}
	return token, nil
}

// SubmitForm submits the form posting to action on the page at pagePath and returns the response document, which
// must have status 200.
//
// values are sent along with the CSRF token extracted from the form.
func (c *Client) SubmitForm(
	ctx context.Context,
	pagePath string,
	action string,
	values neturl.Values,
) (*goquery.Document, error) {
	resp, err := c.PostForm(ctx, pagePath, action, values)
	if err != nil {
		return nil, err
	}
	return parseDocument(resp)
}

// PostForm is like SubmitForm but returns the response of any status. The caller must close the body.
func (c *Client) PostForm(
	ctx context.Context,
	pagePath string,
	action string,
	values neturl.Values,
) (*http.Response, error) {
	csrfToken, err := c.formCSRFToken(ctx, pagePath, action)
	if err != nil {
		return nil, err
	}
	form := neturl.Values{}
	for key, vs := range values {
		form[key] = append(form[key], vs...)
	}
	form.Set("csrf_token", csrfToken)
	return c.Post(ctx, action, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

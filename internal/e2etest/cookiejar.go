package e2etest

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// insecureCookieJar accepts Secure cookies over plain HTTP so that tests can run against http://localhost.
type insecureCookieJar struct {
	*cookiejar.Jar
}

func newInsecureCookieJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return insecureCookieJar{Jar: jar}, nil
}

func (j insecureCookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	for _, c := range cookies {
		c.Secure = false
	}
	j.Jar.SetCookies(u, cookies)
}

package insee

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/immo/date"
	"github.com/sirupsen/logrus"
)

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string
	log  logrus.FieldLogger
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key changes every day, so the local copy expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"method": resp.Request.Method,
		"host":   resp.Request.URL.Host,
		"path":   resp.Request.URL.Path,
		"status": resp.Status,
	}).Info("http request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		c.log.WithError(err).Warn("cache write (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
//
// DumpResponse buffers the body and replaces resp.Body, so the response can
// still be read by the caller.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o600)
}

// daily returns a client with a disk cache that expires every day.
func daily(log logrus.FieldLogger) *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: os.TempDir(), log: log}}
}

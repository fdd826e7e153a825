// Package ostemplate downloads precreated OS templates from a
// download.openvz.org-style directory index.
//
// The index is plain HTML, so listing it means walking the anchors of the
// page and keeping the ones that point at template tarballs.
package ostemplate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// DefaultBaseURL is the index of precreated templates published by the
// OpenVZ project.
const DefaultBaseURL = "https://download.openvz.org/template/precreated/"

// DefaultCacheDir is where vzctl looks for template tarballs.
const DefaultCacheDir = "/vz/template/cache"

const tarballSuffix = ".tar.gz"

type Client struct {
	// BaseURL is the directory index to read; DefaultBaseURL if empty.
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func (c *Client) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "github.com/stroxler/vzutil/pkg/ostemplate"
	}
}

type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s", e.Status)
}

// A Template is one downloadable entry of the index.
type Template struct {
	// Name is the tarball basename without the extension,
	// e.g. "centos-7-x86_64"; it is what `vzctl create --ostemplate`
	// takes.
	Name string
	// URL is the resolved download link.
	URL string
}

func (c Client) get(ctx context.Context, requestURL string) (_ *url.URL, _ io.ReadCloser, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q => %w", requestURL, err)
		}
	}()
	c.fillDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, nil, &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	}

	return resp.Request.URL, resp.Body, nil
}

func visitHTML(node *html.Node, fn func(*html.Node) error) error {
	if err := fn(node); err != nil {
		return err
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := visitHTML(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// List reads the directory index and returns the templates it links to,
// sorted by name.
func (c Client) List(ctx context.Context) (_ []Template, err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	c.fillDefaults()
	location, body, err := c.get(ctx, c.BaseURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		maybeSetErr(body.Close())
	}()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tmpls []Template
	if err := visitHTML(doc, func(node *html.Node) error {
		if node.Type != html.ElementNode || node.Data != "a" {
			return nil
		}
		for _, attr := range node.Attr {
			if attr.Namespace != "" || attr.Key != "href" {
				continue
			}
			href, err := location.Parse(attr.Val)
			if err != nil {
				return err
			}
			base := path.Base(href.Path)
			if !strings.HasSuffix(base, tarballSuffix) {
				continue
			}
			name := strings.TrimSuffix(base, tarballSuffix)
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			tmpls = append(tmpls, Template{
				Name: name,
				URL:  href.String(),
			})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(tmpls, func(i, j int) bool { return tmpls[i].Name < tmpls[j].Name })
	return tmpls, nil
}

// Fetch downloads the named template in to cacheDir (DefaultCacheDir if
// empty) and returns the path it wrote.  The download goes through a
// temporary file and a rename, so a partial download never lands under the
// final name.
func (c Client) Fetch(ctx context.Context, name, cacheDir string) (_ string, err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	c.fillDefaults()
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	filename := name + tarballSuffix

	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}
	requestURL, err := base.Parse(filename)
	if err != nil {
		return "", err
	}

	_, body, err := c.get(ctx, requestURL.String())
	if err != nil {
		return "", err
	}
	defer func() {
		maybeSetErr(body.Close())
	}()

	tmpfile, err := os.CreateTemp(cacheDir, "."+filename+".")
	if err != nil {
		return "", err
	}
	defer func() {
		if tmpfile != nil {
			_ = tmpfile.Close()
			maybeSetErr(os.Remove(tmpfile.Name()))
		}
	}()

	if _, err := io.Copy(tmpfile, body); err != nil {
		return "", err
	}
	if err := tmpfile.Close(); err != nil {
		return "", err
	}

	dest := filepath.Join(cacheDir, filename)
	if err := os.Rename(tmpfile.Name(), dest); err != nil {
		return "", err
	}
	tmpfile = nil
	return dest, nil
}

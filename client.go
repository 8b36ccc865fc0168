package vcloud

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/packethost/pkg/env"
	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// AuthHeader carries the session token on every authenticated request.
	AuthHeader = "x-vcloud-authorization"

	// Version is the API version negotiated via the Accept header.
	Version = "1.5"
)

// Mime is the versioned media type sent as the Accept header on every
// request.
var Mime = fmt.Sprintf("application/*+xml;version=%s", Version)

const (
	orgNetworkType = "application/vnd.vmware.vcloud.orgNetwork+xml"
	vdcType        = "application/vnd.vmware.vcloud.vdc+xml"
	vAppType       = "application/vnd.vmware.vcloud.vApp+xml"
)

// Client is a session-holding client for one vCloud API deployment. It owns
// two pieces of session state, the auth token and the root link index, both
// replaced wholesale on Login. A Client is not safe for concurrent use.
type Client struct {
	rootRaw string
	root    *url.URL
	http    *http.Client
	logger  *log.Logger
	token   string
	links   LinkIndex
}

// The Option type describes functions that operate on Client during New.
type Option func(*Client)

// Root sets the API root URL, overriding $VCLOUD_API_ROOT.
func Root(root string) Option {
	return func(c *Client) {
		c.rootRaw = root
	}
}

// Token seeds the session with a pre-existing auth token, overriding
// $VCLOUD_AUTH_TOKEN.
func Token(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// HTTPClient sets the underlying http client.
func HTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Logger will set the logger used to log non-error but exceptional things.
func Logger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = &l
	}
}

// New returns a client for the API rooted at $VCLOUD_API_ROOT (or the Root
// option). The token defaults to $VCLOUD_AUTH_TOKEN; if one is available
// and still probes as valid the root link index is fetched immediately,
// otherwise it stays unset until Login succeeds.
func New(ctx context.Context, options ...Option) (*Client, error) {
	c := &Client{
		token: env.Get("VCLOUD_AUTH_TOKEN"),
	}
	for _, opt := range options {
		opt(c)
	}

	raw := c.rootRaw
	if raw == "" {
		raw = env.Get("VCLOUD_API_ROOT")
	}
	if raw == "" {
		return nil, ErrNoAPIRoot
	}
	root, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse api root")
	}
	c.root = root

	if c.http == nil {
		c.http = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	if c.token != "" && c.LoggedIn(ctx) {
		links, err := c.fetchInitialLinks(ctx)
		if err != nil {
			return nil, err
		}
		c.links = links
	}

	if c.logger != nil {
		c.logger.With("root", c.root.String()).Info("created client")
	}
	return c, nil
}

// Token returns the current session token, empty until Login succeeds or a
// token was seeded at construction.
func (c *Client) Token() string {
	return c.token
}

// url returns an absolute URL for the given path. Hrefs handed out by the
// API are already absolute and pass through untouched.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(c.root.String(), "/") + path
}

func (c *Client) newRequest(ctx context.Context, method, rawurl string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(rawurl), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", Mime)
	if c.token != "" {
		req.Header.Set(AuthHeader, c.token)
	}
	return req, nil
}

// do executes one request in the session and reads the body. Any non-2xx
// response comes back as an *APIError carrying the original status and
// body; raw transport failures never escape unwrapped.
func (c *Client) do(req *http.Request, method string) ([]byte, http.Header, error) {
	labels := prometheus.Labels{"method": method, "op": strings.ToLower(req.Method)}
	requestCount.With(labels).Inc()
	timer := prometheus.NewTimer(requestDuration.With(labels))
	defer timer.ObserveDuration()

	span := trace.SpanFromContext(req.Context())
	span.SetAttributes(
		attribute.String("vcloud.method", method),
		attribute.String("vcloud.url", req.URL.String()),
	)

	res, err := c.http.Do(req)
	if err != nil {
		requestErrors.With(labels).Inc()
		return nil, nil, errors.Wrap(err, "request "+req.URL.Path)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		requestErrors.With(labels).Inc()
		return nil, nil, errors.Wrap(err, "read response body")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		requestErrors.With(labels).Inc()
		return nil, nil, &APIError{StatusCode: res.StatusCode, Status: res.Status, Body: body}
	}
	return body, res.Header, nil
}

func (c *Client) get(ctx context.Context, method, rawurl string) ([]byte, error) {
	req, err := c.newRequest(ctx, "GET", rawurl)
	if err != nil {
		return nil, err
	}
	body, _, err := c.do(req, method)
	return body, err
}

// lookup resolves a short type name to the href of the first link of that
// type registered in the session link index.
func (c *Client) lookup(typ string) (string, error) {
	full := fmt.Sprintf("application/vnd.vmware.%s+xml", typ)
	if l, ok := c.links.First(full); ok {
		return l.HREF, nil
	}
	return "", &LookupError{Type: typ}
}

func (c *Client) fetchInitialLinks(ctx context.Context) (LinkIndex, error) {
	body, err := c.get(ctx, "Session", "/session")
	if err != nil {
		return nil, errors.Wrap(err, "fetch initial links")
	}
	return decodeSession(body)
}

// Login retrieves an auth token using a username and password and rebuilds
// the root link index for the new session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req, err := c.newRequest(ctx, "POST", "/sessions")
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, password)

	_, hdr, err := c.do(req, "Login")
	if err != nil {
		return errors.Wrap(err, "login")
	}

	token := hdr.Get(AuthHeader)
	if token == "" {
		return errors.Errorf("login response missing %s header", AuthHeader)
	}
	c.token = token

	links, err := c.fetchInitialLinks(ctx)
	if err != nil {
		return err
	}
	c.links = links

	if c.logger != nil {
		c.logger.With("username", username).Info("logged in")
	}
	return nil
}

// LoggedIn probes the session endpoint and reports whether the current
// token is still accepted. It never raises on HTTP errors; it is a
// liveness probe, not a cached flag.
func (c *Client) LoggedIn(ctx context.Context) bool {
	labels := prometheus.Labels{"method": "LoggedIn", "op": "probe"}
	requestCount.With(labels).Inc()

	req, err := c.newRequest(ctx, "GET", "/session")
	if err != nil {
		return false
	}
	res, err := c.http.Do(req)
	if err != nil {
		requestErrors.With(labels).Inc()
		return false
	}
	defer res.Body.Close()

	return res.StatusCode >= 200 && res.StatusCode <= 299
}

// Browse makes an arbitrary GET request to the API at the specified path
// and returns the raw body.
func (c *Client) Browse(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, "Browse", path)
}

// OrgList retrieves the list of orgs visible to the session.
func (c *Client) OrgList(ctx context.Context) (*OrgList, error) {
	href, err := c.lookup("vcloud.orgList")
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "OrgList", href)
	if err != nil {
		return nil, err
	}
	return decodeOrgList(body)
}

// Org retrieves the full representation of an org by name. A name that does
// not exist is unambiguously a caller mistake and comes back as ErrNotFound.
func (c *Client) Org(ctx context.Context, name string) (*Org, error) {
	list, err := c.OrgList(ctx)
	if err != nil {
		return nil, err
	}
	short := list.OrgByName(name)
	if short == nil {
		return nil, errors.Wrapf(ErrNotFound, "org %q", name)
	}
	body, err := c.get(ctx, "Org", short.HREF)
	if err != nil {
		return nil, err
	}
	return decodeOrg(body)
}

// OrgNets retrieves the networks of the given org, one round trip per
// advertised orgNetwork link, in link order. An org with no network links
// yields an empty slice.
func (c *Client) OrgNets(ctx context.Context, org *Org) ([]OrgNet, error) {
	nets := []OrgNet{}
	for _, l := range org.Links[orgNetworkType] {
		body, err := c.get(ctx, "OrgNets", l.HREF)
		if err != nil {
			return nil, err
		}
		n, err := decodeOrgNet(body)
		if err != nil {
			return nil, err
		}
		nets = append(nets, *n)
	}
	return nets, nil
}

// OrgVdcs retrieves the virtual datacenters of the given org, one round
// trip per advertised vdc link, in link order.
func (c *Client) OrgVdcs(ctx context.Context, org *Org) ([]OrgVdc, error) {
	vdcs := []OrgVdc{}
	for _, l := range org.Links[vdcType] {
		body, err := c.get(ctx, "OrgVdcs", l.HREF)
		if err != nil {
			return nil, err
		}
		vdc, err := decodeOrgVdc(body)
		if err != nil {
			return nil, err
		}
		vdcs = append(vdcs, *vdc)
	}
	return vdcs, nil
}

// OrgVapps retrieves the vApp entities of the given org, flattened across
// all of its VDCs.
func (c *Client) OrgVapps(ctx context.Context, org *Org) ([]ResourceEntity, error) {
	vdcs, err := c.OrgVdcs(ctx, org)
	if err != nil {
		return nil, err
	}
	vapps := []ResourceEntity{}
	for _, vdc := range vdcs {
		vapps = append(vapps, vdc.Entities[vAppType]...)
	}
	return vapps, nil
}

// ExtNetList retrieves the list of all external networks.
func (c *Client) ExtNetList(ctx context.Context) (*ExtNetList, error) {
	href, err := c.lookup("admin.vcloud")
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "ExtNetList", href)
	if err != nil {
		return nil, err
	}
	return decodeExtNetList(body)
}

// ExtNet retrieves the full representation of an external network by name.
// A name that does not exist comes back as ErrNotFound.
func (c *Client) ExtNet(ctx context.Context, name string) (*ExtNet, error) {
	list, err := c.ExtNetList(ctx)
	if err != nil {
		return nil, err
	}
	short := list.ExtNetByName(name)
	if short == nil {
		return nil, errors.Wrapf(ErrNotFound, "external network %q", name)
	}
	body, err := c.get(ctx, "ExtNet", short.HREF)
	if err != nil {
		return nil, err
	}
	return decodeExtNet(body)
}

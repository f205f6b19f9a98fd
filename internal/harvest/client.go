package harvest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fairmeter/internal/identifier"
	"fairmeter/internal/terms"
	"fairmeter/pkg/platform/sentinel"
)

// Client is the HTTP implementation of Source. The endpoint is fixed at
// construction; there is no process-wide network configuration.
type Client struct {
	endpoint string
	client   *http.Client
	backoff  time.Duration
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.client = c }
}

// WithBackoff sets the delay before the single retry of a failed request.
func WithBackoff(d time.Duration) ClientOption {
	return func(cl *Client) { cl.backoff = d }
}

// WithLogger attaches a logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) { cl.logger = l }
}

// NewClient builds a Source for the given OAI-PMH endpoint with an explicit
// request timeout.
func NewClient(endpoint string, timeout time.Duration, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("harvest endpoint is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid harvest endpoint %q: %w", endpoint, err)
	}
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		backoff:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured endpoint address.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type metadataFormat struct {
	Prefix    string `xml:"metadataPrefix"`
	Namespace string `xml:"metadataNamespace"`
}

type formatsEnvelope struct {
	Errors  []oaiError       `xml:"http://www.openarchives.org/OAI/2.0/ error"`
	Formats []metadataFormat `xml:"ListMetadataFormats>metadataFormat"`
}

type recordEnvelope struct {
	Errors   []oaiError  `xml:"http://www.openarchives.org/OAI/2.0/ error"`
	Metadata *terms.Node `xml:"GetRecord>record>metadata"`
}

type oaiError struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// Formats implements Source.
func (c *Client) Formats(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, c.endpoint+"?verb=ListMetadataFormats")
	if err != nil {
		return nil, fmt.Errorf("list metadata formats: %w", err)
	}
	var env formatsEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse metadata formats: %w", err)
	}
	if len(env.Errors) > 0 {
		return nil, fmt.Errorf("list metadata formats: %s: %w", env.Errors[0].Code, sentinel.ErrProtocol)
	}
	formats := make(map[string]string, len(env.Formats))
	for _, f := range env.Formats {
		formats[f.Prefix] = f.Namespace
	}
	return formats, nil
}

// Record implements Source: it tries every candidate identifier form in
// order and returns the metadata container of the first response carrying no
// OAI error element.
func (c *Client) Record(ctx context.Context, prefix string, candidates []string) (*terms.Node, error) {
	var lastErr error
	for _, id := range candidates {
		reqURL := fmt.Sprintf("%s?verb=GetRecord&metadataPrefix=%s&identifier=%s",
			c.endpoint, url.QueryEscape(prefix), url.QueryEscape(id))
		body, err := c.get(ctx, reqURL)
		if err != nil {
			lastErr = err
			continue
		}
		var env recordEnvelope
		if err := xml.Unmarshal(body, &env); err != nil {
			lastErr = err
			continue
		}
		if len(env.Errors) > 0 {
			if c.logger != nil {
				c.logger.DebugContext(ctx, "record lookup rejected",
					"identifier", id,
					"code", env.Errors[0].Code,
				)
			}
			lastErr = fmt.Errorf("get record %q: %s: %w", id, env.Errors[0].Code, sentinel.ErrProtocol)
			continue
		}
		if env.Metadata == nil {
			lastErr = fmt.Errorf("get record %q: response carried no metadata container", id)
			continue
		}
		return env.Metadata, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("no candidate identifier resolved: %w", lastErr)
	}
	return nil, fmt.Errorf("no candidate identifiers supplied: %w", sentinel.ErrNotFound)
}

// get performs a bounded GET with one retry after a backoff.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("endpoint answered %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

// CandidateIdentifiers builds the record-identifier forms tried against a
// source for one subject: oai:{host}:{pid}, {scheme}:{pid}, and the
// suffix-trimmed oai form (substring after the last "."). Order matters; the
// first accepted form wins.
func CandidateIdentifiers(endpoint string, subject identifier.Identifier) []string {
	if len(subject.Schemes) == 0 {
		if subject.Raw == "" {
			return nil
		}
		return []string{subject.Raw}
	}

	scheme := subject.Primary()
	pid := subject.NormalizedIn(scheme)
	host := ""
	if u, err := url.Parse(endpoint); err == nil {
		host = u.Host
	}

	var out []string
	add := func(candidate string) {
		for _, existing := range out {
			if existing == candidate {
				return
			}
		}
		out = append(out, candidate)
	}

	add(fmt.Sprintf("oai:%s:%s", host, pid))
	add(fmt.Sprintf("%s:%s", scheme, pid))
	if i := strings.LastIndex(pid, "."); i >= 0 && i+1 < len(pid) {
		add(fmt.Sprintf("oai:%s:%s", host, pid[i+1:]))
	}
	return out
}

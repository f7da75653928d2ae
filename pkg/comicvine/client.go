// Package comicvine is the rate-limited ComicVine API client. All requests
// go through a single-flight spacing gate: one request at a time
// process-wide, with an enforced minimum interval between dispatches.
package comicvine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/joetting/comic-search/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public ComicVine API root.
const DefaultBaseURL = "https://comicvine.gamespot.com/api"

// DefaultInterval is the minimum spacing between dispatched requests.
// ComicVine's published budget is one request per second.
const DefaultInterval = time.Second

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string        // defaults to DefaultBaseURL
	Interval   time.Duration // defaults to DefaultInterval
	HTTPClient *http.Client  // defaults to a client with a 30s timeout
}

// Client issues ComicVine requests. The limiter owns the last-dispatch
// state, so spacing is measured from the previous dispatch time, not from
// when the caller happened to ask.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	gate    chan struct{}
}

// New returns a configured Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:  opts.APIKey,
		baseURL: opts.BaseURL,
		http:    opts.HTTPClient,
		limiter: rate.NewLimiter(rate.Every(opts.Interval), 1),
		gate:    make(chan struct{}, 1),
	}
}

// Search runs a keyword search across issues and volumes.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("resources", "issue,volume")
	params.Set("limit", "20")

	var results []SearchResult
	if err := c.get(ctx, "/search/", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Issue fetches the single-issue detail record.
func (c *Client) Issue(ctx context.Context, id int) (*Issue, error) {
	issue := &Issue{}
	if err := c.get(ctx, fmt.Sprintf("/issue/4000-%d/", id), nil, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Volume fetches the single-volume detail record.
func (c *Client) Volume(ctx context.Context, id int) (*Volume, error) {
	volume := &Volume{}
	if err := c.get(ctx, fmt.Sprintf("/volume/4050-%d/", id), nil, volume); err != nil {
		return nil, err
	}
	return volume, nil
}

// VolumeIssues fetches the issue summaries of a volume, in cover-date
// order.
func (c *Client) VolumeIssues(ctx context.Context, volumeID int) ([]IssueSummary, error) {
	params := url.Values{}
	params.Set("filter", fmt.Sprintf("volume:%d", volumeID))
	params.Set("sort", "cover_date:asc")

	var issues []IssueSummary
	if err := c.get(ctx, "/issues/", params, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Person fetches the single-person detail record.
func (c *Client) Person(ctx context.Context, id int) (*Person, error) {
	person := &Person{}
	if err := c.get(ctx, fmt.Sprintf("/person/4040-%d/", id), nil, person); err != nil {
		return nil, err
	}
	return person, nil
}

// DownloadImage fetches raw image bytes through the same spacing gate as
// API requests, so cover downloads count against the request budget too.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if cerr := errcodes.FromContext(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, errcodes.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errcodes.HTTPStatus(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if cerr := errcodes.FromContext(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, errcodes.Transport(err)
	}
	return data, nil
}

// acquire takes the single-flight gate and then waits out the spacing
// interval. Cancellation during either wait surfaces as Cancelled.
func (c *Client) acquire(ctx context.Context) error {
	select {
	case c.gate <- struct{}{}:
	case <-ctx.Done():
		return errcodes.Cancelled()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		<-c.gate
		return errcodes.Cancelled()
	}
	return nil
}

func (c *Client) release() {
	<-c.gate
}

type apiEnvelope struct {
	Error   string          `json:"error"`
	Results json.RawMessage `json:"results"`
}

func (c *Client) get(ctx context.Context, apiPath string, params url.Values, results interface{}) error {
	if c.apiKey == "" {
		return errcodes.NotConfigured("ComicVine API key")
	}
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPath+"?"+params.Encode(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if cerr := errcodes.FromContext(ctx); cerr != nil {
			return cerr
		}
		return errcodes.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errcodes.HTTPStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if cerr := errcodes.FromContext(ctx); cerr != nil {
			return cerr
		}
		return errcodes.Transport(err)
	}

	env := apiEnvelope{}
	if err := json.Unmarshal(body, &env); err != nil {
		return errcodes.Decode(err)
	}
	if env.Error != "OK" {
		return errcodes.Domain(env.Error)
	}
	if err := json.Unmarshal(env.Results, results); err != nil {
		return errcodes.Decode(err)
	}
	return nil
}

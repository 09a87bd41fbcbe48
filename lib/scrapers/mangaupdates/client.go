package mangaupdates

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"muscraper/lib/restyutil"
	"muscraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseURL = "https://www.mangaupdates.com"

// DefaultDelay is the courtesy pause between consecutive page fetches
// in one batch (list populations, top-list walks). Single fetches are
// never delayed.
const DefaultDelay = 2 * time.Second

// the site answers nonexistent ids with a styled error page and
// HTTP 200, these markers are its only reliable fingerprints.
const (
	seriesNotFoundText = "You specified an invalid series id"
	invalidListText    = "You specified an invalid list"
	noRowsComment      = "<!-- no rows -->"
)

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// defaults to DefaultDelay, set negative to disable
	Delay time.Duration
	// optional http transcript sink, see restyutil
	InstrumentOutput restyutil.InstrumentOutput
}

type Client struct {
	http    *resty.Client
	baseURL string
	delay   time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultDelay
	}
	baseUrl, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(time.Second * 3)

	telemetry.InstrumentResty(client, "scrapers/mangaupdates/http")
	if opts.InstrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)
	}

	return &Client{
		http:    client,
		baseURL: opts.BaseURL,
		delay:   opts.Delay,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// courtesyDelay sleeps the configured delay plus up to half a second of
// jitter so batched fetches do not hit the site on a fixed beat.
func (c *Client) courtesyDelay(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	jitterMs, err := random.IntRange(0, 500)
	if err != nil {
		jitterMs = 0
	}
	timer := time.NewTimer(c.delay + time.Duration(jitterMs)*time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values) (string, *goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(path)
	if err != nil {
		return "", nil, err
	}
	if res.StatusCode() != 200 {
		return "", nil, fmt.Errorf("unexpected status %d fetching %s", res.StatusCode(), path)
	}
	body := string(res.Body())
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	return body, doc, nil
}

// SeriesPage fetches the info page for the given series id. It returns
// NotFoundError when the site serves its "invalid series" placeholder.
func (c *Client) SeriesPage(ctx context.Context, id int) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:SeriesPage")
	defer span.End()

	query := url.Values{}
	query.Set("id", fmt.Sprint(id))
	body, doc, err := c.getPage(ctx, "/series.html", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch series page")
		return nil, err
	}
	if strings.Contains(body, seriesNotFoundText) || strings.Contains(body, noRowsComment) {
		err := &NotFoundError{ID: id}
		span.RecordError(err)
		span.SetStatus(codes.Error, "series does not exist")
		return nil, err
	}
	return doc, nil
}

// ListPage fetches one membership list page for a series. It returns
// InvalidListError when the site rejects the list name.
func (c *Client) ListPage(ctx context.Context, id int, list string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:ListPage")
	defer span.End()

	query := url.Values{}
	query.Set("act", "list")
	query.Set("list", list)
	query.Set("sid", fmt.Sprint(id))
	body, doc, err := c.getPage(ctx, "/series.html", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch list page")
		return nil, err
	}
	if strings.Contains(body, invalidListText) {
		err := &InvalidListError{Name: list}
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid list name")
		return nil, err
	}
	if strings.Contains(body, seriesNotFoundText) || strings.Contains(body, noRowsComment) {
		err := &NotFoundError{ID: id}
		span.RecordError(err)
		span.SetStatus(codes.Error, "series does not exist")
		return nil, err
	}
	return doc, nil
}

// StatsPage fetches one page of the sitewide "most listed" ranking for
// the given list.
func (c *Client) StatsPage(ctx context.Context, list string, page, perPage int) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:StatsPage")
	defer span.End()

	query := url.Values{}
	query.Set("act", "list")
	query.Set("list", list)
	query.Set("perpage", fmt.Sprint(perPage))
	query.Set("page", fmt.Sprint(page))
	_, doc, err := c.getPage(ctx, "/stats.html", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch stats page")
		return nil, err
	}
	return doc, nil
}

package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"chatbot/app/config"
	"chatbot/app/util/fetch"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/tidwall/gjson"
)

// ErrNotFound means the provider answered but did not know the location.
var ErrNotFound = errors.New("location not found")

type Report struct {
	Temperature float64
	Description string
	Place       string
}

func (r *Report) FormatTemperature() string {
	return strconv.FormatFloat(r.Temperature, 'f', -1, 64)
}

type Client struct {
	cfg config.Weather
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Weather), nil
}

func New(cfg config.Weather) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) ByCity(ctx context.Context, city string) (*Report, error) {
	query := url.Values{}
	query.Set("q", city)

	return c.fetch(ctx, query)
}

func (c *Client) ByCoordinates(ctx context.Context, lat, lon string) (*Report, error) {
	query := url.Values{}
	query.Set("lat", lat)
	query.Set("lon", lon)

	return c.fetch(ctx, query)
}

func (c *Client) fetch(ctx context.Context, query url.Values) (*Report, error) {
	query.Set("appid", c.cfg.APIKey)
	query.Set("units", "metric")

	code, body, err := fetch.Bytes(ctx, fiber.Get(c.cfg.BaseURL+"?"+query.Encode()), c.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed weather response (status %d)", code)
	}

	result := gjson.ParseBytes(body)

	if cod := result.Get("cod").Int(); cod != 200 {
		return nil, fmt.Errorf("%w: cod %d: %s", ErrNotFound, cod, result.Get("message").String())
	}

	temp := result.Get("main.temp")
	if !temp.Exists() {
		return nil, fmt.Errorf("weather response has no temperature")
	}

	return &Report{
		Temperature: temp.Float(),
		Description: result.Get("weather.0.description").String(),
		Place:       result.Get("name").String(),
	}, nil
}

package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"chatbot/app/config"
	"chatbot/app/util/fetch"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

type ratesResponse struct {
	Result    string             `json:"result"`
	BaseCode  string             `json:"base_code"`
	Rates     map[string]float64 `json:"rates"`
	ErrorType string             `json:"error-type"`
}

type Client struct {
	cfg config.Currency
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Currency), nil
}

func New(cfg config.Currency) *Client {
	return &Client{cfg: cfg}
}

// Rates returns exchange rates relative to base, keyed by upper-case currency code.
func (c *Client) Rates(ctx context.Context, base string) (map[string]float64, error) {
	code, body, err := fetch.Bytes(ctx, fiber.Get(c.cfg.BaseURL+url.PathEscape(strings.ToUpper(base))), c.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}

	var resp ratesResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed rates response (status %d): %w", code, err)
	}

	if resp.Result != "success" {
		return nil, fmt.Errorf("rates request rejected: %s", resp.ErrorType)
	}

	return resp.Rates, nil
}

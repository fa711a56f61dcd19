package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"chatbot/app/config"
	"chatbot/app/util/fetch"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/tidwall/gjson"
)

const userAgent = "chatbot/1.0 (console assistant)"

var ErrNotFound = errors.New("topic not found")

type Client struct {
	cfg config.Wiki
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Wiki), nil
}

func New(cfg config.Wiki) *Client {
	return &Client{cfg: cfg}
}

// Summary returns the lead of the encyclopedia article on topic, cut to the
// configured number of sentences.
func (c *Client) Summary(ctx context.Context, topic string) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	if title == "" {
		return "", ErrNotFound
	}

	agent := fiber.Get(c.cfg.BaseURL + url.PathEscape(title)).
		UserAgent(userAgent).
		MaxRedirectsCount(3)

	code, body, err := fetch.Bytes(ctx, agent, c.cfg.Timeout)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}

	if code == http.StatusNotFound {
		return "", ErrNotFound
	}
	if code != http.StatusOK || !gjson.ValidBytes(body) {
		return "", fmt.Errorf("unexpected summary response (status %d)", code)
	}

	result := gjson.ParseBytes(body)
	if result.Get("type").String() == "disambiguation" {
		return "", fmt.Errorf("%w: %q is ambiguous", ErrNotFound, topic)
	}

	extract := strings.TrimSpace(result.Get("extract").String())
	if extract == "" {
		return "", ErrNotFound
	}

	return firstSentences(extract, c.cfg.Sentences), nil
}

func firstSentences(text string, n int) string {
	count := 0
	runes := []rune(text)

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\n' {
			continue
		}

		count++
		if count == n {
			return string(runes[:i+1])
		}
	}

	return text
}

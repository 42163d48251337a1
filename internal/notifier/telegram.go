package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

const defaultAPIBase = "https://api.telegram.org"

// StatusError reports a non-2xx reply from the Bot API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("telegram status %d: %s", e.Code, e.Body)
}

type Client struct {
	apiBase     string
	token       string
	chatID      string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func New(token, chatID string) *Client {
	return &Client{
		apiBase: defaultAPIBase,
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: 10 * time.Second},
		// Telegram allows roughly one message per second per chat.
		rateLimiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Notify sends one alert for item: sendPhoto with the image attached by
// URL reference and a Markdown caption carrying name, price and link, or
// sendMessage when the listing has no image. Exactly one attempt; a
// non-2xx status becomes a StatusError and is never retried.
func (c *Client) Notify(ctx context.Context, item models.Item) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	method := "sendPhoto"
	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("parse_mode", "Markdown")
	if item.Image == "" {
		method = "sendMessage"
		form.Set("text", formatCaption(item))
	} else {
		form.Set("photo", item.Image)
		form.Set("caption", formatCaption(item))
	}
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &StatusError{Code: resp.StatusCode, Body: string(body)}
}

func formatCaption(item models.Item) string {
	price := strconv.FormatFloat(item.Price, 'f', -1, 64)
	return fmt.Sprintf(
		"📚 *Livro encontrado!*\n\n"+
			"🎓 *Título:* %s\n\n"+
			"💰 *Preço:* R$%s\n\n"+
			"🔗 *Link:* [Clique aqui](%s)\n\n",
		item.Name, price, item.Link)
}

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// Translation — ответ внешнего переводчика.
type Translation struct {
	Text       string
	SourceCode string
}

// Client описывает внешнюю возможность перевода. source == "" означает
// автоопределение исходного языка.
type Client interface {
	Translate(ctx context.Context, text, target, source string) (Translation, error)
}

// GoogleClient обращается к публичному веб-интерфейсу Google Translate.
type GoogleClient struct {
	HTTP     *http.Client
	Endpoint string
}

// NewGoogleClient создаёт клиента со стандартными настройками.
func NewGoogleClient() *GoogleClient {
	return &GoogleClient{HTTP: http.DefaultClient, Endpoint: googleEndpoint}
}

// Translate выполняет один запрос перевода.
func (c *GoogleClient) Translate(ctx context.Context, text, target, source string) (Translation, error) {
	if source == "" {
		source = "auto"
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Translation{}, fmt.Errorf("translate: create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Translation{}, fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Translation{}, fmt.Errorf("translate: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Translation{}, fmt.Errorf("translate: read response: %w", err)
	}

	return parseGoogleResponse(payload)
}

// parseGoogleResponse разбирает вложенные массивы ответа translate_a/single:
// нулевой элемент — сегменты перевода, третий — определённый исходный язык.
func parseGoogleResponse(data []byte) (Translation, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return Translation{}, fmt.Errorf("translate: decode response: %w", err)
	}
	if len(root) < 3 {
		return Translation{}, fmt.Errorf("translate: короткий ответ: %d элементов", len(root))
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return Translation{}, fmt.Errorf("translate: decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err == nil {
			sb.WriteString(part)
		}
	}

	var detected string
	_ = json.Unmarshal(root[2], &detected)

	return Translation{Text: sb.String(), SourceCode: detected}, nil
}

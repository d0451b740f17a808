// Package ratp interroge l'API d'horaires RATP (api-ratp.pierre-grimaud.fr, v3).
package ratp

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/metro-cards/internal/buildinfo"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

const DefaultEndpoint = "https://api-ratp.pierre-grimaud.fr/v3/schedules"

// maxBodySize borne la lecture d'une réponse d'horaires.
const maxBodySize = 1 << 20

type Client struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string, timeout time.Duration) *Client {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

// RequestKey est l'URL complète de la requête, utilisée comme clé de cache.
func (c *Client) RequestKey(key string) string {
	return c.endpoint + "/" + strings.TrimLeft(key, "/")
}

func (c *Client) Fetch(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestKey(key), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &ports.StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

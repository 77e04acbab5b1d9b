/**
 * @description
 * HTTP Client for the Kroger products API.
 * Handles the OAuth2 client-credentials exchange, store location lookup, and
 * product search.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - backend/internal/config
 */

package kroger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/foodlens-project/backend/internal/config"
)

const (
	DefaultTimeout = 10 * time.Second
)

// APIError reports a non-success response from the Kroger API.
// It is fatal for the fetch that hit it, not for the whole run.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kroger api error: status %d: %s", e.Status, e.Body)
}

type Client struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:      cfg.Kroger.APIURL,
		TokenURL:     cfg.Kroger.TokenURL,
		ClientID:     cfg.Kroger.ClientID,
		ClientSecret: cfg.Kroger.ClientSecret,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Token performs the OAuth2 client-credentials exchange and returns an access
// token scoped to the product catalog.
func (c *Client) Token(ctx context.Context) (string, error) {
	creds := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "product.compact")

	req, err := http.NewRequestWithContext(ctx, "POST", c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readAPIError(resp)
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("kroger token response contained no access_token")
	}

	return token.AccessToken, nil
}

// NearestLocation finds the closest store to the given ZIP code
func (c *Client) NearestLocation(ctx context.Context, token, zipcode string) (*Location, error) {
	u, err := url.Parse(fmt.Sprintf("%s/locations", c.BaseURL))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("filter.zipCode.near", zipcode)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var locations LocationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
		return nil, err
	}
	if len(locations.Data) == 0 {
		return nil, fmt.Errorf("no kroger location found near %s", zipcode)
	}

	return &locations.Data[0], nil
}

// SearchProducts fetches products for a search term at a specific location
func (c *Client) SearchProducts(ctx context.Context, token, locationID, term string, limit int) ([]ProductData, error) {
	u, err := url.Parse(fmt.Sprintf("%s/products", c.BaseURL))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("filter.term", term)
	q.Set("filter.locationId", locationID)
	if limit > 0 {
		q.Set("filter.limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var products ProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, err
	}

	return products.Data, nil
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

/**
 * @description
 * HTTP Client for the Spoonacular recipe API.
 * Fetches recipes with nutrition and ingredient data attached.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - backend/internal/config
 */

package spoonacular

import (
	"context"
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

// APIError reports a non-success response from the Spoonacular API
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spoonacular api error: status %d: %s", e.Status, e.Body)
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.Spoonacular.APIURL,
		APIKey:  cfg.Spoonacular.APIKey,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SearchRecipes fetches recipes matching a query, with nutrition and
// ingredient data included. No results is not an error; an empty slice
// is returned.
func (c *Client) SearchRecipes(ctx context.Context, query string, number int) ([]Recipe, error) {
	u, err := url.Parse(fmt.Sprintf("%s/recipes/complexSearch", c.BaseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("apiKey", c.APIKey)
	q.Set("query", query)
	if number > 0 {
		q.Set("number", strconv.Itoa(number))
	}
	q.Set("addRecipeNutrition", "true")
	q.Set("fillIngredients", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Results, nil
}

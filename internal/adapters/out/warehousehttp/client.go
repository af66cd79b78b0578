// Package warehousehttp is the synchronous HTTP client onto the warehouse
// service, used for cargo snapshots and pushing cargo status changes.
package warehousehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client implements ports.WarehouseClient over the warehouse service's REST
// API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a warehouse service client. baseURL must not have a
// trailing slash.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// GetCargo fetches a cargo snapshot by id.
func (c *Client) GetCargo(ctx context.Context, id kernel.UUID) (cargo.Cargo, error) {
	url := fmt.Sprintf("%s/cargo/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return cargo.Cargo{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cargo.Cargo{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var item cargo.Cargo
		if err = json.NewDecoder(resp.Body).Decode(&item); err != nil {
			return cargo.Cargo{}, err
		}
		return item, nil
	case http.StatusNotFound:
		return cargo.Cargo{}, errs.NewObjectNotFoundError("cargo", id.String())
	default:
		return cargo.Cargo{}, fmt.Errorf("warehouse service returned %s for %s", resp.Status, url)
	}
}

// UpdateCargoStatus pushes a cargo status change to the warehouse.
func (c *Client) UpdateCargoStatus(ctx context.Context, id kernel.UUID, status cargo.Status) error {
	url := fmt.Sprintf("%s/cargo/%s/status", c.baseURL, id)

	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return errs.NewObjectNotFoundError("cargo", id.String())
	default:
		return fmt.Errorf("warehouse service returned %s for %s", resp.Status, url)
	}
}

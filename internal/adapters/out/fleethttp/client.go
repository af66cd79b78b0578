// Package fleethttp is the synchronous HTTP client onto the fleet service.
// It returns the snapshot types from the fleet model and maps 404 responses
// to errs.ObjectNotFoundError so callers can branch on errs.ErrObjectNotFound.
package fleethttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client implements ports.FleetClient over the fleet service's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a fleet service client. baseURL must not have a trailing
// slash.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// GetVehicle fetches a vehicle snapshot by id.
func (c *Client) GetVehicle(ctx context.Context, id kernel.UUID) (fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	err := c.getJSON(ctx, fmt.Sprintf("%s/vehicles/%s", c.baseURL, id), "vehicle", id.String(), &vehicle)
	return vehicle, err
}

// GetDriver fetches a driver snapshot by id.
func (c *Client) GetDriver(ctx context.Context, id kernel.UUID) (fleet.Driver, error) {
	var driver fleet.Driver
	err := c.getJSON(ctx, fmt.Sprintf("%s/drivers/%s", c.baseURL, id), "driver", id.String(), &driver)
	return driver, err
}

// GetAvailableDrivers lists drivers eligible for assignment.
func (c *Client) GetAvailableDrivers(ctx context.Context) ([]fleet.Driver, error) {
	var drivers []fleet.Driver
	err := c.getJSON(ctx, c.baseURL+"/drivers/available", "drivers", "available", &drivers)
	return drivers, err
}

// GetAvailableVehicles lists vehicles in active status.
func (c *Client) GetAvailableVehicles(ctx context.Context) ([]fleet.Vehicle, error) {
	var vehicles []fleet.Vehicle
	err := c.getJSON(ctx, c.baseURL+"/vehicles/available", "vehicles", "available", &vehicles)
	return vehicles, err
}

func (c *Client) getJSON(ctx context.Context, url, objectName, objectID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return errs.NewObjectNotFoundError(objectName, objectID)
	default:
		return fmt.Errorf("fleet service returned %s for %s", resp.Status, url)
	}
}

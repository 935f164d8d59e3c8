package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// maxResponseBytes bounds how much of an upstream body is read back; the
// fleet backend answers with small JSON documents.
const maxResponseBytes = 1 << 20

// SetVariablesParams carries the ten metering-report parameters the fleet
// backend expects. String zero values are forwarded as empty strings, the
// alert flags default to "false" when unset.
type SetVariablesParams struct {
	StationID       string
	TargetComponent string
	DataDirection   string
	MeasurementType string
	MeasurementUnit string
	Interval        string
	AlertsEnabled   string
	AlertsStart     string
	AlertsEnd       string
	AlertsDuring    string
}

func (p SetVariablesParams) encode() string {
	values := url.Values{}
	values.Set("stationId", p.StationID)
	values.Set("targetComponent", p.TargetComponent)
	values.Set("dataDirection", p.DataDirection)
	values.Set("measurementType", p.MeasurementType)
	values.Set("measurementUnit", p.MeasurementUnit)
	values.Set("interval", p.Interval)
	values.Set("alertsEnabled", orFalse(p.AlertsEnabled))
	values.Set("alertsStart", orFalse(p.AlertsStart))
	values.Set("alertsEnd", orFalse(p.AlertsEnd))
	values.Set("alertsDuring", orFalse(p.AlertsDuring))
	return values.Encode()
}

func orFalse(s string) string {
	if s == "" {
		return "false"
	}
	return s
}

// ProvisioningClient forwards configuration pushes to the fleet backend.
type ProvisioningClient struct {
	baseURL string
	client  HTTPDoer
}

// NewProvisioningClient returns client.
func NewProvisioningClient(baseURL string, client HTTPDoer) *ProvisioningClient {
	return &ProvisioningClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// SetVariables issues the one-way configuration push and returns the
// upstream status and body. The caller decides how to treat non-2xx
// upstream statuses.
func (c *ProvisioningClient) SetVariables(ctx context.Context, params SetVariablesParams) (int, []byte, error) {
	target := c.baseURL + "/api/setvariables/create?" + params.encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("provisioning: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("provisioning: read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

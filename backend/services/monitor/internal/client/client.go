package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"chargeview/backend/services/monitor/internal/model"
)

// ErrUnauthorized is returned for any 401 response. The persisted token is
// cleared before the error surfaces so the next login starts clean.
var ErrUnauthorized = errors.New("client: unauthorized")

const requestTimeout = 10 * time.Second

// envelope is the dashboard's uniform response shape. The charger list is
// the one route that answers with a bare array instead.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Details string          `json:"details"`
}

// Client is the typed dashboard API client.
type Client struct {
	http   *resty.Client
	tokens *TokenStore
	logger *zap.Logger
}

// New builds a client against baseURL. Every request carries the stored
// bearer token when one exists.
func New(baseURL string, tokens *TokenStore, logger *zap.Logger) *Client {
	c := &Client{tokens: tokens, logger: logger}

	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		token, err := tokens.Load()
		if err != nil {
			logger.Warn("token load failed, sending unauthenticated request", zap.Error(err))
		} else if token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		logger.Debug("api request", zap.String("method", req.Method), zap.String("url", req.URL))
		return nil
	})

	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("api response",
			zap.Int("status", resp.StatusCode()),
			zap.String("url", resp.Request.URL),
		)
		if resp.StatusCode() == http.StatusUnauthorized {
			if err := tokens.Clear(); err != nil {
				logger.Warn("failed to clear stored token", zap.Error(err))
			}
			return ErrUnauthorized
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			logger.Error("dashboard api server error",
				zap.Int("status", resp.StatusCode()),
				zap.String("url", resp.Request.URL),
			)
		}
		return nil
	})

	c.http = r
	return c
}

// Login authenticates and persists the returned token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := decodeEnvelope(resp, &payload); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := c.tokens.Save(payload.Token); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// ListChargers fetches the charger list. The response is a bare JSON array.
func (c *Client) ListChargers(ctx context.Context) ([]model.Charger, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/chargers")
	if err != nil {
		return nil, fmt.Errorf("list chargers: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("list chargers: status %d", resp.StatusCode())
	}
	var stations []model.LegacyStation
	if err := json.Unmarshal(resp.Body(), &stations); err != nil {
		return nil, fmt.Errorf("list chargers: parse: %w", err)
	}
	return model.FromLegacySlice(stations), nil
}

// GetStation fetches one station by numeric ID.
func (c *Client) GetStation(ctx context.Context, stationID int64) (*model.Station, error) {
	var station model.Station
	if err := c.getInto(ctx, fmt.Sprintf("/api/chargers/%d", stationID), &station); err != nil {
		return nil, fmt.Errorf("get station: %w", err)
	}
	return &station, nil
}

// ListEvses fetches the EVSEs of a station. The response is a bare array.
func (c *Client) ListEvses(ctx context.Context, stationID int64) ([]model.Evse, error) {
	resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/api/chargers/%d/evses", stationID))
	if err != nil {
		return nil, fmt.Errorf("list evses: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("list evses: status %d", resp.StatusCode())
	}
	var evses []model.Evse
	if err := json.Unmarshal(resp.Body(), &evses); err != nil {
		return nil, fmt.Errorf("list evses: parse: %w", err)
	}
	return evses, nil
}

// ListConnectors fetches the connectors of an EVSE.
func (c *Client) ListConnectors(ctx context.Context, evseID int64) ([]model.Connector, error) {
	var connectors []model.Connector
	if err := c.getInto(ctx, fmt.Sprintf("/api/evses/%d/connectors", evseID), &connectors); err != nil {
		return nil, fmt.Errorf("list connectors: %w", err)
	}
	return connectors, nil
}

// ListMeterValues fetches recent meter values for a station, newest first.
func (c *Client) ListMeterValues(ctx context.Context, stationID int64, limit int) ([]model.MeterValue, error) {
	req := c.http.R().SetContext(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", fmt.Sprintf("%d", limit))
	}
	resp, err := req.Get(fmt.Sprintf("/api/chargers/%d/meter-values", stationID))
	if err != nil {
		return nil, fmt.Errorf("list meter values: %w", err)
	}
	var values []model.MeterValue
	if err := decodeEnvelope(resp, &values); err != nil {
		return nil, fmt.Errorf("list meter values: %w", err)
	}
	return values, nil
}

// ListEss fetches the ESS units of a station.
func (c *Client) ListEss(ctx context.Context, stationID int64) ([]model.Ess, error) {
	var units []model.Ess
	if err := c.getInto(ctx, fmt.Sprintf("/api/chargers/%d/ess", stationID), &units); err != nil {
		return nil, fmt.Errorf("list ess: %w", err)
	}
	return units, nil
}

// UpdateStationStatus sets a station status. Requires a stored token.
func (c *Client) UpdateStationStatus(ctx context.Context, stationID int64, status string) error {
	return c.putStatus(ctx, fmt.Sprintf("/api/chargers/%d/status", stationID), status)
}

// UpdateEvseStatus sets an EVSE status. Requires a stored token.
func (c *Client) UpdateEvseStatus(ctx context.Context, evseID int64, status string) error {
	return c.putStatus(ctx, fmt.Sprintf("/api/evses/%d/status", evseID), status)
}

// UpdateEssStatus sets an ESS status. Requires a stored token.
func (c *Client) UpdateEssStatus(ctx context.Context, essID int64, status string) error {
	return c.putStatus(ctx, fmt.Sprintf("/api/ess/%d/status", essID), status)
}

func (c *Client) getInto(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

func (c *Client) putStatus(ctx context.Context, path, status string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"status": status}).
		Put(path)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if err := decodeEnvelope(resp, nil); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// decodeEnvelope checks HTTP and envelope success, then unmarshals the data
// payload into out when out is non-nil.
func decodeEnvelope(resp *resty.Response, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if !resp.IsSuccess() {
			return fmt.Errorf("status %d", resp.StatusCode())
		}
		return fmt.Errorf("parse: %w", err)
	}
	if !resp.IsSuccess() || !env.Success {
		if env.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode(), env.Message)
		}
		return fmt.Errorf("status %d", resp.StatusCode())
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("parse data: %w", err)
	}
	return nil
}

package dataapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nimburion/dataapi/pkg/observability/metrics"
	"github.com/nimburion/dataapi/pkg/observability/tracing"
)

// Data API action names, appended to {baseURL}/action/.
const (
	actionFindOne    = "findOne"
	actionFind       = "find"
	actionInsertOne  = "insertOne"
	actionInsertMany = "insertMany"
	actionUpdateOne  = "updateOne"
	actionDeleteOne  = "deleteOne"
	actionAggregate  = "aggregate"
)

// envelope carries the routing triple present in every request body.
type envelope struct {
	DataSource string `json:"dataSource"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

type findOnePayload struct {
	envelope
	Filter     Filter     `json:"filter"`
	Projection Projection `json:"projection,omitempty"`
}

type findPayload struct {
	envelope
	Filter     Filter     `json:"filter"`
	Projection Projection `json:"projection,omitempty"`
	Sort       Sort       `json:"sort,omitempty"`
	Limit      int64      `json:"limit,omitempty"`
	Skip       int64      `json:"skip,omitempty"`
}

type insertOnePayload[T any] struct {
	envelope
	Document T `json:"document"`
}

type insertManyPayload[T any] struct {
	envelope
	Documents []T `json:"documents"`
}

type updateOnePayload struct {
	envelope
	Filter Filter `json:"filter"`
	Update Update `json:"update"`
	Upsert bool   `json:"upsert"`
}

type deleteOnePayload struct {
	envelope
	Filter Filter `json:"filter"`
}

type aggregatePayload struct {
	envelope
	Pipeline Pipeline `json:"pipeline"`
}

func (c *Client[T]) envelope() envelope {
	return envelope{
		DataSource: c.cfg.DataSource,
		Database:   c.cfg.Database,
		Collection: c.cfg.Collection,
	}
}

// do serializes payload, posts it to the action endpoint, and decodes
// the 2xx response body into result. A non-2xx status yields a
// StatusError without reading the body.
func (c *Client[T]) do(ctx context.Context, action string, payload, result any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	requestID := uuid.NewString()
	start := time.Now()

	cctx, cancel := withTimeout(ctx, c.cfg.OperationTimeout)
	defer cancel()

	sctx, span := tracing.StartActionSpan(cctx, action,
		tracing.WithDataSource(c.cfg.DataSource),
		tracing.WithDatabase(c.cfg.Database),
		tracing.WithCollection(c.cfg.Collection),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(sctx, http.MethodPost, c.cfg.BaseURL+"/action/"+action, bytes.NewReader(raw))
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	c.log.Debug("data api request",
		"request_id", requestID,
		"action", action,
		"collection", c.cfg.Collection,
		"body_bytes", len(raw),
	)

	metrics.IncrementInFlight()
	resp, err := c.httpClient.Do(req)
	metrics.DecrementInFlight()
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}
	defer resp.Body.Close()

	metrics.RecordActionMetrics(action, resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{Action: action, StatusCode: resp.StatusCode}
		c.log.Error("data api request failed",
			"request_id", requestID,
			"action", action,
			"status", resp.StatusCode,
		)
		tracing.RecordError(span, statusErr)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("decode %s response: %w", action, err)
	}

	tracing.RecordSuccess(span)
	c.log.Debug("data api response",
		"request_id", requestID,
		"action", action,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return nil
}

// Package dataapi implements a typed client for a document database's
// hosted HTTP Data API. Every operation is a single synchronous POST to
// {baseURL}/action/{operation} authenticated by a static api-key
// header; the client holds no mutable state and is safe for concurrent
// use.
package dataapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nimburion/dataapi/pkg/observability/logger"
)

// Config holds the immutable environment a client is bound to. The five
// name/credential values are treated as opaque strings; invalid values
// surface only when an operation is attempted.
type Config struct {
	// BaseURL is the Data API endpoint base, e.g.
	// "https://data.example.com/app/myapp/endpoint/data/v1".
	BaseURL string

	// APIKey is sent on every request in the api-key header.
	APIKey string

	// DataSource is the cluster alias the service routes operations to.
	DataSource string

	// Database and Collection name the target of every operation.
	Database   string
	Collection string

	// OperationTimeout bounds a single request unless the caller's
	// context already carries a deadline. Defaults to 30s.
	OperationTimeout time.Duration

	// HTTPClient overrides the transport. Defaults to a client with
	// OperationTimeout as its overall timeout.
	HTTPClient *http.Client
}

// Client issues typed operations against one collection. T is the
// document type stored in the configured collection.
type Client[T any] struct {
	cfg        Config
	httpClient *http.Client
	log        logger.Logger
}

// New creates a client bound to cfg. It performs no I/O and does not
// validate the environment values. A nil log disables logging.
func New[T any](cfg Config, log logger.Logger) *Client[T] {
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if log == nil {
		log = logger.NewNoop()
	}
	return &Client[T]{
		cfg:        cfg,
		httpClient: defaultHTTPClient(cfg.HTTPClient, cfg.OperationTimeout),
		log:        log,
	}
}

// FindOptions carries the optional arguments of Find. The zero value
// requests all matching documents with the service's default order.
type FindOptions struct {
	Projection Projection
	Sort       Sort
	Limit      int64
	Skip       int64
}

// UpdateOptions carries the optional arguments of UpdateOne.
type UpdateOptions struct {
	// Upsert inserts a new document when the filter matches nothing.
	Upsert bool
}

// UpdateResult reports the outcome of UpdateOne.
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type findOneResponse[T any] struct {
	Document *T `json:"document"`
}

type findResponse[T any] struct {
	Documents []T `json:"documents"`
}

type insertOneResponse struct {
	InsertedID string `json:"insertedId"`
}

type insertManyResponse struct {
	InsertedIDs []string `json:"insertedIds"`
}

type deleteOneResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// FindOne returns the first document matching filter, or nil when
// nothing matches. A nil projection returns whole documents.
func (c *Client[T]) FindOne(ctx context.Context, filter Filter, projection Projection) (*T, error) {
	payload := findOnePayload{
		envelope:   c.envelope(),
		Filter:     normalizeFilter(filter),
		Projection: projection,
	}
	var out findOneResponse[T]
	if err := c.do(ctx, actionFindOne, payload, &out); err != nil {
		return nil, err
	}
	return out.Document, nil
}

// Find returns all documents matching filter, subject to opts. A nil
// filter matches every document in the collection.
func (c *Client[T]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]T, error) {
	payload := findPayload{
		envelope:   c.envelope(),
		Filter:     normalizeFilter(filter),
		Projection: opts.Projection,
		Sort:       opts.Sort,
		Limit:      opts.Limit,
		Skip:       opts.Skip,
	}
	var out findResponse[T]
	if err := c.do(ctx, actionFind, payload, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// InsertOne stores document and returns the identifier the service
// assigned to it.
func (c *Client[T]) InsertOne(ctx context.Context, document T) (string, error) {
	payload := insertOnePayload[T]{
		envelope: c.envelope(),
		Document: document,
	}
	var out insertOneResponse
	if err := c.do(ctx, actionInsertOne, payload, &out); err != nil {
		return "", err
	}
	return out.InsertedID, nil
}

// InsertMany stores documents in order and returns the assigned
// identifiers, one per document.
func (c *Client[T]) InsertMany(ctx context.Context, documents []T) ([]string, error) {
	if documents == nil {
		documents = []T{}
	}
	payload := insertManyPayload[T]{
		envelope:  c.envelope(),
		Documents: documents,
	}
	var out insertManyResponse
	if err := c.do(ctx, actionInsertMany, payload, &out); err != nil {
		return nil, err
	}
	return out.InsertedIDs, nil
}

// UpdateOne applies update to the first document matching filter.
func (c *Client[T]) UpdateOne(ctx context.Context, filter Filter, update Update, opts UpdateOptions) (*UpdateResult, error) {
	if update == nil {
		update = Update{}
	}
	payload := updateOnePayload{
		envelope: c.envelope(),
		Filter:   normalizeFilter(filter),
		Update:   update,
		Upsert:   opts.Upsert,
	}
	var out UpdateResult
	if err := c.do(ctx, actionUpdateOne, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOne removes the first document matching filter and returns the
// number of documents removed (0 or 1).
func (c *Client[T]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	payload := deleteOnePayload{
		envelope: c.envelope(),
		Filter:   normalizeFilter(filter),
	}
	var out deleteOneResponse
	if err := c.do(ctx, actionDeleteOne, payload, &out); err != nil {
		return 0, err
	}
	return out.DeletedCount, nil
}

// Aggregate runs pipeline server-side and returns the derived result
// documents. Stages pass through verbatim.
func (c *Client[T]) Aggregate(ctx context.Context, pipeline Pipeline) ([]T, error) {
	if pipeline == nil {
		pipeline = Pipeline{}
	}
	payload := aggregatePayload{
		envelope: c.envelope(),
		Pipeline: pipeline,
	}
	var out findResponse[T]
	if err := c.do(ctx, actionAggregate, payload, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func defaultHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: timeout}
}

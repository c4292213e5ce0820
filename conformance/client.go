// Package conformance scores composed models against the original event log
// by calling an external evaluation service, once per metric family. Scores
// come back as exact decimals so stored runs compare without float drift.
package conformance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/eventlog"
	"github.com/jt05610/magnet/pnml"
)

const DefaultTimeout = 30 * time.Second

// Family selects how the service measures model quality: optimal
// alignments or entropy of the model and log languages.
type Family string

const (
	Alignment Family = "alignment"
	Entropy   Family = "entropy"
)

// Scores are one family's fitness and precision.
type Scores struct {
	Fitness   decimal.Decimal `json:"fitness"`
	Precision decimal.Decimal `json:"precision"`
}

// Report carries the four scalars of a full evaluation.
type Report struct {
	AlignmentFitness   decimal.Decimal `json:"alignmentFitness"`
	AlignmentPrecision decimal.Decimal `json:"alignmentPrecision"`
	EntropyFitness     decimal.Decimal `json:"entropyFitness"`
	EntropyPrecision   decimal.Decimal `json:"entropyPrecision"`
}

type Client struct {
	base   string
	http   *http.Client
	codec  *pnml.Service
	logger *zap.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: DefaultTimeout},
		codec:  &pnml.Service{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	PNML   string       `json:"pnml"`
	Log    eventlog.Log `json:"log"`
	Family Family       `json:"family"`
}

func (c *Client) post(ctx context.Context, req *request, into interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/evaluate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("conformance service: %s: %s", res.Status, msg)
	}
	return json.NewDecoder(res.Body).Decode(into)
}

// Evaluate scores the net against the log with one metric family.
func (c *Client) Evaluate(ctx context.Context, n *magnet.Net, log eventlog.Log, family Family) (*Scores, error) {
	var buf bytes.Buffer
	if err := c.codec.Save(ctx, &buf, n); err != nil {
		return nil, err
	}
	var scores Scores
	if err := c.post(ctx, &request{PNML: buf.String(), Log: log, Family: family}, &scores); err != nil {
		return nil, err
	}
	c.logger.Info("evaluated model",
		zap.String("net", n.ID),
		zap.String("family", string(family)),
		zap.String("fitness", scores.Fitness.String()),
		zap.String("precision", scores.Precision.String()))
	return &scores, nil
}

// Report evaluates both metric families.
func (c *Client) Report(ctx context.Context, n *magnet.Net, log eventlog.Log) (*Report, error) {
	alignment, err := c.Evaluate(ctx, n, log, Alignment)
	if err != nil {
		return nil, err
	}
	entropy, err := c.Evaluate(ctx, n, log, Entropy)
	if err != nil {
		return nil, err
	}
	return &Report{
		AlignmentFitness:   alignment.Fitness,
		AlignmentPrecision: alignment.Precision,
		EntropyFitness:     entropy.Fitness,
		EntropyPrecision:   entropy.Precision,
	}, nil
}

// Package repository implements the record source against the Knack REST API.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/cityops/esb-relay/internal/errors"
	"github.com/cityops/esb-relay/internal/relay/domain"
)

// KnackConfig holds the credentials and endpoint for the Knack records API.
type KnackConfig struct {
	AppID   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// KnackRecordSource queries view-scoped records and writes single-field
// record updates through the Knack REST API.
type KnackRecordSource struct {
	config KnackConfig
	client *http.Client
	logger *slog.Logger
}

// NewKnackRecordSource creates a new KnackRecordSource.
func NewKnackRecordSource(config KnackConfig, logger *slog.Logger) *KnackRecordSource {
	return &KnackRecordSource{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// wire types for the Knack records API.
type knackFilter struct {
	Match string            `json:"match"`
	Rules []knackFilterRule `json:"rules"`
}

type knackFilterRule struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value,omitempty"`
}

type knackRecordsResponse struct {
	Records []map[string]any `json:"records"`
}

// Query fetches all records of the given view matching the filter conjunction.
func (s *KnackRecordSource) Query(
	ctx context.Context,
	viewID string,
	filter domain.Filter,
) ([]*domain.RawRecord, error) {
	filters := knackFilter{Match: "and"}
	for _, rule := range filter.Rules {
		filters.Rules = append(filters.Rules, knackFilterRule{
			Field:    rule.FieldID,
			Operator: string(rule.Operator),
			Value:    rule.Value,
		})
	}
	encodedFilters, err := json.Marshal(filters)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode record filters")
	}

	endpoint := fmt.Sprintf(
		"%s/views/%s/records?filters=%s",
		s.config.BaseURL,
		viewID,
		url.QueryEscape(string(encodedFilters)),
	)

	body, err := s.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("queried record source",
		slog.String("view", viewID),
		slog.Int("count", len(records)),
	)

	return records, nil
}

// Update writes a single field on one record of the given object. It sends
// only that field, so no other record value can be altered by a write-back.
func (s *KnackRecordSource) Update(ctx context.Context, objectID, recordID, fieldID, value string) error {
	payload, err := json.Marshal(map[string]string{fieldID: value})
	if err != nil {
		return apperrors.Wrap(err, "failed to encode record update")
	}

	endpoint := fmt.Sprintf("%s/objects/%s/records/%s", s.config.BaseURL, objectID, recordID)
	if _, err := s.do(ctx, http.MethodPut, endpoint, payload); err != nil {
		return err
	}

	return nil
}

// do performs one authenticated API call and returns the response body.
func (s *KnackRecordSource) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build record source request")
	}
	req.Header.Set("X-Knack-Application-Id", s.config.AppID)
	req.Header.Set("X-Knack-REST-API-Key", s.config.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConnection, err.Error())
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read record source response")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, apperrors.New(
			fmt.Sprintf("record source returned status %d: %s", res.StatusCode, body),
		)
	}

	return body, nil
}

// decodeRecords flattens API records into RawRecords. Numbers are decoded via
// json.Number so integer activity identifiers keep their exact formatting.
func decodeRecords(body []byte) ([]*domain.RawRecord, error) {
	var response knackRecordsResponse
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&response); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode record source response")
	}

	records := make([]*domain.RawRecord, 0, len(response.Records))
	for _, raw := range response.Records {
		record := &domain.RawRecord{Fields: make(map[string]string, len(raw))}
		for fieldID, value := range raw {
			record.Fields[fieldID] = stringifyValue(value)
		}
		record.ID = record.Fields["id"]
		records = append(records, record)
	}

	return records, nil
}

// stringifyValue renders a record value the way the templates expect: blanks
// for nulls, exact digits for numbers, and a plain rendering for anything else.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

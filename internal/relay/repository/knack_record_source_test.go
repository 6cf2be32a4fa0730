package repository

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityops/esb-relay/internal/relay/domain"
)

func newTestSource(url string) *KnackRecordSource {
	return NewKnackRecordSource(KnackConfig{
		AppID:   "app-1",
		APIKey:  "key-1",
		BaseURL: url,
		Timeout: 2 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestKnackRecordSourceQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("sends credentials and filter conjunction", func(t *testing.T) {
		var gotPath string
		var gotAppID, gotAPIKey string
		var gotFilters knackFilter
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAppID = r.Header.Get("X-Knack-Application-Id")
			gotAPIKey = r.Header.Get("X-Knack-REST-API-Key")
			require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("filters")), &gotFilters))
			_, _ = w.Write([]byte(`{"records": []}`))
		}))
		defer srv.Close()

		source := newTestSource(srv.URL)
		profile, err := domain.ProfileByName("data-tracker")
		require.NoError(t, err)

		records, err := source.Query(ctx, profile.ViewID, domain.ReadyToSendFilter(profile))
		require.NoError(t, err)
		assert.Empty(t, records)

		assert.Equal(t, "/views/view_1653/records", gotPath)
		assert.Equal(t, "app-1", gotAppID)
		assert.Equal(t, "key-1", gotAPIKey)
		assert.Equal(t, "and", gotFilters.Match)
		require.Len(t, gotFilters.Rules, 2)
		assert.Equal(t, "field_1868", gotFilters.Rules[0].Field)
		assert.Equal(t, "is not blank", gotFilters.Rules[0].Operator)
		assert.Equal(t, "field_1860", gotFilters.Rules[1].Field)
		assert.Equal(t, "is", gotFilters.Rules[1].Operator)
		assert.Equal(t, "READY_TO_SEND", gotFilters.Rules[1].Value)
	})

	t.Run("flattens record values to strings", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"records": [
				{"id": "rec-1", "field_1": 101, "field_2": "EMI-1", "field_3": null, "field_4": true}
			]}`))
		}))
		defer srv.Close()

		source := newTestSource(srv.URL)
		records, err := source.Query(ctx, "view_1", domain.Filter{})
		require.NoError(t, err)

		require.Len(t, records, 1)
		record := records[0]
		assert.Equal(t, "rec-1", record.ID)
		assert.Equal(t, "101", record.Field("field_1"))
		assert.Equal(t, "EMI-1", record.Field("field_2"))
		assert.Equal(t, "", record.Field("field_3"))
		assert.Equal(t, "true", record.Field("field_4"))
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("bad api key"))
		}))
		defer srv.Close()

		source := newTestSource(srv.URL)
		_, err := source.Query(ctx, "view_1", domain.Filter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "bad api key")
	})
}

func TestKnackRecordSourceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("puts exactly one field", func(t *testing.T) {
		var gotMethod, gotPath string
		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		source := newTestSource(srv.URL)
		err := source.Update(ctx, "object_75", "rec-1", "field_1860", "SENT")
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "/objects/object_75/records/rec-1", gotPath)
		assert.Equal(t, map[string]string{"field_1860": "SENT"}, gotBody)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		source := newTestSource(srv.URL)
		err := source.Update(ctx, "object_75", "rec-1", "field_1860", "SENT")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})
}

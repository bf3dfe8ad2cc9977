package database

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hr_records/internal/domain"
)

func newTestElastic(t *testing.T, handler http.HandlerFunc) *ElasticSearchClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	es, err := NewElasticSearchClient(srv.URL, elastic.SetHealthcheck(false))
	require.NoError(t, err)
	return es
}

func TestElasticSearchClient(t *testing.T) {
	ctx := context.Background()

	t.Run("IndexEmployee puts the document under its id", func(t *testing.T) {
		var gotPath, gotBody string
		es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"_index":"employees","_id":"7","result":"created"}`))
		})

		doc := NewEmployeeDoc(domain.Employee{ID: 7, Name: "Grace", Department: "R&D"})
		require.NoError(t, es.IndexEmployee(ctx, doc))
		assert.Equal(t, "/employees/_doc/7", gotPath)
		assert.Contains(t, gotBody, `"name":"Grace"`)
	})

	t.Run("DeleteEmployee ignores missing documents", func(t *testing.T) {
		es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"_index":"employees","_id":"9","result":"not_found"}`))
		})

		assert.NoError(t, es.DeleteEmployee(ctx, 9))
	})

	t.Run("SearchEmployees decodes hits", func(t *testing.T) {
		es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/_search"))
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.EqualValues(t, 5, body["size"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"hits":{"total":{"value":1,"relation":"eq"},"hits":[
				{"_index":"employees","_id":"1","_source":{"id":1,"name":"Alice","position":"Engineer"}}
			]}}`))
		})

		docs, err := es.SearchEmployees(ctx, "ali", 5)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, int64(1), docs[0].ID)
		assert.Equal(t, "Alice", docs[0].Name)
	})

	t.Run("BulkIndexEmployees with nothing to do skips the request", func(t *testing.T) {
		es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		})

		assert.NoError(t, es.BulkIndexEmployees(ctx, nil))
	})

	t.Run("BulkIndexEmployees reports failed items", func(t *testing.T) {
		es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"took":1,"errors":true,"items":[
				{"index":{"_index":"employees","_id":"1","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad field"}}}
			]}`))
		})

		err := es.BulkIndexEmployees(ctx, []EmployeeDoc{{ID: 1, Name: "Alice"}})
		assert.ErrorContains(t, err, "bad field")
	})
}

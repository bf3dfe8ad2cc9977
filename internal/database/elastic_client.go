package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/hr_records/internal/domain"
)

const employeeIndex = "employees"

// EmployeeDoc is the search-side projection of domain.Employee.
type EmployeeDoc struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Contact    string `json:"contact"`
}

// NewEmployeeDoc projects an employee onto its search document.
func NewEmployeeDoc(e domain.Employee) EmployeeDoc {
	return EmployeeDoc{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Contact:    e.Contact,
	}
}

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x.
func NewElasticSearchClient(url string, opts ...elastic.ClientOptionFunc) (*ElasticSearchClient, error) {
	options := append([]elastic.ClientOptionFunc{
		elastic.SetURL(url),
		elastic.SetSniff(false),
	}, opts...)

	client, err := elastic.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &ElasticSearchClient{client: client, index: employeeIndex}, nil
}

// IndexEmployee indexes an employee document using its id as document id.
func (es *ElasticSearchClient) IndexEmployee(ctx context.Context, emp EmployeeDoc) error {
	_, err := es.client.Index().
		Index(es.index).
		Id(strconv.FormatInt(emp.ID, 10)).
		BodyJson(emp).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index employee %d: %w", emp.ID, err)
	}
	return nil
}

// DeleteEmployee removes an employee document. A missing document is not an error.
func (es *ElasticSearchClient) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := es.client.Delete().
		Index(es.index).
		Id(strconv.FormatInt(id, 10)).
		Refresh("true").
		Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return nil
}

// SearchEmployees runs a prefix-tolerant match on name, position and department.
func (es *ElasticSearchClient) SearchEmployees(ctx context.Context, q string, limit int) ([]EmployeeDoc, error) {
	if limit <= 0 {
		limit = 100
	}
	query := elastic.NewMultiMatchQuery(q, "name^3", "position", "department").
		Type("phrase_prefix")

	searchResult, err := es.client.Search().
		Index(es.index).
		Query(query).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	docs := []EmployeeDoc{}
	for _, hit := range searchResult.Hits.Hits {
		var doc EmployeeDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode hit %s: %w", hit.Id, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// BulkIndexEmployees indexes many employees in one request.
func (es *ElasticSearchClient) BulkIndexEmployees(ctx context.Context, docs []EmployeeDoc) error {
	bulkRequest := es.client.Bulk()
	for _, doc := range docs {
		bulkRequest = bulkRequest.Add(elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(strconv.FormatInt(doc.ID, 10)).
			Doc(doc))
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if failed := bulkResponse.Failed(); len(failed) > 0 {
		reason := "unknown"
		if failed[0].Error != nil {
			reason = failed[0].Error.Reason
		}
		return fmt.Errorf("bulk index: %d of %d items failed, first: %s", len(failed), len(docs), reason)
	}
	return nil
}

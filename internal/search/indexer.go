// Package search upserts normalized listings into the search index, one
// document per row, keyed by the listing id.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgtype"

	"listing-pipeline/internal/listing"
)

// Indexer bulk-indexes listing documents into a single index.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

// NewIndexer returns an Indexer targeting the given index.
func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	return &Indexer{client: client, index: index}
}

// Document flattens a listing into its search document: upper-cased column
// names mapping to plain JSON values. Date fields are stringified as
// YYYY-MM-DD and PROPERTY_TYPE gets a final sentinel scrub; NULL fields
// become JSON null.
func Document(l listing.Listing) map[string]any {
	doc := make(map[string]any, len(listing.Columns))
	for i, v := range l.Values() {
		doc[strings.ToUpper(listing.Columns[i])] = docValue(v)
	}

	if s, ok := doc["PROPERTY_TYPE"].(string); ok {
		if scrubbed := listing.ScrubSentinel(s); scrubbed == "" {
			doc["PROPERTY_TYPE"] = nil
		} else {
			doc["PROPERTY_TYPE"] = scrubbed
		}
	}

	return doc
}

func docValue(v any) any {
	switch f := v.(type) {
	case pgtype.Text:
		if !f.Valid {
			return nil
		}
		return f.String
	case pgtype.Int8:
		if !f.Valid {
			return nil
		}
		return f.Int64
	case pgtype.Numeric:
		if !f.Valid {
			return nil
		}
		f8, err := f.Float64Value()
		if err != nil || !f8.Valid {
			return nil
		}
		return f8.Float64
	case pgtype.Date:
		if !f.Valid {
			return nil
		}
		return f.Time.Format("2006-01-02")
	default:
		return nil
	}
}

// BulkBody renders the NDJSON bulk request for the given listings. Rows
// without an id are skipped; there is nothing to upsert by. Returns the
// body and the number of actions it contains.
func BulkBody(index string, listings []listing.Listing) ([]byte, int, error) {
	var buf bytes.Buffer
	actions := 0

	for _, l := range listings {
		if !l.ID.Valid {
			continue
		}

		meta := map[string]map[string]string{
			"index": {"_index": index, "_id": l.ID.String},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return nil, 0, fmt.Errorf("search: encoding bulk meta: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(Document(l)); err != nil {
			return nil, 0, fmt.Errorf("search: encoding document %s: %w", l.ID.String, err)
		}
		actions++
	}

	return buf.Bytes(), actions, nil
}

// bulkResponse is the subset of the bulk API response needed to detect
// rejected documents.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// Index upserts one document per listing. Returns the number of documents
// indexed. A partial rejection is reported as a single error carrying the
// rejected count and the first reason; there is no per-document retry.
func (ix *Indexer) Index(ctx context.Context, listings []listing.Listing) (int, error) {
	body, actions, err := BulkBody(ix.index, listings)
	if err != nil {
		return 0, err
	}
	if actions == 0 {
		return 0, nil
	}

	res, err := ix.client.Bulk(
		bytes.NewReader(body),
		ix.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("search: bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, fmt.Errorf("search: bulk request failed: %s: %s", res.Status(), msg)
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("search: decoding bulk response: %w", err)
	}

	if !parsed.Errors {
		return actions, nil
	}

	rejected := 0
	firstReason := ""
	for _, item := range parsed.Items {
		for _, result := range item {
			if result.Error != nil || result.Status >= 300 {
				rejected++
				if firstReason == "" && result.Error != nil {
					firstReason = fmt.Sprintf("%s: %s", result.Error.Type, result.Error.Reason)
				}
			}
		}
	}
	return actions - rejected, fmt.Errorf("search: bulk rejected %d of %d documents (first: %s)",
		rejected, actions, firstReason)
}

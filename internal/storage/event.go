// Package storage fetches uploaded objects from the object store and
// decodes the bucket notifications that trigger a run.
package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Event identifies one uploaded object: the bucket it landed in and its key.
type Event struct {
	Bucket string
	Key    string
}

// notification mirrors the object-created payload the bucket delivers.
// Only the addressing fields are declared.
type notification struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// DecodeEvent parses an object-created notification and returns the first
// record's bucket and key. Keys arrive percent-encoded (spaces as "+"), so
// the key is decoded before use.
func DecodeEvent(payload []byte) (Event, error) {
	var n notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return Event{}, fmt.Errorf("storage: decoding event: %w", err)
	}
	if len(n.Records) == 0 {
		return Event{}, fmt.Errorf("storage: event has no records")
	}

	record := n.Records[0]
	if record.S3.Bucket.Name == "" || record.S3.Object.Key == "" {
		return Event{}, fmt.Errorf("storage: event record missing bucket or key")
	}

	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		key = record.S3.Object.Key
	}

	return Event{Bucket: record.S3.Bucket.Name, Key: key}, nil
}

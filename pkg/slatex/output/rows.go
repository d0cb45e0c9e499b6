package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

// Container describes how a row list was stored in a JSON file, so the
// rows can be written back in the same shape.
type Container struct {
	// Kind is "array" for a bare list, or the key holding the list.
	Kind string
	doc  *models.Record
}

// KindArray marks a file whose top level is the row list.
const KindArray = "array"

// ContainerKeys are the object keys searched for a row list, in order.
var ContainerKeys = []string{"rows", "players", "data"}

// ReadRows loads a JSON row list: a bare array of objects, or an object
// holding the list under one of ContainerKeys. Non-object entries are
// skipped.
func ReadRows(path string) ([]*models.Record, Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Container{}, err
	}
	return ParseRows(data)
}

// ParseRows is ReadRows on in-memory data.
func ParseRows(data []byte) ([]*models.Record, Container, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, Container{}, fmt.Errorf("parse rows: %w", err)
		}
		rows := make([]*models.Record, 0, len(raw))
		for _, m := range raw {
			if rec, ok := decodeRecord(m); ok {
				rows = append(rows, rec)
			}
		}
		return rows, Container{Kind: KindArray}, nil
	}

	doc := models.NewRecord()
	if err := json.Unmarshal(trimmed, doc); err != nil {
		return nil, Container{}, fmt.Errorf("parse rows: %w", err)
	}
	for _, key := range ContainerKeys {
		v, ok := doc.Get(key)
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		rows := make([]*models.Record, 0, len(list))
		for _, item := range list {
			if rec, ok := item.(*models.Record); ok {
				rows = append(rows, rec)
			}
		}
		return rows, Container{Kind: key, doc: doc}, nil
	}
	return []*models.Record{}, Container{Kind: "unknown", doc: doc}, nil
}

func decodeRecord(m json.RawMessage) (*models.Record, bool) {
	t := bytes.TrimSpace(m)
	if len(t) == 0 || t[0] != '{' {
		return nil, false
	}
	rec := models.NewRecord()
	if err := json.Unmarshal(t, rec); err != nil {
		return nil, false
	}
	return rec, true
}

// Wrap returns the document to write for rows: the rows themselves for an
// array or unknown container, else the original object with its list
// replaced.
func (c Container) Wrap(rows []*models.Record) any {
	if c.doc == nil || c.Kind == KindArray || c.Kind == "unknown" {
		return rows
	}
	doc := c.doc.Clone()
	doc.Set(c.Kind, rows)
	return doc
}

// WriteRows writes rows back to path in the shape described by c.
func WriteRows(path string, rows []*models.Record, c Container, pretty bool) error {
	return WriteJSON(path, c.Wrap(rows), pretty)
}

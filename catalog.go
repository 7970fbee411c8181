package margin

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains functions to read catalog items, the only input the
// catalog search provides to the ledger.

// CatalogItem is a product found in the catalog.
type CatalogItem struct {
	Code           string              `json:"code"`
	Name           string              `json:"name"`
	ReferencePrice decimal.NullDecimal `json:"referencePrice"`
}

// ImportCatalog reads catalog items from 'r' in the import format.
//
// The import format is a JSONL file, where each line is a JSON object with
// the properties 'code', 'name' and optionally 'referencePrice' (a number).
// Empty lines are ignored.
func ImportCatalog(r io.Reader) ([]CatalogItem, error) {
	var items []CatalogItem
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(strings.TrimSpace(string(text))) == 0 {
			continue
		}
		var item CatalogItem
		if err := json.Unmarshal(text, &item); err != nil {
			return nil, fmt.Errorf("cannot parse catalog line %d %q: %w", line, string(text), err)
		}
		if item.Code == "" {
			return nil, fmt.Errorf("catalog line %d: missing code", line)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}
	return items, nil
}

// CatalogQuery locates catalog items in an arbitrary JSON document.
//
// Items is evaluated on the document and must return a list; the other paths
// are evaluated on each item.
type CatalogQuery struct {
	Items          string
	Code           string
	Name           string
	ReferencePrice string
}

// DefaultCatalogQuery reads documents like {"items":[{"code":..., "name":..., "referencePrice":...}]}.
var DefaultCatalogQuery = CatalogQuery{
	Items:          "$.items[*]",
	Code:           "$.code",
	Name:           "$.name",
	ReferencePrice: "$.referencePrice",
}

// ImportCatalogJSON reads catalog items from a JSON document using jsonpath
// expressions. Items without a code are reported in the returned error, the
// others are still returned.
func ImportCatalogJSON(r io.Reader, q CatalogQuery) ([]CatalogItem, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse catalog document: %w", err)
	}

	jval, err := jsonpath.Get(q.Items, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", q.Items, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q must select a list, got %T", q.Items, jval)
	}

	items := make([]CatalogItem, 0, len(jlist))
	var errs error
	for i, jitem := range jlist {
		code, ok := pathString(q.Code, jitem)
		if !ok || code == "" {
			errs = errors.Join(errs, fmt.Errorf("item #%d: no code at %q", i, q.Code))
			continue
		}
		item := CatalogItem{Code: code}
		item.Name, _ = pathString(q.Name, jitem)
		if q.ReferencePrice != "" {
			item.ReferencePrice = pathValue(q.ReferencePrice, jitem)
		}
		items = append(items, item)
	}
	return items, errs
}

// pathGet evaluates path on v, keeping only the first result when jsonpath
// returns a list for a single value.
func pathGet(path string, v any) (any, bool) {
	if path == "" {
		return nil, false
	}
	jval, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, false
	}
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, false
		}
		jval = jlist[0]
	}
	return jval, jval != nil
}

func pathString(path string, v any) (string, bool) {
	jval, ok := pathGet(path, v)
	if !ok {
		return "", false
	}
	switch t := jval.(type) {
	case string:
		return t, true
	case float64:
		return decimal.NewFromFloat(t).String(), true
	default:
		return fmt.Sprint(t), true
	}
}

func pathValue(path string, v any) decimal.NullDecimal {
	jval, ok := pathGet(path, v)
	if !ok {
		return Absent
	}
	switch t := jval.(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(t))
	case string:
		return ParseValue(t)
	default:
		return Absent
	}
}

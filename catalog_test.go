package margin

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestImportCatalog(t *testing.T) {
	input := `{"code":"A","name":"Widget","referencePrice":10}

{"code":"B","name":"Gadget"}
{"code":"C","referencePrice":2.5}
`
	got, err := ImportCatalog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCatalog() error = %v", err)
	}
	want := []CatalogItem{
		{Code: "A", Name: "Widget", ReferencePrice: V(10)},
		{Code: "B", Name: "Gadget"},
		{Code: "C", ReferencePrice: V(2.5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ImportCatalog() mismatch (-want +got):\n%s", diff)
	}
}

func TestImportCatalog_Errors(t *testing.T) {
	for _, tc := range []struct {
		name, input, wantErr string
	}{
		{"missing code", `{"code":"A"}` + "\n" + `{"name":"nameless"}`, "line 2: missing code"},
		{"invalid json", `{"code":`, "line 1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ImportCatalog(strings.NewReader(tc.input))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("ImportCatalog() error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestImportCatalogJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		query   CatalogQuery
		want    []CatalogItem
		wantErr bool
	}{
		{
			name:  "default query",
			input: `{"items":[{"code":"A","name":"Widget","referencePrice":10},{"code":"B"}]}`,
			query: DefaultCatalogQuery,
			want: []CatalogItem{
				{Code: "A", Name: "Widget", ReferencePrice: V(10)},
				{Code: "B"},
			},
		},
		{
			name: "custom query",
			input: `{"data":{"products":[
				{"sku":1001,"title":"Widget","pricing":{"list":"12.50"}},
				{"sku":"X-2","title":"Gadget","pricing":{}}
			]}}`,
			query: CatalogQuery{
				Items:          "$.data.products[*]",
				Code:           "$.sku",
				Name:           "$.title",
				ReferencePrice: "$.pricing.list",
			},
			want: []CatalogItem{
				{Code: "1001", Name: "Widget", ReferencePrice: V(12.5)},
				{Code: "X-2", Name: "Gadget"},
			},
		},
		{
			name:  "items without a code are reported",
			input: `{"items":[{"name":"nameless"},{"code":"A"}]}`,
			query: DefaultCatalogQuery,
			want: []CatalogItem{
				{Code: "A"},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ImportCatalogJSON(strings.NewReader(tc.input), tc.query)
			if (err != nil) != tc.wantErr {
				t.Errorf("ImportCatalogJSON() error = %v, wantErr %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ImportCatalogJSON() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportCatalogJSON_NotAList(t *testing.T) {
	_, err := ImportCatalogJSON(strings.NewReader(`{"items":{"code":"A"}}`), CatalogQuery{Items: "$.items", Code: "$.code"})
	if err == nil {
		t.Error("ImportCatalogJSON() of a non list succeeded")
	}
}

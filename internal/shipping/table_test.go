package shipping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeMappingFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shipping_mapping.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return path
}

func TestLoadTable(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantLen int
		errStr  string
	}{
		{
			name: "well formed file",
			content: "Dokan_method,price,SKU\n" +
				"PostNL,6.95,SHIP-NL\n" +
				"PostNL,13.90,SHIP-EU\n" +
				"DHL Express,25.00,SHIP-WORLD\n",
			wantLen: 3,
		},
		{
			name: "same method at two prices is two entries",
			content: "Dokan_method,price,SKU\n" +
				"PostNL,6.95,SHIP-NL\n" +
				"PostNL,0,SHIP-FREE\n",
			wantLen: 2,
		},
		{
			name:    "missing header column",
			content: "Dokan_method,price\nPostNL,6.95\n",
			errStr:  "header must name Dokan_method, price and SKU",
		},
		{
			name: "invalid price",
			content: "Dokan_method,price,SKU\n" +
				"PostNL,cheap,SHIP-NL\n",
			errStr: `invalid price "cheap"`,
		},
		{
			name: "empty method",
			content: "Dokan_method,price,SKU\n" +
				",6.95,SHIP-NL\n",
			errStr: "empty Dokan_method",
		},
		{
			name: "empty sku",
			content: "Dokan_method,price,SKU\n" +
				"PostNL,6.95,\n",
			errStr: "empty SKU",
		},
		{
			name: "duplicate method and price",
			content: "Dokan_method,price,SKU\n" +
				"PostNL,6.95,SHIP-NL\n" +
				"PostNL,6.95,SHIP-OTHER\n",
			errStr: "duplicate mapping for PostNL at 6.95",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := LoadTable(writeMappingFile(t, tt.content))

			if tt.errStr != "" {
				assert.ErrorContains(t, err, tt.errStr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantLen, table.Len())
		})
	}
}

func TestTableLookup(t *testing.T) {
	table, err := LoadTable(writeMappingFile(t,
		"Dokan_method,price,SKU\n"+
			"PostNL,6.95,SHIP-NL\n"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	sku, ok := table.Lookup("PostNL", 6.95)
	assert.True(t, ok)
	assert.Equal(t, "SHIP-NL", sku)

	_, ok = table.Lookup("PostNL", 7.95)
	assert.False(t, ok, "same method at an unmapped price must miss")

	_, ok = table.Lookup("DHL Express", 6.95)
	assert.False(t, ok)
}

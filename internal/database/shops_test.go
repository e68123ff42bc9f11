package database

import (
	"strings"
	"testing"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"chai":     "%chai%",
		"_":        `%\_%`,
		"100%":     `%100\%%`,
		`back\`:    `%back\\%`,
		"a_b%c":    `%a\_b\%c%`,
		"Café 24x": "%Café 24x%",
	}
	for q, want := range tests {
		assert.Equal(t, want, containsPattern(q), q)
	}
}

func TestShopsQuery(t *testing.T) {
	query, args := shopsQuery(models.ShopFilter{})
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)

	query, args = shopsQuery(models.ShopFilter{Query: "_", Cuisine: "Indian", OpenOnly: true})
	assert.Contains(t, query, `s.name ILIKE $1 ESCAPE '\'`)
	assert.Contains(t, query, "lower(s.cuisine) = lower($2)")
	assert.Contains(t, query, "s.is_open")
	assert.True(t, strings.HasSuffix(query, " ORDER BY s.name"))
	assert.Equal(t, []interface{}{`%\_%`, "Indian"}, args)
}

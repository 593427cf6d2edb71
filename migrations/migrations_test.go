package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- header
CREATE TABLE a (
  id INT64,
) PRIMARY KEY (id);

-- second
CREATE INDEX idx ON a(id);
`
	got := SplitDDLStatements(content)
	assert.Equal(t, []string{
		"CREATE TABLE a (\nid INT64,\n) PRIMARY KEY (id)",
		"CREATE INDEX idx ON a(id)",
	}, got)
}

func TestEmbedded(t *testing.T) {
	migs, err := Embedded()
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, "001_initial_schema.sql", migs[0].Name)

	var tables []string
	for _, stmt := range migs[0].Statements {
		if strings.HasPrefix(stmt, "CREATE TABLE ") {
			tables = append(tables, strings.Fields(stmt)[2])
		}
	}
	assert.Equal(t, []string{"products", "product_attributes", "outbox_events"}, tables)
}

package dialect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedq/internal/querydoc"
	"github.com/roach88/typedq/internal/sqlrep"
)

// TestGolden_QueryDocuments compiles every fixture document for every
// engine and compares the rendered SQL and argument lists against the
// golden files.
func TestGolden_QueryDocuments(t *testing.T) {
	entries, err := os.ReadDir(filepath.Join("testdata", "queries"))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", "queries", entry.Name()))
			require.NoError(t, err)

			doc, err := querydoc.Parse(data)
			require.NoError(t, err)

			q, err := doc.Build()
			require.NoError(t, err)

			g.Assert(t, name, []byte(renderAll(t, q)))
		})
	}
}

// renderAll produces one block per engine, in stable engine order, so a
// golden diff pins both the SQL text and the bound argument order.
func renderAll(t *testing.T, q *sqlrep.Query) string {
	t.Helper()
	var sb strings.Builder
	for i, d := range Engines() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sql, args, err := New(d).Compile(q)
		require.NoError(t, err)
		fmt.Fprintf(&sb, "-- %s\n%s\nargs: %v\n", d.Name(), sql, args)
	}
	return sb.String()
}

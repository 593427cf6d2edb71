// Package migrations embeds the Spanner DDL files applied by cmd/migrate.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Migration is one DDL file split into statements.
type Migration struct {
	Name       string
	Statements []string
}

// Embedded returns the migrations compiled into the binary, in file name order.
func Embedded() ([]Migration, error) {
	return load(files, ".")
}

// FromDir reads *.sql files from dir, in file name order.
func FromDir(dir string) ([]Migration, error) {
	return load(os.DirFS(dir), ".")
}

func load(fsys fs.FS, dir string) ([]Migration, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	slices.Sort(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Name:       path.Base(name),
			Statements: SplitDDLStatements(string(content)),
		})
	}

	return migrations, nil
}

// SplitDDLStatements drops comment lines and splits content on semicolons.
func SplitDDLStatements(content string) []string {
	// Remove comments and empty lines
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	content = strings.Join(cleaned, "\n")

	// Split by semicolon
	statements := strings.Split(content, ";")
	var result []string
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}

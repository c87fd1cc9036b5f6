package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalizeCmd(t *testing.T) {
	out, err := execute(t, "normalize", "1.5L", "6 PCS", "family size")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "1500milliliter")
	assert.Contains(t, lines[1], "6piece")
	assert.Contains(t, lines[2], "unknown")
}

func TestNormalizeCmd_RequiresArgs(t *testing.T) {
	_, err := execute(t, "normalize")
	assert.Error(t, err)
}

func TestImportThenResolve(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "catalogue.db")
	rowsPath := filepath.Join(dir, "rows.yaml")

	rows := `
- name: Cola
  brand: Acme
  quantity: 500ml
  feature: zero, can
- name: Cola
  brand: Acme
  quantity: 1L
  feature: bottle
- name: ""
  brand: Acme
- name: cola
  brand: ACME
  quantity: 500ML
  feature: Zero, Can
`
	require.NoError(t, os.WriteFile(rowsPath, []byte(rows), 0o644))

	out, err := execute(t, "--driver", "sqlite", "--dsn", dsn, "import", rowsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows: 2 created, 1 existing, 1 invalid")

	out, err = execute(t, "--driver", "sqlite", "--dsn", dsn, "import", rowsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows: 0 created, 3 existing, 1 invalid")

	out, err = execute(t, "--driver", "sqlite", "--dsn", dsn,
		"resolve", "--brand", "acme", "--item", "COLA", "--quantity", "0.5 l", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "exact match:")
	assert.Contains(t, out, "suggested features: [can zero]")

	out, err = execute(t, "--driver", "sqlite", "--dsn", dsn,
		"resolve", "--brand", "Acme", "--item", "Cola", "--feature", "bottle", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"exactId": "`)
	assert.Contains(t, out, `"quantity": "1L"`)
}

func TestResolveCmd_ValidationError(t *testing.T) {
	_, err := execute(t, "resolve", "--brand", "Acme", "--item", "Cola", "--strict")
	assert.ErrorIs(t, err, domain.ErrQuantityRequiredInStrictMode)
}

func TestImportCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "import", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMigrateCmd(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "catalogue.db")

	out, err := execute(t, "--driver", "sqlite", "--dsn", dsn, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date (sqlite)")

	_, err = os.Stat(dsn)
	assert.NoError(t, err)
}

func TestRootCmd_InvalidDriver(t *testing.T) {
	_, err := execute(t, "--driver", "mongo", "normalize", "1l")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store driver")
}

func TestImportSummary(t *testing.T) {
	yes, no := true, false
	var s importSummary
	s.add([]domain.BatchRowResult{
		{OK: true, ID: "a", Existed: &no},
		{OK: true, ID: "b", Existed: &yes},
		{OK: false, Error: domain.CodeNameAndBrandRequired},
		{OK: true, ID: "c", Existed: &no},
	})
	assert.Equal(t, importSummary{Created: 2, Existing: 1, Invalid: 1}, s)
}

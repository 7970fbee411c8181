package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const exportJournal = `{"command":"add","code":"A","name":"Widget","referencePrice":10}
{"command":"set","code":"A","field":"price","value":12.5}
{"command":"add","code":"B","name":"Gadget"}
`

func TestExportCmdXLSX(t *testing.T) {
	setupApp(t, exportJournal)
	file := filepath.Join(t.TempDir(), "margins.xlsx")

	status := run(t, &exportCmd{}, "-o", file, "-title", "Spring")
	require.Equal(t, subcommands.ExitSuccess, status)

	wb, err := excelize.OpenFile(file)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Spring"}, wb.GetSheetList())
	formula, err := wb.GetCellFormula("Spring", "E2")
	require.NoError(t, err)
	assert.Equal(t, "IF(C2=0,0,(D2-C2)/C2*100)", formula)
}

func TestExportCmdPDF(t *testing.T) {
	setupApp(t, exportJournal)
	file := filepath.Join(t.TempDir(), "prices.out")

	status := run(t, &exportCmd{}, "-o", file, "-format", "pdf", "-cost")
	require.Equal(t, subcommands.ExitSuccess, status)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF", "output is not a PDF")
}

func TestExportCmdErrors(t *testing.T) {
	setupApp(t, exportJournal)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &exportCmd{}), "missing -o")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &exportCmd{}, "-o", "margins.csv"), "unknown format")
}

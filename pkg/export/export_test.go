package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Title:    "Alteration roster",
		Subtitle: "Leave request 5",
		Headers:  []string{"ID", "Subject", "Replacement"},
		Rows: [][]string{
			{"1", "Algorithms, Section A", "E2"},
			{"2", "Data Structures", ""},
		},
		Weights: []float64{1, 3, 2},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Subject,Replacement", lines[0])
	assert.Equal(t, `1,"Algorithms, Section A",E2`, lines[1])
}

func TestExportersRejectRaggedRows(t *testing.T) {
	data := rosterDataset()
	data.Rows = append(data.Rows, []string{"3"})
	_, err := NewCSVExporter().Render(data)
	require.Error(t, err)
	_, err = NewPDFExporter().Render(data)
	require.Error(t, err)

	_, err = NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := rosterDataset()
	data.Rows = append(data.Rows, []string{"3", strings.Repeat("Very long subject name ", 20), "E3"})
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty := rosterDataset()
	empty.Rows = nil
	out, err = NewPDFExporter().Render(empty)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestColumnWidths(t *testing.T) {
	widths := rosterDataset().columnWidths(60)
	assert.InDeltaSlice(t, []float64{10, 30, 20}, widths, 0.001)

	equal := Dataset{Headers: []string{"a", "b"}}.columnWidths(50)
	assert.InDeltaSlice(t, []float64{25, 25}, equal, 0.001)
}

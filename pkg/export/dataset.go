package export

import "fmt"

// Dataset is a titled table. Every row must have one value per header.
type Dataset struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
	// Weights sizes PDF columns relative to each other. Empty means equal widths.
	Weights []float64
}

// Validate checks the table shape.
func (d Dataset) Validate() error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("dataset requires at least one header")
	}
	if len(d.Weights) != 0 && len(d.Weights) != len(d.Headers) {
		return fmt.Errorf("dataset has %d weights for %d headers", len(d.Weights), len(d.Headers))
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(d.Headers))
		}
	}
	return nil
}

func (d Dataset) columnWidths(total float64) []float64 {
	widths := make([]float64, len(d.Headers))
	if len(d.Weights) == 0 {
		for i := range widths {
			widths[i] = total / float64(len(widths))
		}
		return widths
	}
	var sum float64
	for _, w := range d.Weights {
		sum += w
	}
	for i, w := range d.Weights {
		widths[i] = total * w / sum
	}
	return widths
}

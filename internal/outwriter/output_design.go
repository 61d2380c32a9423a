package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDesignResult outputs a generated block design, dispatching based on the output format configured.
func WriteDesignResult(design *schema.BlockDesign, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, design)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDesignCSV(w, design, fmtFloat)
		}, "CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for block designs")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDesignTable(w, design, cfg, fmtFloat, duration)
		}, "table")
	}
}

// writeDesignTable generates and writes the human-readable block table.
func writeDesignTable(w io.Writer, design *schema.BlockDesign, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	quality := "exact"
	if design.Approximate {
		quality = "approximate"
	}
	if _, err := fmt.Fprintf(w, "Design %s: %d blocks, exposure target %d, %s solution\n",
		design.Version, len(design.Blocks), design.ExposureTarget, quality); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Block", "Statement", "Facet", "Domain", "Desir", "Text"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxTextWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, block := range design.Blocks {
		for _, id := range block.StatementIDs {
			stmt, ok := design.StatementByID(id)
			if !ok {
				continue
			}
			data = append(data, []string{
				strconv.Itoa(block.ID),
				stmt.ID,
				string(stmt.Facet),
				string(stmt.Domain()),
				fmtFloat(stmt.Desirability),
				truncateText(stmt.Text, maxTextWidth),
			})
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Co-occurrence variance: %s\n", fmtFloat(design.Objective)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Generated in %v with %d search chains\n", duration, cfg.Chains); err != nil {
		return err
	}
	return nil
}

// writeDesignCSV writes the block design in CSV format, one row per block slot.
func writeDesignCSV(w io.Writer, design *schema.BlockDesign, fmtFloat func(float64) string) error {
	header := []string{
		"block_id",
		"position",
		"statement_id",
		"facet",
		"domain",
		"desirability",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, block := range design.Blocks {
			for pos, id := range block.StatementIDs {
				stmt, ok := design.StatementByID(id)
				if !ok {
					continue
				}
				rec := []string{
					strconv.Itoa(block.ID),
					strconv.Itoa(pos + 1),
					stmt.ID,
					string(stmt.Facet),
					string(stmt.Domain()),
					fmtFloat(stmt.Desirability),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

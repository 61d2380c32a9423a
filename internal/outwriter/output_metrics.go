package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// metricDefinition describes one balance metric for display.
type metricDefinition struct {
	Name        string `json:"name"`
	Range       string `json:"range"`
	Even        string `json:"even"`
	Description string `json:"description"`
}

// tierDefinition describes one tier band for display.
type tierDefinition struct {
	Name  string `json:"name"`
	Band  string `json:"band"`
	Usage string `json:"usage"`
}

// seedWeightDefinition is one facet/factor weight from the active table.
type seedWeightDefinition struct {
	Facet  string  `json:"facet"`
	Factor string  `json:"factor"`
	Weight float64 `json:"weight"`
}

// metricsRenderModel is the complete static definition set.
type metricsRenderModel struct {
	Metrics            []metricDefinition     `json:"metrics"`
	Tiers              []tierDefinition       `json:"tiers"`
	SeedWeightsVersion string                 `json:"seed_weights_version,omitempty"`
	SeedWeights        []seedWeightDefinition `json:"seed_weights,omitempty"`
}

// buildMetricsRenderModel assembles the metric and tier definitions, plus the
// active seed-weight table when a version is configured.
func buildMetricsRenderModel(seedVersion string) *metricsRenderModel {
	renderModel := baseMetricsRenderModel()

	if seedVersion != "" {
		if weights, err := schema.GetSeedWeights(seedVersion); err == nil {
			renderModel.SeedWeightsVersion = seedVersion
			for _, facet := range schema.AllFacets {
				for _, factor := range schema.AllFactors {
					if w, ok := weights[facet][factor]; ok {
						renderModel.SeedWeights = append(renderModel.SeedWeights, seedWeightDefinition{
							Facet:  string(facet),
							Factor: string(factor),
							Weight: w,
						})
					}
				}
			}
		}
	}
	return renderModel
}

func baseMetricsRenderModel() *metricsRenderModel {
	return &metricsRenderModel{
		Metrics: []metricDefinition{
			{
				Name:        "dbi",
				Range:       "[0, 1]",
				Even:        "1",
				Description: "Domain balance index: one minus the domain percentile variance scaled by the variance of a maximally uneven split",
			},
			{
				Name:        "relative_entropy",
				Range:       "[0, 1]",
				Even:        "1",
				Description: "Shannon entropy of the normalized domain percentiles divided by ln(4)",
			},
			{
				Name:        "gini",
				Range:       "[0, 1]",
				Even:        "0",
				Description: "Mean absolute difference between domain percentile pairs, normalized by twice the mean",
			},
		},
		Tiers: []tierDefinition{
			{
				Name:  contract.DominantValue,
				Band:  fmt.Sprintf("percentile > %d", schema.DominantThreshold),
				Usage: "Leading strengths to build on",
			},
			{
				Name:  contract.SupportingValue,
				Band:  fmt.Sprintf("%d <= percentile <= %d", schema.LesserThreshold, schema.DominantThreshold),
				Usage: "Reliable but situational strengths",
			},
			{
				Name:  contract.LesserValue,
				Band:  fmt.Sprintf("percentile < %d", schema.LesserThreshold),
				Usage: "Areas better managed through partnership",
			},
		},
	}
}

// WriteMetricsDefinitions displays the formal definitions of the balance
// metrics and tier bands. This is a static display that does not require a
// scored session.
func WriteMetricsDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(cfg.SeedWeightsVersion)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, renderModel)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, renderModel)
		}, "text")
	}
}

// writeMetricsText displays the definitions in human-readable text format.
func writeMetricsText(w io.Writer, renderModel *metricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "Balance Metrics\n===============\n\n"); err != nil {
		return err
	}
	for _, m := range renderModel.Metrics {
		if _, err := fmt.Fprintf(w, "%s: %s\n", m.Name, m.Description); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Range: %s (perfectly even profile scores %s)\n\n", m.Range, m.Even); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Tier Bands\n==========\n\n"); err != nil {
		return err
	}
	for _, tier := range renderModel.Tiers {
		if _, err := fmt.Fprintf(w, "%s: %s\n", tier.Name, tier.Band); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n\n", tier.Usage); err != nil {
			return err
		}
	}

	if len(renderModel.SeedWeights) > 0 {
		if _, err := fmt.Fprintf(w, "Seed Weights (version %s)\n=========================\n\n", renderModel.SeedWeightsVersion); err != nil {
			return err
		}
		for _, sw := range renderModel.SeedWeights {
			if _, err := fmt.Fprintf(w, "%s <- %s: %.2f\n", sw.Facet, sw.Factor, sw.Weight); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeMetricsCSV writes the definitions in CSV format.
func writeMetricsCSV(w io.Writer, renderModel *metricsRenderModel) error {
	header := []string{"kind", "name", "detail", "description"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, m := range renderModel.Metrics {
			if err := csvWriter.Write([]string{"metric", m.Name, m.Range, m.Description}); err != nil {
				return err
			}
		}
		for _, tier := range renderModel.Tiers {
			if err := csvWriter.Write([]string{"tier", tier.Name, tier.Band, tier.Usage}); err != nil {
				return err
			}
		}
		for _, sw := range renderModel.SeedWeights {
			row := []string{"seed-weight", sw.Facet, sw.Factor, fmt.Sprintf("%.2f", sw.Weight)}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// Package main provides a performance benchmarking tool for the strengths
// scoring core. It times the block designer across pool sizes and the
// estimator across respondent counts, running each configuration several
// times and averaging, generating CSV output for performance analysis and
// documentation.
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/design"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/irt"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

const (
	runsPerConfig = 5
	designBudget  = 2 * time.Second
)

func main() {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"component", "config", "avg_ms", "runs"}); err != nil {
		fail(err)
	}

	for _, perFacet := range []int{1, 2, 4} {
		pool := syntheticPool(perFacet)
		avg, err := timeDesigner(pool, perFacet)
		if err != nil {
			fail(err)
		}
		row := []string{
			"designer",
			fmt.Sprintf("pool=%d exposure=%d chains=%d", len(pool), perFacet, runtime.GOMAXPROCS(0)),
			fmt.Sprintf("%.2f", avg),
			fmt.Sprintf("%d", runsPerConfig),
		}
		if err := w.Write(row); err != nil {
			fail(err)
		}
	}

	d, calib, err := benchmarkInstrument()
	if err != nil {
		fail(err)
	}
	for _, respondents := range []int{1, 10, 100} {
		avg, err := timeEstimator(d, calib, respondents)
		if err != nil {
			fail(err)
		}
		row := []string{
			"estimator",
			fmt.Sprintf("blocks=%d respondents=%d", len(d.Blocks), respondents),
			fmt.Sprintf("%.2f", avg),
			fmt.Sprintf("%d", runsPerConfig),
		}
		if err := w.Write(row); err != nil {
			fail(err)
		}
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "benchmark failed: %v\n", err)
	os.Exit(1)
}

// syntheticPool builds perFacet statements for each of the twelve facets with
// staggered desirability ratings.
func syntheticPool(perFacet int) []schema.Statement {
	var pool []schema.Statement
	for fi, facet := range schema.AllFacets {
		for c := range perFacet {
			pool = append(pool, schema.Statement{
				ID:           fmt.Sprintf("%s-%d", facet, c),
				Text:         fmt.Sprintf("benchmark statement %d for %s", c, facet),
				Facet:        facet,
				Desirability: 4.0 + 0.05*float64((fi+c)%4),
			})
		}
	}
	return pool
}

func timeDesigner(pool []schema.Statement, exposure int) (avgMillis float64, err error) {
	var total time.Duration
	for run := range runsPerConfig {
		start := time.Now()
		_, err := design.Generate(&design.Request{
			Pool:           pool,
			Version:        "bench",
			ExposureTarget: exposure,
			Budget:         designBudget,
			Seed:           int64(run + 1),
		})
		if err != nil {
			return 0, err
		}
		total += time.Since(start)
	}
	return float64(total.Milliseconds()) / runsPerConfig, nil
}

// benchmarkInstrument generates the fixed design and calibration used for the
// estimator timings.
func benchmarkInstrument() (*schema.BlockDesign, *schema.CalibrationSet, error) {
	pool := syntheticPool(4)
	d, err := design.Generate(&design.Request{
		Pool:           pool,
		Version:        "bench",
		ExposureTarget: 4,
		Budget:         designBudget,
		Seed:           42,
	})
	if err != nil {
		return nil, nil, err
	}

	calib := &schema.CalibrationSet{
		Version:    "bench",
		Statements: d.Statements,
		Params:     make(map[string]schema.ItemParameter, len(d.Statements)),
	}
	for i, s := range d.Statements {
		calib.Params[s.ID] = schema.ItemParameter{
			StatementID:    s.ID,
			Discrimination: 1.0 + 0.1*float64(i%3),
			Location:       -0.2 + 0.1*float64(i%5),
		}
	}
	return d, calib, nil
}

func timeEstimator(d *schema.BlockDesign, calib *schema.CalibrationSet, respondents int) (avgMillis float64, err error) {
	rng := rand.New(rand.NewSource(7))
	sessions := make([][]schema.BlockResponse, respondents)
	for i := range sessions {
		sessions[i] = randomResponses(d, rng)
	}

	var total time.Duration
	for range runsPerConfig {
		start := time.Now()
		for _, responses := range sessions {
			if _, err := irt.Fit(&irt.Request{
				Design:    d,
				Calib:     calib,
				Responses: responses,
			}); err != nil {
				return 0, err
			}
		}
		total += time.Since(start)
	}
	return float64(total.Milliseconds()) / runsPerConfig, nil
}

// randomResponses answers every block with a random most/least pair.
func randomResponses(d *schema.BlockDesign, rng *rand.Rand) []schema.BlockResponse {
	responses := make([]schema.BlockResponse, 0, len(d.Blocks))
	for _, block := range d.Blocks {
		most := rng.Intn(len(block.StatementIDs))
		least := rng.Intn(len(block.StatementIDs) - 1)
		if least >= most {
			least++
		}
		responses = append(responses, schema.BlockResponse{
			BlockID: block.ID,
			MostID:  block.StatementIDs[most],
			LeastID: block.StatementIDs[least],
		})
	}
	return responses
}

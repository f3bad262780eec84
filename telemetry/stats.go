// Package telemetry summarizes and exports generated mode tables.
package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/turbstir/stir"
)

// ModeRecord is one generated driving mode in export form. Unused wavevector
// components stay zero below three dimensions.
type ModeRecord struct {
	Index     int     `csv:"index"`
	Kx        float64 `csv:"kx"`
	Ky        float64 `csv:"ky"`
	Kz        float64 `csv:"kz"`
	K         float64 `csv:"k"`
	Amplitude float64 `csv:"amplitude"`
}

// ModeRecords flattens the valid entries of the table into export records.
func ModeRecords(t *stir.ModeTable) []ModeRecord {
	records := make([]ModeRecord, t.ModeCount)
	for i := 0; i < t.ModeCount; i++ {
		m := t.Mode(i)
		rec := ModeRecord{
			Index:     i,
			Kx:        m[0],
			K:         floats.Norm(m, 2),
			Amplitude: t.Amplitudes[i],
		}
		if t.NDim > 1 {
			rec.Ky = m[1]
		}
		if t.NDim > 2 {
			rec.Kz = m[2]
		}
		records[i] = rec
	}
	return records
}

// SpectrumStats holds aggregated statistics for one generation run.
type SpectrumStats struct {
	ModeCount       int     `csv:"mode_count"`
	TotalCandidates int     `csv:"total_candidates"`
	Truncated       bool    `csv:"truncated"`
	Variance        float64 `csv:"variance"`
	SolWeight       float64 `csv:"sol_weight"`

	// Wavenumber distribution of the written modes
	KMin  float64 `csv:"k_min"`
	KMax  float64 `csv:"k_max"`
	KMean float64 `csv:"k_mean"`

	// Amplitude distribution
	AmpMean float64 `csv:"amp_mean"`
	AmpStd  float64 `csv:"amp_std"`
	AmpP10  float64 `csv:"amp_p10"`
	AmpP50  float64 `csv:"amp_p50"`
	AmpP90  float64 `csv:"amp_p90"`
}

// Summarize aggregates a generation run into a SpectrumStats record.
func Summarize(t *stir.ModeTable, rep stir.Report) SpectrumStats {
	s := SpectrumStats{
		ModeCount:       t.ModeCount,
		TotalCandidates: rep.TotalCandidates,
		Truncated:       rep.Truncated,
		Variance:        t.Variance,
		SolWeight:       t.SolWeight,
	}
	if t.ModeCount == 0 {
		return s
	}

	ks := make([]float64, t.ModeCount)
	for i := range ks {
		ks[i] = floats.Norm(t.Mode(i), 2)
	}
	s.KMin = floats.Min(ks)
	s.KMax = floats.Max(ks)
	s.KMean = stat.Mean(ks, nil)

	amps := append([]float64(nil), t.Amplitudes[:t.ModeCount]...)
	s.AmpMean = stat.Mean(amps, nil)
	if t.ModeCount > 1 {
		s.AmpStd = stat.StdDev(amps, nil)
	}
	sort.Float64s(amps)
	s.AmpP10 = stat.Quantile(0.10, stat.Empirical, amps, nil)
	s.AmpP50 = stat.Quantile(0.50, stat.Empirical, amps, nil)
	s.AmpP90 = stat.Quantile(0.90, stat.Empirical, amps, nil)

	return s
}

// ShellBin aggregates modes sharing an integer wavenumber shell.
type ShellBin struct {
	Shell    int     `csv:"shell"`
	Count    int     `csv:"count"`
	AmpMean  float64 `csv:"amp_mean"`
	AmpTotal float64 `csv:"amp_total"` // sum of amplitude^2, ~ injected power
}

// BinShells groups records into integer shells ik = round(k*lx/2pi), sorted
// by shell index. Records are typically read back from a modes.csv.
func BinShells(records []ModeRecord, lx float64) []ShellBin {
	byShell := make(map[int]*ShellBin)
	for _, rec := range records {
		ik := int(rec.K*lx/(2*math.Pi) + 0.5)
		bin, ok := byShell[ik]
		if !ok {
			bin = &ShellBin{Shell: ik}
			byShell[ik] = bin
		}
		bin.Count++
		bin.AmpMean += rec.Amplitude
		bin.AmpTotal += rec.Amplitude * rec.Amplitude
	}

	bins := make([]ShellBin, 0, len(byShell))
	for _, bin := range byShell {
		bin.AmpMean /= float64(bin.Count)
		bins = append(bins, *bin)
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Shell < bins[j].Shell })
	return bins
}

package analysis

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteReport renders a summary as the plain-text report.
//
// The layout follows the long-standing AhoyDTU analysis output: a static
// curves section ("No static curves found." when empty), descriptive
// statistics for dynamic curves at two decimal places, and a trailing
// listing of non-numeric curves when any exist. Rounding to two decimals is
// purely presentational; Summary carries full precision.
//
// Parameters:
//   - w: Destination (stdout or an output file)
//   - summary: Analysis result from Summarize
//
// Returns:
//   - error: First write failure, or nil
func WriteReport(w io.Writer, summary Summary) error {
	if len(summary.Static) == 0 {
		if _, err := fmt.Fprintln(w, "No static curves found."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Static curves (constant values):"); err != nil {
			return err
		}
		for _, curve := range summary.Static {
			_, err := fmt.Fprintf(w, "%s: %s (recorded at %s)\n",
				curve.Field,
				formatValue(curve.Value),
				curve.FirstSeen.Format(time.RFC3339),
			)
			if err != nil {
				return err
			}
		}
	}

	if len(summary.Dynamic) > 0 {
		if _, err := fmt.Fprintln(w, "\nDescriptive statistics for dynamic curves:"); err != nil {
			return err
		}
		for _, stats := range summary.Dynamic {
			_, err := fmt.Fprintf(w,
				"\n%s:\n  Count: %d\n  Mean: %.2f\n  Std Dev: %.2f\n  Median: %.2f\n  Min: %.2f\n  Max: %.2f\n",
				stats.Field, stats.Count, stats.Mean, stats.StdDev, stats.Median, stats.Min, stats.Max,
			)
			if err != nil {
				return err
			}
		}
	}

	if len(summary.NonNumeric) > 0 {
		if _, err := fmt.Fprintln(w, "\nNon-numeric curves:"); err != nil {
			return err
		}
		for _, p := range summary.NonNumeric {
			if _, err := fmt.Fprintf(w, "%s: %d observations\n", p.Field, p.Count); err != nil {
				return err
			}
		}
	}

	return nil
}

// formatValue renders a static curve value without trailing float noise.
func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/LoadPlanner/internal/engine"
	"github.com/piwi3910/LoadPlanner/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printCatalog(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tLENGTH cm\tWIDTH cm\tHEIGHT cm\tVOLUME m3\tMAX kg")
	for _, c := range model.ContainerSpecs() {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%.0f\t%.2f\t%.0f\n",
			c.ID, c.Type, c.Length, c.Width, c.Height, c.Volume()/1e6, c.MaxWeight)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, result model.OptimizationResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tCONTAINER\tITEMS\tVOLUME %\tWEIGHT %\tFREE m3\tFREE kg")
	for _, p := range result.Plans {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.1f\t%.1f\t%.2f\t%.0f\n",
			p.Index, p.Title(), len(p.Items), p.VolumeUtilization, p.WeightUtilization,
			p.RemainingVolume/1e6, p.RemainingWeight)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nContainers: %d  Utilization: %.1f%%  Loaded: %d units, %.0f kg\n",
		result.ContainerCount, result.Utilization, result.PlacedUnits(), result.TotalWeight())

	if len(result.UnplacedItems) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\nNot loaded (%d units):\n", result.UnplacedUnits())
	tw = newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDIMENSIONS cm\tkg\tQTY")
	for _, it := range result.UnplacedItems {
		fmt.Fprintf(tw, "%s\t%s\t%.0fx%.0fx%.0f\t%.0f\t%d\n",
			it.ID, it.Name, it.Length, it.Width, it.Height, it.Weight, it.Quantity)
	}
	return tw.Flush()
}

func printComparison(w io.Writer, results []engine.ComparisonResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SCENARIO\tCONTAINERS\tLOADED\tNOT LOADED\tUTILIZATION %\tEMPTY m3")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\t%.2f\n",
			r.Scenario.Name, r.ContainersUsed, r.PlacedUnits, r.UnplacedUnits,
			r.Utilization, r.WastedVolume/1e6)
	}
	return tw.Flush()
}

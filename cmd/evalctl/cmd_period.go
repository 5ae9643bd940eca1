package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/services"
)

const dateLayout = "2006-01-02"

func runPeriodCreate(cmd *cobra.Command, args []string) error {
	start, err := time.Parse(dateLayout, periodStart)
	if err != nil {
		return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse(dateLayout, periodEnd)
	if err != nil {
		return fmt.Errorf("--end must be YYYY-MM-DD: %w", err)
	}

	_, svc, err := connect()
	if err != nil {
		return err
	}
	period, err := svc.Periods.Create(cmd.Context(), services.CreatePeriodInput{
		ID:        periodID,
		Name:      args[0],
		Semester:  periodSem,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return err
	}
	fmt.Printf("✅ Period %s created, status %s\n", period.ID, period.Status)
	return nil
}

func runPeriodClose(cmd *cobra.Command, args []string) error {
	_, svc, err := connect()
	if err != nil {
		return err
	}
	period, err := svc.Periods.ForceClose(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("🔒 Period %s closed at %s\n", period.ID, period.ClosedAt.Format(time.RFC3339))
	return nil
}

func runPeriodList(cmd *cobra.Command, _ []string) error {
	_, svc, err := connect()
	if err != nil {
		return err
	}
	periods, err := svc.Periods.List(cmd.Context())
	if err != nil {
		return err
	}
	return printPeriods(os.Stdout, periods)
}

func printPeriods(out io.Writer, periods []models.EvaluationPeriod) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEMESTER\tSTART\tEND\tSTATUS")
	for _, p := range periods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Semester, p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout), p.Status)
	}
	return w.Flush()
}

// Command evalctl administers a course evaluation deployment: seeding
// criteria and directory data, managing periods and printing reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/course-evaluator/internal/app"
	"alfredoptarigan/course-evaluator/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:          "evalctl",
		Short:        "Administer the course evaluation service",
		SilenceUsage: true,
	}

	seedCriteriaCmd = &cobra.Command{
		Use:   "seed-criteria [file.yaml]",
		Short: "Replace criteria catalogs with the ones in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeedCriteria, // cmd_seed.go
	}
	seedDirectoryCmd = &cobra.Command{
		Use:   "seed-directory [file.yaml]",
		Short: "Upsert colleges, classes, courses, offerings and users from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeedDirectory, // cmd_seed.go
	}

	periodCmd = &cobra.Command{
		Use:   "period",
		Short: "Manage evaluation periods",
	}
	periodCreateCmd = &cobra.Command{
		Use:   "create [name]",
		Short: "Create an evaluation period",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeriodCreate, // cmd_period.go
	}
	periodCloseCmd = &cobra.Command{
		Use:   "close [period-id]",
		Short: "Close a period before its end date",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeriodClose, // cmd_period.go
	}
	periodListCmd = &cobra.Command{
		Use:   "list",
		Short: "List periods with their current status",
		Args:  cobra.NoArgs,
		RunE:  runPeriodList, // cmd_period.go
	}

	reportCmd = &cobra.Command{
		Use:       "report [teachers|courses|classes|colleges|participation|distribution]",
		Short:     "Print statistics for a period",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"teachers", "courses", "classes", "colleges", "participation", "distribution"},
		RunE:      runReport, // cmd_report.go
	}
)

var (
	periodID    string
	periodSem   string
	periodStart string
	periodEnd   string
	reportCSV   bool
	reportRank  bool
)

func init() {
	periodCreateCmd.Flags().StringVar(&periodID, "id", "", "period id (generated when empty)")
	periodCreateCmd.Flags().StringVar(&periodSem, "semester", "", "semester the period evaluates")
	periodCreateCmd.Flags().StringVar(&periodStart, "start", "", "first day, YYYY-MM-DD")
	periodCreateCmd.Flags().StringVar(&periodEnd, "end", "", "last day, YYYY-MM-DD")
	_ = periodCreateCmd.MarkFlagRequired("semester")
	_ = periodCreateCmd.MarkFlagRequired("start")
	_ = periodCreateCmd.MarkFlagRequired("end")
	periodCmd.AddCommand(periodCreateCmd, periodCloseCmd, periodListCmd)

	reportCmd.Flags().StringVar(&periodID, "period", "", "period id")
	reportCmd.Flags().BoolVar(&reportRank, "ranked", false, "apply the minimum sample thresholds (teachers and courses)")
	reportCmd.Flags().BoolVar(&reportCSV, "csv", false, "also write the report under EXPORT_PATH")
	_ = reportCmd.MarkFlagRequired("period")

	rootCmd.AddCommand(seedCriteriaCmd, seedDirectoryCmd, periodCmd, reportCmd)
}

// connect loads configuration and builds the store and services every
// command uses.
func connect() (*app.Repositories, *app.Services, error) {
	cfg := config.Load()
	repos, err := app.OpenRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}
	return repos, app.NewServices(cfg, repos, nil), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

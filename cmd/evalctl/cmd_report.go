package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/course-evaluator/internal/app"
	"alfredoptarigan/course-evaluator/internal/stats"
)

func runReport(cmd *cobra.Command, args []string) error {
	_, svc, err := connect()
	if err != nil {
		return err
	}
	return report(cmd.Context(), os.Stdout, svc, args[0])
}

func report(ctx context.Context, out io.Writer, svc *app.Services, kind string) error {
	switch kind {
	case "colleges":
		colleges, err := svc.Statistics.ByCollege(ctx, periodID)
		if err != nil {
			return err
		}
		return printColleges(out, colleges)
	case "participation":
		overall, byCollege, err := svc.Statistics.Participation(ctx, periodID)
		if err != nil {
			return err
		}
		return printParticipation(out, append([]stats.Participation{overall}, byCollege...))
	case "distribution":
		d, err := svc.Statistics.Distribution(ctx, periodID)
		if err != nil {
			return err
		}
		return printDistribution(out, d)
	}

	groups, err := groupReport(ctx, svc, kind)
	if err != nil {
		return err
	}
	if err := printGroups(out, groups); err != nil {
		return err
	}
	if reportCSV {
		name, err := svc.Exports.WriteGroupReport(periodID+"_"+kind, groups)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "💾 Written %s\n", name)
	}
	return nil
}

func groupReport(ctx context.Context, svc *app.Services, kind string) ([]stats.GroupStat, error) {
	switch kind {
	case "teachers":
		if reportRank {
			return svc.Statistics.TeacherRanking(ctx, periodID)
		}
		return svc.Statistics.ByTeacher(ctx, periodID)
	case "courses":
		if reportRank {
			return svc.Statistics.CourseRanking(ctx, periodID)
		}
		return svc.Statistics.ByCourse(ctx, periodID)
	case "classes":
		return svc.Statistics.ByClass(ctx, periodID)
	}
	return nil, fmt.Errorf("unknown report %q", kind)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func printGroups(out io.Writer, groups []stats.GroupStat) error {
	w := newTable(out)
	fmt.Fprintln(w, "RANK\tKEY\tNAME\tCOUNT\tAVERAGE\tMIN\tMAX\tGRADE")
	for i, g := range groups {
		rank := g.Rank
		if rank == 0 {
			rank = i + 1
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
			rank, g.Key, g.Name, g.Count, g.Average, g.Min, g.Max, g.Grade)
	}
	return w.Flush()
}

func printColleges(out io.Writer, colleges []stats.CollegeStat) error {
	w := newTable(out)
	fmt.Fprintln(w, "KEY\tNAME\tCOUNT\tAVERAGE\tGRADE\tTEACHERS\tCOURSES\tPER TEACHER\tPER COURSE")
	for _, c := range colleges {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\t%d\t%d\t%.2f\t%.2f\n",
			c.Key, c.Name, c.Count, c.Average, c.Grade, c.TeacherCount, c.CourseCount,
			c.EvaluationsPerTeacher, c.EvaluationsPerCourse)
	}
	return w.Flush()
}

func printParticipation(out io.Writer, ps []stats.Participation) error {
	w := newTable(out)
	fmt.Fprintln(w, "SCOPE\tPARTICIPATED\tTOTAL\tRATE")
	for _, p := range ps {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", p.Scope, p.Participated, p.Total, p.Rate)
	}
	return w.Flush()
}

func printDistribution(out io.Writer, d stats.Distribution) error {
	w := newTable(out)
	fmt.Fprintln(w, "GRADE\tCOUNT\tPERCENT")
	for _, b := range d.Buckets {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", b.Grade, b.Count, b.Percent)
	}
	fmt.Fprintf(w, "TOTAL\t%d\t\n", d.Total)
	return w.Flush()
}

// Package cli renders dashboard views for the terminal.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/services/calendar"
	"InflationPanel/internal/services/stats"
	"InflationPanel/internal/usecase"
	"InflationPanel/pkg/util"
)

// Views lists the names accepted by Options.View.
var Views = []string{"latest", "extremes", "period", "yearly", "heatmap", "differential", "chart", "table", "report"}

type Options struct {
	View   string
	Format string // table or json
	Source string
	Mode   string
	TF     string
	Period string
	From   string
	N      int
	Now    time.Time
}

// Render builds one view from dash and writes it to w.
func Render(ctx context.Context, dash *usecase.Dashboard, opts Options, w io.Writer) error {
	view, err := build(ctx, dash, opts)
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeTable(tw, view)
	return tw.Flush()
}

func build(ctx context.Context, dash *usecase.Dashboard, opts Options) (interface{}, error) {
	src := models.ParseSource(opts.Source)
	mode := models.ParseMode(opts.Mode)
	tf := domrepo.NormalizeTimeframe(opts.TF)
	period := domrepo.NormalizePeriod(opts.Period)

	switch opts.View {
	case "latest":
		return dash.Latest(ctx, mode)
	case "extremes":
		return dash.Extremes(ctx, src, tf, opts.Now)
	case "period":
		return dash.PeriodAverages(ctx, src, tf, opts.Now)
	case "yearly":
		return dash.Yearly(ctx, period, opts.Now)
	case "heatmap":
		return dash.Heatmap(ctx, src, period, opts.Now)
	case "differential":
		return dash.Differential(ctx, mode, tf, opts.Now)
	case "chart":
		from := stats.DefaultChartStart
		if opts.From != "" {
			ym, ok := calendar.ParseMonthYear(opts.From)
			if !ok {
				return nil, fmt.Errorf("unrecognized month %q", opts.From)
			}
			from = ym.Timestamp()
		}
		return dash.MonthlyChart(ctx, from)
	case "table":
		return dash.Table(ctx, tf, opts.N, opts.Now)
	case "report":
		return dash.Report(ctx)
	default:
		return nil, fmt.Errorf("unknown view %q, want one of %s", opts.View, strings.Join(Views, ", "))
	}
}

func writeTable(w io.Writer, view interface{}) {
	switch v := view.(type) {
	case models.LatestFigures:
		fmt.Fprintf(w, "source\tlatest\ttrend\t\n")
		for _, src := range models.Sources {
			lt := v.By[src]
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", src, util.Percent(lt.Latest), util.SignedPercent(lt.TrendDelta))
		}
		fmt.Fprintf(w, "as of\t%s\t\t\n", v.Date)
	case models.Extremes:
		fmt.Fprintf(w, "source\t%s\t\t\n", v.Source)
		fmt.Fprintf(w, "highest\t%s\t\t\n", extreme(v.Highest))
		fmt.Fprintf(w, "lowest\t%s\t\t\n", extreme(v.Lowest))
	case models.PeriodAverages:
		fmt.Fprintf(w, "crisis\t%s\t\n", util.Percent(v.CrisisAvg))
		fmt.Fprintf(w, "pre-crisis\t%s\t\n", util.Percent(v.PreCrisisAvg))
		fmt.Fprintf(w, "delta\t%s\t\n", util.SignedPercent(v.Delta))
	case usecase.YearlyView:
		fmt.Fprintf(w, "year\ttuik\tenag\tito\tcrisis\t\n")
		for _, y := range v.Years {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t\n", y.Year, util.Cell(y.TUIKAvg), util.Cell(y.ENAGAvg), util.Cell(y.ITOAvg), y.IsCrisisPeriod)
		}
		for _, src := range models.Sources {
			fmt.Fprintf(w, "%s crisis/pre\t%s\t%s\t\t\t\n", src, util.Percent(v.PeriodAverages.Crisis[src]), util.Percent(v.PeriodAverages.PreCrisis[src]))
		}
	case models.HeatmapMatrix:
		header := []string{"year"}
		for _, m := range calendar.ShortMonthNames {
			header = append(header, m)
		}
		fmt.Fprintf(w, "%s\tavg\t\n", strings.Join(header, "\t"))
		for _, y := range v.Years {
			row := []string{strconv.Itoa(y)}
			for _, c := range v.Cells[y] {
				row = append(row, util.Cell(c))
			}
			fmt.Fprintf(w, "%s\t%s\t\n", strings.Join(row, "\t"), util.Cell(v.YearlyAverages[y]))
		}
	case []models.DifferentialPoint:
		fmt.Fprintf(w, "date\tenag-tuik\t\n")
		for _, p := range v {
			fmt.Fprintf(w, "%s\t%s\t\n", p.Date, util.SignedPercent(p.Value))
		}
	case models.MonthlyChart:
		fmt.Fprintf(w, "date\ttuik\tenag\tito\t\n")
		for _, r := range v.Points {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", r.Date, util.Cell(r.TUIKMonthly), util.Cell(r.ENAGMonthly), util.Cell(r.ITOMonthly))
		}
		fmt.Fprintf(w, "y max\t%s\t\t\t\n", util.Fixed2(v.YMax))
	case usecase.TableView:
		fmt.Fprintf(w, "date\ttuik m\ttuik y\tenag m\tenag y\tito m\tito y\t\n")
		for _, r := range v.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", r.Date,
				util.Cell(r.TUIKMonthly), util.Cell(r.TUIKAnnual),
				util.Cell(r.ENAGMonthly), util.Cell(r.ENAGAnnual),
				util.Cell(r.ITOMonthly), util.Cell(r.ITOAnnual))
		}
		fmt.Fprintf(w, "last updated\t%s\t\t\t\t\t\t\n", v.LastUpdated)
	case models.AlignReport:
		fmt.Fprintf(w, "strategy\t%s/%s\t\n", v.Strategy, v.GapPolicy)
		fmt.Fprintf(w, "records\t%d of %d\t\n", v.Output, v.BaseRecords)
		fmt.Fprintf(w, "matched ito\t%d\t\n", v.MatchedITO)
		fmt.Fprintf(w, "matched enag\t%d\t\n", v.MatchedENAG)
		fmt.Fprintf(w, "duplicates\t%d\t\n", v.Duplicates)
		fmt.Fprintf(w, "dropped\t%d\t\n", v.Dropped)
		fmt.Fprintf(w, "monotonic\t%t\t\n", v.Monotonic)
		for _, u := range v.Unrecognized {
			fmt.Fprintf(w, "unrecognized\t%s %q\t\n", u.Source, u.Value)
		}
	}
}

func extreme(p *models.ExtremePoint) string {
	if p == nil {
		return util.NotAvailable
	}
	return fmt.Sprintf("%s (%s)", util.Percent(&p.Value), p.Date)
}

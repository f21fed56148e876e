package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runger/itempicker/internal/picker"
	"github.com/runger/itempicker/internal/source"
	"github.com/runger/itempicker/internal/wheel"
)

var (
	dateDay     int
	dateMonth   int
	dateYear    int
	dateMinYear int
	dateMaxYear int
	dateFormat  string
)

// maxYearSpan bounds the year wheel.
const maxYearSpan = 10000

var dateCmd = &cobra.Command{
	Use:     "date",
	Short:   "Pick a date with day, month and year wheels",
	GroupID: groupPick,
	Long: `Show day, month and year wheels side by side and print the chosen
date. Tab and Shift+Tab move between wheels; Enter accepts all three.

A day past the end of the chosen month is moved back to its last day, so
31 Feb 2023 prints as 2023-02-28.

Examples:
  itempicker date
  itempicker date --day 1 --month 6 --year 1990 --format "02 Jan 2006"`,
	Args: cobra.NoArgs,
	RunE: runDate,
}

func init() {
	now := time.Now()
	dateCmd.Flags().IntVar(&dateDay, "day", now.Day(), "day to start on")
	dateCmd.Flags().IntVar(&dateMonth, "month", int(now.Month()), "month to start on (1-12)")
	dateCmd.Flags().IntVar(&dateYear, "year", now.Year(), "year to start on")
	dateCmd.Flags().IntVar(&dateMinYear, "min-year", now.Year()-100, "first year on the wheel")
	dateCmd.Flags().IntVar(&dateMaxYear, "max-year", now.Year()+20, "last year on the wheel")
	dateCmd.Flags().StringVar(&dateFormat, "format", time.DateOnly, "Go time layout for the output")
}

func runDate(cmd *cobra.Command, args []string) error {
	if dateMinYear > dateMaxYear {
		return fmt.Errorf("--min-year %d is after --max-year %d", dateMinYear, dateMaxYear)
	}
	if uint64(dateMaxYear)-uint64(dateMinYear) > maxYearSpan {
		return fmt.Errorf("--min-year and --max-year are more than %d years apart", maxYearSpan)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	opts := wheel.OptionsFromConfig(s.cfg.Wheel)
	opts.Logger = s.logger

	final, err := s.run(newDateGroup(opts, s.cfg.Wheel.ShowHelp))
	if err != nil {
		return err
	}
	return printDateResult(cmd.OutOrStdout(), final)
}

// monthItems names the months; the identity is the month number.
func monthItems() []picker.Item {
	items := make([]picker.Item, 0, 12)
	for m := time.January; m <= time.December; m++ {
		items = append(items, picker.Keyed{Label: m.String()[:3], Key: strconv.Itoa(int(m))})
	}
	return items
}

func newDateGroup(opts wheel.Options, showHelp bool) wheel.Group {
	day, month, year := opts, opts, opts
	day.Title = "Day"
	month.Title = "Month"
	year.Title = "Year"

	return wheel.NewGroup(showHelp,
		wheel.New(source.Range{Start: 1, End: 31}, strconv.Itoa(dateDay), day),
		wheel.New(source.NewStatic(monthItems()), strconv.Itoa(dateMonth), month),
		wheel.New(source.Range{Start: dateMinYear, End: dateMaxYear}, strconv.Itoa(dateYear), year),
	)
}

// printDateResult formats the three confirmed wheels as one date.
func printDateResult(w io.Writer, final tea.Model) error {
	g, ok := final.(wheel.Group)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	if g.IsCancelled() {
		return errCancelled
	}
	res := g.Results()
	if len(res) != 3 {
		return errCancelled
	}

	var parts [3]int
	for i, it := range res {
		v, err := strconv.Atoi(it.Identity())
		if err != nil {
			return fmt.Errorf("unexpected wheel value %q", it.Identity())
		}
		parts[i] = v
	}
	day, month, year := parts[0], time.Month(parts[1]), parts[2]
	day = min(day, daysIn(month, year))

	_, err := fmt.Fprintln(w, time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateFormat))
	return err
}

// daysIn returns the number of days in month of year.
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runger/itempicker/internal/picker"
	"github.com/runger/itempicker/internal/source"
	"github.com/runger/itempicker/internal/wheel"
)

var (
	numberStart int
	numberEnd   int
	numberStep  int
	numberValue int
	numberTitle string
)

// maxNumberItems bounds the number wheel.
const maxNumberItems = 1_000_000

var numberCmd = &cobra.Command{
	Use:     "number",
	Short:   "Pick an integer from a range",
	GroupID: groupPick,
	Long: `Show a scroll wheel over start..end (inclusive) and print the chosen
integer. A start above end counts down.

Examples:
  itempicker number --start 1 --end 10
  itempicker number --start 0 --end 100 --step 5 --value 50`,
	Args: cobra.NoArgs,
	RunE: runNumber,
}

func init() {
	numberCmd.Flags().IntVar(&numberStart, "start", 0, "first value")
	numberCmd.Flags().IntVar(&numberEnd, "end", 100, "last value")
	numberCmd.Flags().IntVar(&numberStep, "step", 0, "distance between values (default 1, or -1 when counting down)")
	numberCmd.Flags().IntVar(&numberValue, "value", 0, "value to start on (default --start)")
	numberCmd.Flags().StringVar(&numberTitle, "title", "", "line shown above the wheel")
}

func runNumber(cmd *cobra.Command, args []string) error {
	r, initial, err := numberRange(cmd.Flags().Changed("value"))
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	opts := wheel.OptionsFromConfig(s.cfg.Wheel)
	opts.Title = numberTitle
	opts.Logger = s.logger
	opts.OnChange = picker.IntChange(func(v int) {
		s.logger.Debug("number changed", "value", v)
	})

	final, err := s.run(wheel.New(r, strconv.Itoa(initial), opts))
	if err != nil {
		return err
	}
	return printWheelResult(cmd.OutOrStdout(), final)
}

// numberRange validates the flags and returns the provider and the value to
// start on. An initial value outside the range starts on the first value.
func numberRange(valueSet bool) (source.Range, int, error) {
	r := source.Range{Start: numberStart, End: numberEnd, Step: numberStep}
	if r.Step == 0 {
		r.Step = 1
		if r.Start > r.End {
			r.Step = -1
		}
	}

	if n := rangeLen(r); n > maxNumberItems {
		return r, 0, fmt.Errorf("range has %d values, more than %d", n, maxNumberItems)
	}

	items, err := picker.NumberRangeStep(r.Start, r.End, r.Step)
	if err != nil {
		return r, 0, fmt.Errorf("--step: %w", err)
	}
	if len(items) == 0 {
		return r, 0, errors.New("--step points away from --end; the range is empty")
	}

	value := numberStart
	if valueSet {
		value = numberValue
	}
	sel, err := picker.NewNumberSelector(items, value, nil)
	if err != nil {
		return r, 0, err
	}
	return r, sel.Value(), nil
}

// rangeLen counts the values in r without building them. It is 0 when the
// step points away from the end.
func rangeLen(r source.Range) uint64 {
	switch {
	case r.Step > 0 && r.Start <= r.End:
		return (uint64(r.End)-uint64(r.Start))/uint64(r.Step) + 1
	case r.Step < 0 && r.Start >= r.End:
		return (uint64(r.Start)-uint64(r.End))/-uint64(r.Step) + 1
	default:
		return 0
	}
}

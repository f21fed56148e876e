package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runger/itempicker/internal/config"
	"github.com/runger/itempicker/internal/source"
	"github.com/runger/itempicker/internal/wheel"
)

var (
	pickItems           string
	pickList            string
	pickFile            string
	pickValue           string
	pickTitle           string
	pickAllowDuplicates bool
)

// errNoItems is returned when no item source is given and stdin is a
// terminal.
var errNoItems = errors.New("no items: pass arguments, --items, --list, --file, or pipe lines on stdin")

var pickCmd = &cobra.Command{
	Use:     "pick [items...]",
	Short:   "Pick one item from a list",
	GroupID: groupPick,
	Long: `Show a scroll wheel over a list of items and print the chosen one.

Items are taken from exactly one of:
  arguments             itempicker pick red green blue
  --items               itempicker pick --items "red 'light green' blue"
  --list                a named list from the config file (lists.<name>)
  --file                one item per line; Ctrl+R re-reads the file
  stdin                 one item per line when nothing else is given

Repeated items are rejected unless --allow-duplicates is set.

Exit status is 0 when an item was chosen, 1 when the picker was cancelled
and 2 when the picker could not run.`,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVar(&pickItems, "items", "", "shell-quoted list of items")
	pickCmd.Flags().StringVar(&pickList, "list", "", "name of a list from the config file")
	pickCmd.Flags().StringVarP(&pickFile, "file", "f", "", "read items from a file, one per line")
	pickCmd.Flags().StringVar(&pickValue, "value", "", "item to start on")
	pickCmd.Flags().StringVar(&pickTitle, "title", "", "line shown above the wheel")
	pickCmd.Flags().BoolVar(&pickAllowDuplicates, "allow-duplicates", false, "keep repeated items")
}

func runPick(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	provider, err := pickProvider(cmd.InOrStdin(), s.cfg, args)
	if err != nil {
		return err
	}

	opts := wheel.OptionsFromConfig(s.cfg.Wheel)
	opts.Title = pickTitle
	opts.Logger = s.logger

	final, err := s.run(wheel.New(provider, pickValue, opts))
	if err != nil {
		return err
	}
	return printWheelResult(cmd.OutOrStdout(), final)
}

// pickProvider chooses the item source from args and flags.
func pickProvider(stdin io.Reader, cfg *config.Config, args []string) (source.Provider, error) {
	given := 0
	for _, set := range []bool{len(args) > 0, pickItems != "", pickList != "", pickFile != ""} {
		if set {
			given++
		}
	}
	if given > 1 {
		return nil, errors.New("give items as arguments, --items, --list or --file, not several")
	}

	var labels []string
	switch {
	case len(args) > 0:
		for _, a := range args {
			labels = append(labels, source.Clean(a))
		}

	case pickItems != "":
		words, err := source.Words(pickItems)
		if err != nil {
			return nil, fmt.Errorf("--items: %w", err)
		}
		labels = words

	case pickList != "":
		list, ok := cfg.Lists[pickList]
		if !ok {
			return nil, fmt.Errorf("unknown list %q (see itempicker config)", pickList)
		}
		words, err := source.Words(list)
		if err != nil {
			return nil, fmt.Errorf("lists.%s: %w", pickList, err)
		}
		labels = words

	case pickFile != "":
		return source.FileLines(pickFile, pickAllowDuplicates), nil

	default:
		if isTerminal(stdin) {
			return nil, errNoItems
		}
		p, err := source.ReaderLines(stdin, pickAllowDuplicates)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	items, err := source.Labels(labels, pickAllowDuplicates)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errNoItems
	}
	return source.NewStatic(items), nil
}

// isTerminal reports whether r is an interactive terminal rather than a
// pipe or file.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// printWheelResult writes the chosen item of a finished wheel.
func printWheelResult(w io.Writer, final tea.Model) error {
	m, ok := final.(wheel.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	if m.IsCancelled() {
		return errCancelled
	}
	it, ok := m.Result()
	if !ok {
		if err := m.Err(); err != nil {
			return err
		}
		return errCancelled
	}
	_, err := fmt.Fprintln(w, it.DisplayText())
	return err
}

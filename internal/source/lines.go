package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/runger/itempicker/internal/picker"
)

// maxLineLen bounds a single input line.
const maxLineLen = 64 * 1024

// Lines reads one item per line. Open is called on every Fetch so a reload
// picks up changes to a file.
type Lines struct {
	Open func() (io.ReadCloser, error)

	// AllowDuplicates keeps repeated lines as distinct items. Repeats get a
	// derived identity; the first occurrence keeps its text as identity.
	// Without it a repeated line is an error.
	AllowDuplicates bool
}

var _ Provider = (*Lines)(nil)

// FileLines reads items from path.
func FileLines(path string, allowDuplicates bool) *Lines {
	return &Lines{
		Open:            func() (io.ReadCloser, error) { return os.Open(path) },
		AllowDuplicates: allowDuplicates,
	}
}

// ReaderLines reads items from r once; later fetches return the same items.
func ReaderLines(r io.Reader, allowDuplicates bool) (*Static, error) {
	items, err := readLines(context.Background(), r, allowDuplicates)
	if err != nil {
		return nil, err
	}
	return NewStatic(items), nil
}

// Fetch opens the input and parses it.
func (l *Lines) Fetch(ctx context.Context, req Request) (Response, error) {
	rc, err := l.Open()
	if err != nil {
		return Response{}, fmt.Errorf("lines provider: open: %w", err)
	}
	defer rc.Close()

	items, err := readLines(ctx, rc, l.AllowDuplicates)
	if err != nil {
		return Response{}, err
	}
	return Response{RequestID: req.RequestID, Items: items}, nil
}

func readLines(ctx context.Context, r io.Reader, allowDuplicates bool) ([]picker.Item, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLen)

	var labels []string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := Clean(strings.TrimRight(sc.Text(), "\r"))
		if strings.TrimSpace(line) == "" {
			continue
		}
		labels = append(labels, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lines provider: read: %w", err)
	}

	items, err := Labels(labels, allowDuplicates)
	if err != nil {
		return nil, fmt.Errorf("lines provider: %w", err)
	}
	return items, nil
}

// repeatSpace is the UUID namespace for identities of repeated labels.
var repeatSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("itempicker:repeat"))

// Labels turns labels into text items. A repeated label is an error unless
// allowDuplicates is set, in which case the first occurrence keeps its text
// as identity and the nth repeat gets a UUID derived from the label and n,
// so the same input always yields the same identities.
func Labels(labels []string, allowDuplicates bool) ([]picker.Item, error) {
	items := make([]picker.Item, 0, len(labels))
	seen := make(map[string]int, len(labels))
	for _, label := range labels {
		n := seen[label]
		switch {
		case n == 0:
			items = append(items, picker.Text(label))
		case allowDuplicates:
			items = append(items, picker.Keyed{Label: label, Key: repeatKey(label, n)})
		default:
			return nil, fmt.Errorf("%w: %q", picker.ErrDuplicateIdentity, label)
		}
		seen[label] = n + 1
	}
	return items, nil
}

func repeatKey(label string, n int) string {
	return uuid.NewSHA1(repeatSpace, []byte(strconv.Itoa(n)+"\x00"+label)).String()
}

package shake

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Feed reads accelerometer samples from r, one "x y z" triple per line
// (commas also separate), and passes each to d stamped with now(). Blank
// lines and lines starting with # are skipped. The first sample read is a
// fresh baseline; d forgets earlier history. Feed returns nil when r is
// exhausted and ctx.Err() once ctx is done.
func Feed(ctx context.Context, r io.Reader, d *Detector, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	d.Reset()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		x, y, z, err := parseSample(text)
		if err != nil {
			return fmt.Errorf("sample line %d: %w", line, err)
		}
		d.Sample(x, y, z, now())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}
	return nil
}

func parseSample(text string) (x, y, z float64, err error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("want 3 values, got %d", len(fields))
	}

	var vals [3]float64
	for i, f := range fields {
		vals[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parsing %q: %w", f, err)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

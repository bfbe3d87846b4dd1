// SPDX-License-Identifier: EPL-2.0

package shell

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/sound"
)

func writeStatus(w io.Writer, st engine.Status) {
	fmt.Fprintf(w, "%s %s:\n", st.Name, st.ID)

	switch st.State {
	case sound.Playing:
		fmt.Fprintln(w, "\tplaying")
	case sound.Paused:
		fmt.Fprintln(w, "\tpaused")
	default:
		fmt.Fprintln(w, "\tnot playing")
	}
	if st.State != sound.Stopped {
		fmt.Fprintf(w, "\thas been playing for: %s\n", st.Elapsed.Truncate(time.Second))
	}

	fmt.Fprintf(w, "\tvolume: %s%%\n", percent(st.Volume))
	if st.Looping {
		fmt.Fprintf(w, "\tloops: every %s\n", st.LoopPeriod)
	}
	if st.ClipStart > 0 {
		fmt.Fprintf(w, "\tstarts at: %s\n", st.ClipStart)
	}
	if st.Clipped {
		fmt.Fprintf(w, "\tends at: %s\n", st.ClipEnd)
	}
	if st.Delay > 0 {
		fmt.Fprintf(w, "\tdelay: %s\n", st.Delay)
	}
	if len(st.Groups) > 0 {
		fmt.Fprintf(w, "\tgroups: %s\n", strings.Join(st.Groups, ", "))
	}
	if st.Err != nil {
		fmt.Fprintf(w, "\terror: %v\n", st.Err)
	}
}

// writeErrors prints one line per unresolved token and failed target.
func writeErrors(w io.Writer, res engine.Result) {
	for _, tok := range res.Unresolved {
		if tok == "" {
			fmt.Fprintln(w, "error: no sounds, add one first")
			continue
		}
		fmt.Fprintf(w, "error: nothing matches %q\n", tok)
	}
	for _, o := range res.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "error: %v\n", o.Err)
		}
	}
}

// percent renders a gain as a percentage with at most two decimals.
func percent(gain float64) string {
	return strconv.FormatFloat(math.Round(gain*10000)/100, 'f', -1, 64)
}

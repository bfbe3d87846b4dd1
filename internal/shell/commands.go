// SPDX-License-Identifier: EPL-2.0

package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/ik5/soundscape/engine"
	"github.com/spf13/cobra"
)

const selectNote = "Without IDs the last added sound is selected. An ID is a name, a number, a group or 'all'."

// commands builds the command tree for one line.
func (sh *Shell) commands() *cobra.Command {
	root := &cobra.Command{
		Use:           "soundscape",
		Short:         "A simple audio looping application for the creation of soundscapes.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(sh.out)
	root.SetErr(sh.out)

	root.AddCommand(
		sh.addCmd(),
		sh.removeCmd(),
		sh.showCmd(),
		sh.transportCmd("play", "Plays sounds.", sh.eng.Play),
		sh.transportCmd("stop", "Stops sounds and resets them to the start.", sh.eng.Stop),
		sh.transportCmd("pause", "Pauses sounds.", sh.eng.Pause),
		sh.volumeCmd(),
		sh.loopCmd(),
		sh.transportCmd("unloop", "Turns off looping.", sh.eng.Unloop),
		sh.setStartCmd(),
		sh.setEndCmd(),
		sh.delayCmd(),
		sh.groupCmd("group", "Adds sounds to a group, creating it when needed.", sh.eng.Group),
		sh.groupCmd("ungroup", "Removes sounds from a group. Empty groups are deleted.", sh.eng.Ungroup),
		sh.saveCmd(),
		sh.loadCmd(),
		sh.waitCmd(),
		sh.exitCmd(),
	)
	return root
}

// selector reads the positional IDs and the -g flag.
func selector(cmd *cobra.Command, args []string) engine.Selector {
	groups, _ := cmd.Flags().GetStringSlice("group")
	return engine.Selector{Tokens: args, Groups: groups}
}

func selectionCmd(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [IDs]",
		Short: short,
		Long:  short + " " + selectNote,
		Args:  cobra.ArbitraryArgs,
	}
	cmd.Flags().StringSliceP("group", "g", nil, "select every sound in these groups")
	return cmd
}

// report prints the selection after a command and its failures.
func (sh *Shell) report(sel engine.Selector, res engine.Result) {
	sts, _ := sh.eng.Status(sel)
	for _, st := range sts {
		writeStatus(sh.out, st)
	}
	writeErrors(sh.out, res)
}

func (sh *Shell) addCmd() *cobra.Command {
	var path, name string
	cmd := &cobra.Command{
		Use:   "add -p PATH [-n NAME]",
		Short: "Adds a sound. It does not play until you call play.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			id, err := sh.eng.Add(path, name)
			if err != nil {
				fmt.Fprintf(sh.out, "error: %v\n", err)
				return nil
			}
			sh.report(engine.Select(id.String()), engine.Result{})
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "audio file")
	cmd.Flags().StringVarP(&name, "name", "n", "", "sound name, the file name by default")
	cmd.MarkFlagRequired("path")
	return cmd
}

func (sh *Shell) removeCmd() *cobra.Command {
	cmd := selectionCmd("remove", "Removes sounds from the soundscape.")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)

		sts, res := sh.eng.Status(sel)
		if len(sts) == 0 {
			writeErrors(sh.out, res)
			return nil
		}

		names := make([]string, len(sts))
		for i, st := range sts {
			names[i] = st.Name + " " + st.ID.String()
		}
		ok, err := sh.prompt.Confirm(fmt.Sprintf("Are you sure you want to remove %s?", strings.Join(names, ", ")))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		res = sh.eng.Remove(sel)
		for _, o := range res.Outcomes {
			if o.Err == nil {
				fmt.Fprintf(sh.out, "removed %s %s\n", o.Name, o.ID)
			}
		}
		writeErrors(sh.out, res)
		return nil
	}
	return cmd
}

func (sh *Shell) showCmd() *cobra.Command {
	cmd := selectionCmd("show", "Shows the status and configuration of sounds.")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sts, res := sh.eng.Status(selector(cmd, args))
		for _, st := range sts {
			writeStatus(sh.out, st)
		}
		writeErrors(sh.out, res)
		return nil
	}
	return cmd
}

func (sh *Shell) transportCmd(use, short string, op func(engine.Selector) engine.Result) *cobra.Command {
	cmd := selectionCmd(use, short)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)
		sh.report(sel, op(sel))
		return nil
	}
	return cmd
}

func (sh *Shell) volumeCmd() *cobra.Command {
	var pct float64
	cmd := selectionCmd("volume", "Sets the volume as a percentage. It can be higher than 100.")
	cmd.Use = "volume [IDs] -v PERCENT"
	cmd.Flags().Float64VarP(&pct, "volume", "v", 100, "volume in percent")
	cmd.MarkFlagRequired("volume")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)
		sh.report(sel, sh.eng.SetVolume(sel, pct/100))
		return nil
	}
	return cmd
}

func (sh *Shell) loopCmd() *cobra.Command {
	var period time.Duration
	cmd := selectionCmd("loop", "Loops sounds at the end of their clip, or every DURATION. DURATION may exceed the clip.")
	cmd.Use = "loop [IDs] [-d DURATION]"
	cmd.Flags().DurationVarP(&period, "duration", "d", 0, "loop period, like 90s or 1m30s")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)
		sh.report(sel, sh.eng.Loop(sel, period))
		return nil
	}
	return cmd
}

func (sh *Shell) setStartCmd() *cobra.Command {
	var pos time.Duration
	cmd := selectionCmd("set-start", "Clips the start of sounds.")
	cmd.Use = "set-start [IDs] -p POS"
	cmd.Flags().DurationVarP(&pos, "pos", "p", 0, "position in the source")
	cmd.MarkFlagRequired("pos")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)
		sh.report(sel, sh.eng.SetStart(sel, pos))
		return nil
	}
	return cmd
}

func (sh *Shell) setEndCmd() *cobra.Command {
	var pos time.Duration
	cmd := selectionCmd("set-end", "Clips the end of sounds. Omit POS to play to the end again.")
	cmd.Use = "set-end [IDs] [-p POS]"
	cmd.Flags().DurationVarP(&pos, "pos", "p", 0, "position in the source")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)
		if cmd.Flags().Changed("pos") {
			sh.report(sel, sh.eng.SetEnd(sel, pos))
			return nil
		}
		sh.report(sel, sh.eng.ResetEnd(sel))
		return nil
	}
	return cmd
}

func (sh *Shell) delayCmd() *cobra.Command {
	var d time.Duration
	cmd := selectionCmd("delay", "Delays sounds after play. Useful when playing several at once.")
	cmd.Use = "delay [IDs] -d DURATION"
	cmd.Flags().DurationVarP(&d, "duration", "d", 0, "delay before the first cycle")
	cmd.MarkFlagRequired("duration")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sel := selector(cmd, args)
		sh.report(sel, sh.eng.SetDelay(sel, d))
		return nil
	}
	return cmd
}

func (sh *Shell) groupCmd(use, short string, op func(engine.Selector, string) engine.Result) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   use + " [IDs] -g GROUP",
		Short: short,
		Long:  short + " " + selectNote,
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			sel := engine.Select(args...)
			sh.report(sel, op(sel, group))
			return nil
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "group name")
	cmd.MarkFlagRequired("group")
	return cmd
}

func (sh *Shell) saveCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "save -p PATH",
		Short: "Saves the soundscape configuration to a file.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := sh.eng.Save(path); err != nil {
				fmt.Fprintf(sh.out, "error: %v\n", err)
				return nil
			}
			fmt.Fprintf(sh.out, "saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "file to write")
	cmd.MarkFlagRequired("path")
	return cmd
}

func (sh *Shell) loadCmd() *cobra.Command {
	var (
		path string
		keep bool
	)
	cmd := &cobra.Command{
		Use:   "load -p PATH [--append]",
		Short: "Loads a saved configuration, replacing the current one or adding to it.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			mode := engine.Replace
			if keep {
				mode = engine.Append
			}

			if mode == engine.Replace && sh.eng.Len() > 0 && sh.eng.Dirty() {
				ok, err := sh.prompt.Confirm("Are you sure you want to overwrite this soundscape without saving?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(sh.out, "load cancelled")
					return nil
				}
			}

			res, err := sh.eng.Load(path, mode)
			if err != nil {
				fmt.Fprintf(sh.out, "error: %v\n", err)
				return nil
			}
			fmt.Fprintf(sh.out, "loaded %d sounds from %s\n", res.Succeeded(), path)
			writeErrors(sh.out, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "file to read")
	cmd.Flags().BoolVar(&keep, "append", false, "keep the current sounds")
	cmd.MarkFlagRequired("path")
	return cmd
}

func (sh *Shell) waitCmd() *cobra.Command {
	var d time.Duration
	cmd := &cobra.Command{
		Use:   "wait [-d DURATION]",
		Short: "Lets the soundscape play. Without DURATION it waits until nothing is playing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("duration") {
				return sh.WaitIdle(ctx)
			}

			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				return nil
			}
		},
	}
	cmd.Flags().DurationVarP(&d, "duration", "d", 0, "how long to wait, like 30s")
	return cmd
}

func (sh *Shell) exitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "Exits the program.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := sh.Quit()
			return err
		},
	}
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Scale float64
	Delay float64
}

// ChildTiming is the forward and reverse schedule of one child.
type ChildTiming struct {
	Name         string  `json:"name"`
	Delay        float64 `json:"delay"`
	Span         float64 `json:"span"`
	ForwardStart float64 `json:"forward_start"`
	ForwardEnd   float64 `json:"forward_end"`
	ReverseDelay float64 `json:"reverse_delay"`
	ReverseEnd   float64 `json:"reverse_end"`
}

// InspectResult describes the stage animation's timing.
type InspectResult struct {
	Name     string        `json:"name"`
	Total    float64       `json:"total"`
	Scale    float64       `json:"scale"`
	Delay    float64       `json:"delay"`
	Children []ChildTiming `json:"children"`
}

func (r *InspectResult) writeText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: total %.4g s (scale %.4g, delay %.4g)\n", r.Name, r.Total, r.Scale, r.Delay)
	fmt.Fprintf(&b, "%-8s %8s %8s %8s %8s %8s %8s\n", "child", "delay", "span", "fwd-in", "fwd-out", "rev-in", "rev-out")
	for _, c := range r.Children {
		fmt.Fprintf(&b, "%-8s %8.4g %8.4g %8.4g %8.4g %8.4g %8.4g\n",
			c.Name, c.Delay, c.Span, c.ForwardStart, c.ForwardEnd, c.ReverseDelay, c.ReverseEnd)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the stage animation's forward and reverse schedule",
		Long: `Print the total duration of the built-in "intro" animation and, per child,
when it starts and finishes going forward and backward.

Examples:
  choreo inspect
  choreo inspect --scale 2 --delay 0.5 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "duration scale applied to every tween")
	cmd.Flags().Float64Var(&opts.Delay, "delay", 0, "extra delay passed to SetEndState/SetBeginState")

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command) error {
	if opts.Scale < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--scale must not be negative, got %v", opts.Scale))
	}
	st := newStage()
	a := st.intro
	a.SetDurationScale(opts.Scale)

	total := a.TotalDuration()
	rev := a.BeginDelays(opts.Delay)
	res := &InspectResult{Name: a.Name, Total: total, Scale: opts.Scale, Delay: opts.Delay}
	for i, e := range a.Entries() {
		span := e.Child.Span()
		res.Children = append(res.Children, ChildTiming{
			Name:         e.Child.Label(),
			Delay:        e.Delay,
			Span:         span,
			ForwardStart: e.Delay + opts.Delay,
			ForwardEnd:   e.Delay + span + opts.Delay,
			ReverseDelay: rev[i],
			ReverseEnd:   total - e.Delay + opts.Delay,
		})
	}
	return writeResult(cmd.OutOrStdout(), opts.Format, res)
}

package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/choreo"
	"github.com/phanxgames/choreo/telemetry"
)

// maxSimulatedFrames bounds a simulation whose script never finishes.
const maxSimulatedFrames = 100000

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Dt         float64
	ScriptPath string
	ConfigPath string
	MQTT       bool
}

// FrameRecord is what happened during one preview update.
type FrameRecord struct {
	Frame   uint64   `json:"frame"`
	Ticked  bool     `json:"ticked"` // false for instantaneous script actions
	Samples []Sample `json:"samples,omitempty"`
	Events  []string `json:"events,omitempty"`
}

// SimulateResult is the full trace of a simulation.
type SimulateResult struct {
	Frames   []FrameRecord `json:"frames"`
	Ticks    uint64        `json:"ticks"`
	Failures []string      `json:"failures,omitempty"`
}

func (r *SimulateResult) writeText(w io.Writer) error {
	var b strings.Builder
	for _, rec := range r.Frames {
		if rec.Ticked {
			fmt.Fprintf(&b, "frame %3d", rec.Frame)
		} else {
			b.WriteString("script   ")
		}
		for _, s := range rec.Samples {
			fmt.Fprintf(&b, " %s=%.4f", s.Name, s.Factor)
		}
		if len(rec.Events) > 0 {
			fmt.Fprintf(&b, " | %s", strings.Join(rec.Events, " "))
		}
		b.WriteByte('\n')
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "FAIL %s\n", f)
	}
	fmt.Fprintf(&b, "frames: %d, failures: %d\n", r.Ticks, len(r.Failures))
	_, err := io.WriteString(w, b.String())
	return err
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step the built-in stage and print every applied factor",
		Long: `Run the built-in "intro" animation through the preview driver and print,
per frame, the factor applied to each tween and every settle event.

Without --script the animation plays to its end state and back to its begin
state in steps of --dt seconds. A script is a JSON document of preview
actions targeting "intro".

Examples:
  choreo simulate
  choreo simulate --dt 0.25 --format json
  choreo simulate --script intro.json --config choreo.yaml --mqtt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Dt, "dt", 0.5, "seconds per stepped frame")
	cmd.Flags().StringVar(&opts.ScriptPath, "script", "", "path to a JSON preview script")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&opts.MQTT, "mqtt", false, "publish settle events to the configured MQTT broker")

	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
	if opts.Dt <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--dt must be positive, got %v", opts.Dt))
	}

	cfg := choreo.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = choreo.LoadConfigFile(opts.ConfigPath); err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
	}

	st := newStage()
	p := choreo.NewPreviewFromConfig(cfg)
	logger := opts.logger(cmd.ErrOrStderr())
	p.Scheduler().SetLogger(logger)
	if opts.Verbose {
		p.Scheduler().SetDebugMode(true)
	}
	if err := p.Attach(st.intro.Name, st.intro); err != nil {
		return WrapExitError(ExitCommandError, "failed to attach stage", err)
	}
	defer p.Close()

	script, err := loadSimulationScript(opts, st)
	if err != nil {
		return err
	}
	p.SetScript(script)

	if opts.MQTT {
		sink, done, err := dialSink(cfg.MQTT)
		if err != nil {
			return err
		}
		defer done()
		p.Scheduler().SetEventSink(sink)
	}

	res := &SimulateResult{}
	for i := 0; i < maxSimulatedFrames; i++ {
		if script.Done() && p.Pending() == 0 {
			break
		}
		before := p.Scheduler().Frames()
		p.Update()
		after := p.Scheduler().Frames()

		samples, events := st.drain()
		if len(samples) == 0 && len(events) == 0 {
			continue
		}
		res.Frames = append(res.Frames, FrameRecord{
			Frame:   after,
			Ticked:  after != before,
			Samples: samples,
			Events:  events,
		})
	}
	res.Ticks = p.Scheduler().Frames()
	res.Failures = script.Failures()
	logger.Debug("simulation finished", "ticks", res.Ticks, "failures", len(res.Failures))

	if err := writeResult(cmd.OutOrStdout(), opts.Format, res); err != nil {
		return err
	}
	if len(res.Failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(res.Failures)))
	}
	return nil
}

// loadSimulationScript reads --script, or builds the default round trip.
func loadSimulationScript(opts *SimulateOptions, st *stage) (*choreo.Script, error) {
	if opts.ScriptPath != "" {
		data, err := os.ReadFile(opts.ScriptPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read script", err)
		}
		sc, err := choreo.LoadScript(data)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid script", err)
		}
		return sc, nil
	}

	frames := int(math.Ceil(st.intro.TotalDuration()/opts.Dt - choreo.Epsilon))
	doc := fmt.Sprintf(`{"steps":[
		{"action":"play-end","target":%[1]q},
		{"action":"step","dt":%[2]v,"frames":%[3]d},
		{"action":"expect-end","target":%[1]q},
		{"action":"play-begin","target":%[1]q},
		{"action":"step","dt":%[2]v,"frames":%[3]d},
		{"action":"expect-begin","target":%[1]q}
	]}`, st.intro.Name, opts.Dt, frames)
	return choreo.LoadScript([]byte(doc))
}

func dialSink(cfg choreo.MQTTConfig) (choreo.EventSink, func(), error) {
	if !cfg.Enabled() {
		return nil, nil, NewExitError(ExitCommandError, "--mqtt requires mqtt.url in the config file")
	}
	client, err := telemetry.Dial(cfg, 10*time.Second)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to connect to broker", err)
	}
	sink := telemetry.NewMQTTSink(client, cfg, "preview")
	done := func() {
		if err := sink.Flush(5 * time.Second); err != nil {
			fmt.Fprintln(os.Stderr, "telemetry:", err)
		}
		client.Disconnect(250)
	}
	return sink, done, nil
}

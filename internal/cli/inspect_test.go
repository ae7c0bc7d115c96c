package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInspectCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeInspect(t *testing.T, out string) InspectResult {
	t.Helper()
	var resp struct {
		Status string        `json:"status"`
		Data   InspectResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestInspectSchedule(t *testing.T) {
	out, err := runInspectCmd(t, "json")
	require.NoError(t, err)
	res := decodeInspect(t, out)

	assert.Equal(t, 5.0, res.Total)
	require.Len(t, res.Children, 3)

	want := []ChildTiming{
		{Name: "fade", Delay: 0, Span: 2, ForwardStart: 0, ForwardEnd: 2, ReverseDelay: 3, ReverseEnd: 5},
		{Name: "slide", Delay: 3, Span: 1, ForwardStart: 3, ForwardEnd: 4, ReverseDelay: 1, ReverseEnd: 2},
		{Name: "grow", Delay: 1, Span: 4, ForwardStart: 1, ForwardEnd: 5, ReverseDelay: 0, ReverseEnd: 4},
	}
	assert.Equal(t, want, res.Children)
}

func TestInspectScaleAndDelay(t *testing.T) {
	out, err := runInspectCmd(t, "json", "--scale", "2", "--delay", "1")
	require.NoError(t, err)
	res := decodeInspect(t, out)

	// Spans double, relative delays do not: max(4+0, 2+3, 8+1).
	assert.Equal(t, 9.0, res.Total)
	assert.Equal(t, []float64{6, 5, 1}, []float64{
		res.Children[0].ReverseDelay,
		res.Children[1].ReverseDelay,
		res.Children[2].ReverseDelay,
	})
}

func TestInspectText(t *testing.T) {
	out, err := runInspectCmd(t, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "intro: total 5 s")
	assert.Contains(t, out, "rev-in")
	assert.Contains(t, out, "slide")
}

func TestInspectRejectsNegativeScale(t *testing.T) {
	_, err := runInspectCmd(t, "text", "--scale", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

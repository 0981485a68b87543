package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/implhint/implhint/internal/facts"
)

// ---------------------------------------------------------------------------
// reorderArgs tests
// ---------------------------------------------------------------------------

func TestReorderArgs_NoArgs(t *testing.T) {
	flags, positional := reorderArgs(nil)
	assert.Nil(t, flags)
	assert.Nil(t, positional)
}

func TestReorderArgs_PositionalOnly(t *testing.T) {
	flags, positional := reorderArgs([]string{"./store.go"})
	assert.Nil(t, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

func TestReorderArgs_FlagsBeforePositional(t *testing.T) {
	flags, positional := reorderArgs([]string{"-resolve", "./store.go"})
	assert.Equal(t, []string{"-resolve"}, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

func TestReorderArgs_PositionalBeforeFlags(t *testing.T) {
	// The whole point of reorderArgs: allow the file argument before flags.
	flags, positional := reorderArgs([]string{"./store.go", "-resolve", "-pretty"})
	assert.Equal(t, []string{"-resolve", "-pretty"}, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

func TestReorderArgs_ValueFlagConsumesNextArg(t *testing.T) {
	flags, positional := reorderArgs([]string{"-threshold", "0.9", "./store.go"})
	assert.Equal(t, []string{"-threshold", "0.9"}, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

func TestReorderArgs_ValueFlagWithEquals(t *testing.T) {
	flags, positional := reorderArgs([]string{"-threshold=0.9", "./store.go"})
	assert.Equal(t, []string{"-threshold=0.9"}, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

func TestReorderArgs_BooleanFlagDoesNotConsumeNextArg(t *testing.T) {
	// -resolve is boolean (not in valueFlagSet), so it must NOT consume
	// the following positional argument.
	flags, positional := reorderArgs([]string{"-resolve", "./store.go"})
	assert.Equal(t, []string{"-resolve"}, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

func TestReorderArgs_AllValueFlags(t *testing.T) {
	args := []string{
		"-path", "/tmp/store.go",
		"-threshold", "0.75",
		"-log-file", "app.log",
		"-log-level", "debug",
	}
	flags, positional := reorderArgs(args)
	assert.Equal(t, args, flags)
	assert.Nil(t, positional)
}

func TestReorderArgs_ValueFlagAtEnd(t *testing.T) {
	// If a value flag is at the very end with no following arg, it stays
	// as a flag (flag.Parse will report the error).
	flags, positional := reorderArgs([]string{"-threshold"})
	assert.Equal(t, []string{"-threshold"}, flags)
	assert.Nil(t, positional)
}

func TestReorderArgs_PositionalBetweenFlags(t *testing.T) {
	flags, positional := reorderArgs([]string{"-pretty", "./store.go", "-threshold", "0.9"})
	assert.Equal(t, []string{"-pretty", "-threshold", "0.9"}, flags)
	assert.Equal(t, []string{"./store.go"}, positional)
}

// ---------------------------------------------------------------------------
// Output shape
// ---------------------------------------------------------------------------

func TestOutput_OmitsSatisfactionWhenAbsent(t *testing.T) {
	out := output{Result: facts.NewResult()}

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"packages":{}}`, string(data))
}

func TestOutput_EmptyPackagesIsNotAnError(t *testing.T) {
	// The "no usable facts" signal is an empty packages object, decoded
	// cleanly by any consumer; there is no error field to check.
	out := output{Result: facts.NewResult()}

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded struct {
		Packages map[string]json.RawMessage `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Empty(t, decoded.Packages)
}

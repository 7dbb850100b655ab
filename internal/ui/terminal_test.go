package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"o\n", false, true},
		{"Yes\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"peut-être\nnon\n", true, false},
		{"", true, true}, // EOF
	}
	for _, tc := range tests {
		var out bytes.Buffer
		u := NewTerminalIO(strings.NewReader(tc.input), &out, &out)
		got, err := u.Confirm(context.Background(), "Écraser ?", tc.def)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestPrintReport_AddsTrailingNewline(t *testing.T) {
	var out, errOut bytes.Buffer
	u := NewTerminalIO(strings.NewReader(""), &out, &errOut)
	u.PrintReport(context.Background(), []byte("rapport"))
	u.PrintReport(context.Background(), []byte("suite\n"))
	u.PrintError(context.Background(), "oups")
	assert.Equal(t, "rapport\nsuite\n", out.String())
	assert.Equal(t, "oups\n", errOut.String())
}

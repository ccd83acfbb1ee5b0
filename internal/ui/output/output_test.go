package output_test

import (
	"bytes"
	"testing"

	"github.com/AlsoShantanuBorkar/flutter/internal/ui/output"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestColorProfile_Detected(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString(out.String("built").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "built", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}

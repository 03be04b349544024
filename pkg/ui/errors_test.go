package ui_test

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestRenderError(t *testing.T) {
	t.Run("coded error lists details in key order", func(t *testing.T) {
		var buf bytes.Buffer
		err := errors.New(errors.ErrIntegrityMismatch, "digest mismatch").
			WithDetail("file", "/fw/boot.img").
			WithDetail("expected", "AA").
			WithDetail("actual", "BB")

		ui.RenderError(&buf, fmt.Errorf("step 2 (flash boot boot.img) failed: %w", err))

		assert.Equal(t, "Error: step 2 (flash boot boot.img) failed: [INTEGRITY_MISMATCH] digest mismatch\n"+
			"  actual: BB\n"+
			"  expected: AA\n"+
			"  file: /fw/boot.img\n", buf.String())
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		ui.RenderError(&buf, stderrors.New("boom"))
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("nil error prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		ui.RenderError(&buf, nil)
		assert.Empty(t, buf.String())
	})
}

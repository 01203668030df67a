package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Home", HeaderInfo{Name: "Maria", Points: 1250, Level: 5}, 80)
	for _, want := range []string{"kidboard", "Home", "Maria", "★ 1250", "Lv 5"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("x", HeaderInfo{}, 70)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 70)
	frame := RenderFrame(header, "hello", footer, 70, 24)
	if h := lipgloss.Height(frame); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
}

func TestSizes(t *testing.T) {
	if !IsTooSmall(59, 30) || !IsTooSmall(80, 19) || IsTooSmall(60, 20) {
		t.Error("IsTooSmall thresholds")
	}
	if !IsCompact(80, 40) || IsCompact(120, 40) {
		t.Error("IsCompact thresholds")
	}
	if msg := RenderMinSizeMessage(40, 10); !strings.Contains(msg, "40 x 10") {
		t.Errorf("min size message = %q", msg)
	}
}

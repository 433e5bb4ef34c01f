package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridfix/internal/detect"
	"gridfix/internal/grid"
	"gridfix/internal/primitives"
)

// overlayUnchanged runs detect and overlays the inventory onto its own
// grid without normalizing, which must reproduce the input.
func overlayUnchanged(t *testing.T, lines []string) {
	t.Helper()
	g := grid.FromLines(lines)
	inv := detect.Scan(g)
	out := Overlay(g, inv, inv.Clone())
	if diff := cmp.Diff(lines, out.Render()); diff != "" {
		t.Errorf("identity overlay changed the grid (-want +got):\n%s", diff)
	}
}

func TestIdentityOverlay(t *testing.T) {
	cases := [][]string{
		{"┌──┐", "│Hi│", "└──┘"},
		{"╔══╗", "║ab║", "╚══╝"},
		{"╭──╮", "│ab│", "╰──╯"},
		{"──→ done"},
		{"┌───┐      ┌───┐", "│ A ├──────┤ B │", "└───┘      └───┘"},
		{"┌───┐", "│ A ├──┐", "└───┘  │", "     ┌─┴─┐", "     │ B │", "     └───┘"},
	}
	for _, lines := range cases {
		overlayUnchanged(t, lines)
	}
}

func TestExpandedBoxRedrawn(t *testing.T) {
	g := grid.FromLines([]string{
		"┌──┐",
		"│Hello│",
		"└──┘",
	})
	detected := detect.Scan(g)
	normalized := detected.Clone()
	normalized.Boxes[0].BottomRight.Col = 6

	out := Overlay(g, detected, normalized)
	want := []string{
		"┌─────┐",
		"│Hello│",
		"└─────┘",
	}
	assert.Equal(t, want, out.Render())
}

func TestGridGrowsToFitNormalizedSet(t *testing.T) {
	g := grid.FromLines([]string{
		"┌──┐",
		"│Hi│",
		"└──┘",
	})
	detected := detect.Scan(g)
	normalized := detected.Clone()
	normalized.Boxes[0].BottomRight = primitives.Pos{Row: 4, Col: 9}

	out := Overlay(g, detected, normalized)
	assert.Equal(t, 5, out.Height())
	assert.Equal(t, 10, out.Width())
	lines := out.Render()
	assert.Equal(t, "┌────────┐", lines[0])
	assert.Equal(t, "└────────┘", lines[4])
}

func TestArrowNeverOverwritesContent(t *testing.T) {
	// The normalized arrow is stretched over a cell that holds foreign
	// text; that cell must survive.
	g := grid.FromLines([]string{"xy   ──→"})
	detected := detect.Scan(g)
	normalized := detected.Clone()
	normalized.HArrows[0].StartCol = 1

	out := Overlay(g, detected, normalized)
	assert.Equal(t, []string{"xy─────→"}, out.Render())
}

func TestBlockedLabelFallsBack(t *testing.T) {
	g := grid.FromLines([]string{
		"┌───┐",
		"│ A │",
		"└───┘",
		" db",
		"this line is much longer than twenty",
	})
	detected := detect.Scan(g)
	require.Len(t, detected.Labels, 1)
	normalized := detected.Clone()
	// Force the label onto the long plain-text line.
	normalized.Labels[0].Row = 4
	normalized.Labels[0].Col = 0

	out := Overlay(g, detected, normalized)
	lines := out.Render()
	assert.Equal(t, " db", lines[3], "blocked label redrawn where it was")
	assert.Equal(t, "this line is much longer than twenty", lines[4])
}

func TestAmbiguousBoxLeftVerbatim(t *testing.T) {
	lines := []string{
		"┌────┐",
		"│ ┌──┼──┐",
		"└─┼──┘  │",
		"  └─────┘",
	}
	overlayUnchanged(t, lines)
}

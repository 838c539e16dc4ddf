package inspector

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/meadow/components"
)

func TestParseTag(t *testing.T) {
	widget, opts := ParseTag("bar, max:5, fmt:%.1f")
	if widget != WidgetBar {
		t.Errorf("expected WidgetBar, got %d", widget)
	}
	if opts["max"] != "5" || opts["fmt"] != "%.1f" {
		t.Errorf("unexpected options %v", opts)
	}

	if w, _ := ParseTag(""); w != WidgetAuto {
		t.Errorf("empty tag should be auto, got %d", w)
	}
	if w, _ := ParseTag("unknown"); w != WidgetAuto {
		t.Errorf("unknown widget should be auto, got %d", w)
	}
}

func TestExtractFieldsFromComponents(t *testing.T) {
	pos := &components.Position{X: 1.25, Y: 0, Z: 9.5}
	c := Extract(pos)

	if c.Title != "Position" {
		t.Errorf("expected title Position, got %q", c.Title)
	}
	if len(c.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(c.Fields))
	}
	if c.Fields[0].Name != "X" || c.Fields[0].Widget != WidgetLabel {
		t.Errorf("unexpected first field %+v", c.Fields[0])
	}
	if got := FormatValue(c.Fields[0].Value, c.Fields[0].Options["fmt"]); got != "1.25" {
		t.Errorf("expected 1.25, got %q", got)
	}

	// Untagged fields are auto-detected
	vel := Extract(components.Velocity{X: 1})
	if len(vel.Fields) != 3 || vel.Fields[0].Widget != WidgetLabel {
		t.Errorf("unexpected velocity fields %+v", vel.Fields)
	}
}

func TestExtractSkipsAndBools(t *testing.T) {
	type sample struct {
		Hidden  float32 `inspect:"skip"`
		Enabled bool
		Level   float32 `inspect:"bar,max:4"`
		private int
	}

	fields := ExtractFields(sample{Enabled: true, Level: 2})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Widget != WidgetBool {
		t.Errorf("expected bool widget, got %d", fields[0].Widget)
	}
	if GetMax(fields[1].Options) != 4 {
		t.Errorf("expected max 4, got %f", GetMax(fields[1].Options))
	}
}

func TestExtractNilAndNonStruct(t *testing.T) {
	var pos *components.Position
	if fields := ExtractFields(pos); fields != nil {
		t.Errorf("nil pointer should yield no fields, got %v", fields)
	}
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("non-struct should yield no fields, got %v", fields)
	}
}

func TestFormatVectors(t *testing.T) {
	got := FormatValue(mgl32.Vec3{1, 0.5, -2}, "")
	if got != "(1.00, 0.50, -2.00)" {
		t.Errorf("unexpected vector format %q", got)
	}
	if _, ok := GetFloatSlice([]int{1, 2}); ok {
		t.Error("int slice should not convert")
	}
}

func TestGetFloatValue(t *testing.T) {
	for _, v := range []any{float32(2), 2.0, 2, int32(2), int64(2), uint8(2), uint32(2)} {
		f, ok := GetFloatValue(v)
		if !ok || f != 2 {
			t.Errorf("GetFloatValue(%T) = %f, %v", v, f, ok)
		}
	}
	if _, ok := GetFloatValue("2"); ok {
		t.Error("string should not convert")
	}
}

package input

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

type q84 = fixed.Q8_4

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.4, 0},
		{0.5, 1},
		{1.49, 1},
		{-0.4, 0},
		{-2.6, -3},
		{7, 7},
	}
	for _, tt := range tests {
		if got := Quantize[q84](tt.in); got != fixed.FromInt[q84](tt.want) {
			t.Errorf("Quantize(%v): expected %d, got %v", tt.in, tt.want, got)
		}
	}
}

func TestQuantizeStep(t *testing.T) {
	got, err := QuantizeStep[q84](0.3, 0.125)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// 0.3 truncates to 0.25 in Q8.4, exactly two steps
	if want := fixed.FromFloat[q84](0.25); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	got, _ = QuantizeStep[q84](1.0, 0.375)
	if want := fixed.FromFloat[q84](1.125); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// 0.01 truncates to zero raw in Q8.4
	if _, err := QuantizeStep[q84](1, 0.01); !errors.Is(err, ErrZeroStep) {
		t.Errorf("Expected ErrZeroStep, got %v", err)
	}
}

func TestQuantizeAxis(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.05, 0},
		{-0.09, 0},
		{0.1, 1},
		{0.8, 1},
		{-0.3, -1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := QuantizeAxis[q84](tt.in, 0.1); got != fixed.FromInt[q84](tt.want) {
			t.Errorf("QuantizeAxis(%v): expected %d, got %v", tt.in, tt.want, got)
		}
	}
}

func TestQuantizeVectors(t *testing.T) {
	v2 := QuantizeVec2[q84](-0.7, 0.02, 0.1)
	if want := vmath.V2Int[q84](-1, 0); v2 != want {
		t.Errorf("Expected %v, got %v", want, v2)
	}
	v3 := QuantizeVec3[q84](1.6, -0.2, 3.5)
	if want := vmath.V3Int[q84](2, 0, 4); v3 != want {
		t.Errorf("Expected %v, got %v", want, v3)
	}
}

func TestBuffer(t *testing.T) {
	b := NewBuffer[q84](3)
	if b.Cap() != 3 || b.Len() != 0 {
		t.Fatalf("Expected empty buffer of 3, got len %d cap %d", b.Len(), b.Cap())
	}
	if !b.Get(0).IsZero() {
		t.Errorf("Expected zero from empty buffer")
	}

	for i := 1; i <= 5; i++ {
		b.Record(vmath.V2Int[q84](i, -i))
	}
	if b.Len() != 3 {
		t.Errorf("Expected len capped at 3, got %d", b.Len())
	}

	tests := []struct {
		back int
		want vmath.Vec2[q84]
	}{
		{0, vmath.V2Int[q84](5, -5)},
		{1, vmath.V2Int[q84](4, -4)},
		{2, vmath.V2Int[q84](3, -3)},
		{3, vmath.Vec2[q84]{}},
		{-1, vmath.Vec2[q84]{}},
	}
	for _, tt := range tests {
		if got := b.Get(tt.back); got != tt.want {
			t.Errorf("Get(%d): expected %v, got %v", tt.back, tt.want, got)
		}
	}
}

func TestNewBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for zero capacity")
		}
	}()
	NewBuffer[q84](0)
}

func TestStateEdges(t *testing.T) {
	s := NewState[q84](0.1)

	s.Press("jump")
	s.UpdateState()
	if !s.Button("jump") || !s.ButtonDown("jump") || s.ButtonUp("jump") {
		t.Errorf("Expected press edge on first tick")
	}

	s.UpdateState()
	if !s.Button("jump") || s.ButtonDown("jump") {
		t.Errorf("Expected held without edge on second tick")
	}

	s.Release("jump")
	s.UpdateState()
	if s.Button("jump") || !s.ButtonUp("jump") {
		t.Errorf("Expected release edge")
	}

	s.UpdateState()
	if s.ButtonUp("jump") {
		t.Errorf("Expected release edge to last one tick")
	}
	if s.Ticks() != 4 {
		t.Errorf("Expected 4 ticks, got %d", s.Ticks())
	}
}

func TestStateTap(t *testing.T) {
	s := NewState[q84](0.1)
	s.Tap("left")
	if s.Button("left") {
		t.Errorf("Expected no change before UpdateState")
	}
	s.UpdateState()
	if !s.ButtonDown("left") {
		t.Errorf("Expected tap to press for one tick")
	}
	s.UpdateState()
	if s.Button("left") || !s.ButtonUp("left") {
		t.Errorf("Expected tap released on next tick")
	}
}

func TestStateAnalog(t *testing.T) {
	s := NewState[q84](0.2)
	s.SetAxis("throttle", 0.9)
	s.SetAxis("brake", 0.3)
	s.SetVector2("move", 0.15, -0.6)
	s.SetVector3("aim", 2.2, 0, -1.5)

	if !s.Axis("throttle").IsZero() {
		t.Errorf("Expected analog values latched only by UpdateState")
	}
	s.UpdateState()

	if got := s.Axis("throttle"); got != fixed.One[q84]() {
		t.Errorf("Expected throttle 1, got %v", got)
	}
	if !s.Button("throttle") || s.Button("brake") {
		t.Errorf("Expected only full deflection to read as a button")
	}
	if got, want := s.Vector2("move"), vmath.V2Int[q84](0, -1); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got, want := s.Vector3("aim"), vmath.V3Int[q84](2, 0, -1); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !s.Vector2("unknown").IsZero() {
		t.Errorf("Expected zero for unknown action")
	}
}

package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Array < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Array", FromString("a"), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), FromKeyVals(nil), -1},

		// Bool Comparison
		{"false < true", FromBool(false), FromBool(true), -1},
		{"true > false", FromBool(true), FromBool(false), 1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// Number Comparison: Int < Float < String
		{"Int < Float", FromInt(1), FromFloat(1.0), -1},
		{"Float < StringNum", FromFloat(1.0), &Node{Type: NumberType, Number: "1"}, -1},
		{"Int < Int", FromInt(1), FromInt(2), -1},
		{"Float < Float", FromFloat(1.0), FromFloat(2.0), -1},
		{"StringNum < StringNum", &Node{Type: NumberType, Number: "1"}, &Node{Type: NumberType, Number: "2"}, -1},

		// String Comparison
		{"String < String", FromString("a"), FromString("b"), -1},

		// Array Comparison
		{"Empty Array == Empty Array", FromSlice(nil), FromSlice(nil), 0},
		{"Short Array < Long Array", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"Array Element Comparison", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(2)}), -1},

		// Object Comparison
		{"Empty Object == Empty Object", FromKeyVals(nil), FromKeyVals(nil), 0},
		{"Short Object < Long Object",
			obj("a", FromInt(1)),
			obj("a", FromInt(1), "b", FromInt(2)),
			-1},
		{"Object Key Comparison",
			obj("a", FromInt(1)),
			obj("b", FromInt(1)),
			-1},
		{"Object Value Comparison",
			obj("a", FromInt(1)),
			obj("a", FromInt(2)),
			-1},
		{"Object Key Order Matters",
			obj("a", FromInt(1), "b", FromInt(2)),
			obj("b", FromInt(2), "a", FromInt(1)),
			-1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := obj("x", FromSlice([]*Node{FromInt(1), FromString("s")}), "y", FromBool(true))
	if !Equal(a, a.Clone()) {
		t.Error("clone not Equal")
	}
	if Equal(a, obj("x", FromSlice([]*Node{FromInt(1), FromString("s")}), "y", FromBool(false))) {
		t.Error("differing values Equal")
	}
	if Equal(a, nil) || Equal(nil, a) {
		t.Error("nil Equal to non-nil")
	}
	if !Equal(nil, nil) {
		t.Error("nil not Equal to nil")
	}
}

func TestHashStable(t *testing.T) {
	a := obj("x", FromSlice([]*Node{FromInt(1), FromFloat(2.5), FromString("s")}))
	if a.Hash() != a.Hash() {
		t.Error("hash differs between calls")
	}
	if a.Hash() != a.Clone().Hash() {
		t.Error("hash differs for structurally identical trees")
	}
	b := obj("x", FromSlice([]*Node{FromInt(1), FromFloat(2.5), FromString("z")}))
	if a.Hash() == b.Hash() {
		t.Error("hash collision on differing leaf")
	}
}

package types

import "testing"

func TestScalarEquality(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"identical scalars", NewScalarType("color", 1, 0, 2), NewScalarType("color", 1, 0, 2), true},
		{"different names", NewScalarType("color", 1, 0, 2), NewScalarType("day", 1, 0, 2), false},
		{"different bounds", NewScalarType("color", 1, 0, 2), NewScalarType("color", 1, 0, 3), false},
		{"scalar vs subrange", IntegerType, NewSubrangeType(IntegerType, 0, 2), false},
		{"identical subranges", NewSubrangeType(IntegerType, 1, 10), NewSubrangeType(IntegerType, 1, 10), true},
		{"subrange bounds differ", NewSubrangeType(IntegerType, 1, 10), NewSubrangeType(IntegerType, 1, 9), false},
		{"subrange bases differ", NewSubrangeType(IntegerType, 0, 1), NewSubrangeType(BooleanType, 0, 1), false},
		{"error absorbs only error", ErrorType, ErrorType, true},
		{"error vs scalar", ErrorType, IntegerType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.a, tt.b); got != tt.equal {
				t.Errorf("Equals(%s, %s) = %v, want %v", tt.a.Repr(), tt.b.Repr(), got, tt.equal)
			}
		})
	}
}

func TestReferenceIdentity(t *testing.T) {
	a := NewReferenceType(IntegerType)
	b := NewReferenceType(IntegerType)

	if !Equals(a, a) {
		t.Error("reference type not equal to itself")
	}

	if Equals(a, b) {
		t.Error("distinct reference instances compare equal")
	}
}

func TestArrayIdentityAndSize(t *testing.T) {
	index := NewSubrangeType(IntegerType, 2, 5)
	a := NewArrayType(index, IntegerType)
	b := NewArrayType(index, IntegerType)

	if Equals(a, b) {
		t.Error("distinct array instances compare equal")
	}

	if a.Size() != 4 {
		t.Errorf("array[2..5] of int size = %d, want 4", a.Size())
	}
}

func TestBoundedTypes(t *testing.T) {
	tests := []struct {
		name         string
		typ          Type
		lower, upper int
	}{
		{"boolean", BooleanType, 0, 1},
		{"scalar", NewScalarType("color", 1, 0, 2), 0, 2},
		{"subrange", NewSubrangeType(IntegerType, 2, 5), 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounded, ok := tt.typ.(Bounded)
			if !ok {
				t.Fatalf("%s does not implement Bounded", tt.typ.Repr())
			}

			if bounded.Lower() != tt.lower || bounded.Upper() != tt.upper {
				t.Errorf("bounds = [%d, %d], want [%d, %d]",
					bounded.Lower(), bounded.Upper(), tt.lower, tt.upper)
			}
		})
	}
}

func TestOptDereference(t *testing.T) {
	ref := NewReferenceType(BooleanType)

	if got := OptDereference(ref); !Equals(got, BooleanType) {
		t.Errorf("OptDereference(ref(boolean)) = %s, want boolean", got.Repr())
	}

	if got := OptDereference(IntegerType); !Equals(got, IntegerType) {
		t.Errorf("OptDereference(int) = %s, want int", got.Repr())
	}
}

func TestReprs(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{IntegerType, "int"},
		{NewSubrangeType(IntegerType, 2, 5), "2..5"},
		{NewReferenceType(IntegerType), "ref(int)"},
		{NewArrayType(NewSubrangeType(IntegerType, 2, 5), IntegerType), "array[2..5] of int"},
		{NewProductType(IntegerType, IntegerType), "(int*int)"},
		{NewFuncType(NewProductType(IntegerType, IntegerType), BooleanType), "(int*int) -> boolean"},
	}

	for _, tt := range tests {
		if got := tt.typ.Repr(); got != tt.want {
			t.Errorf("Repr() = %q, want %q", got, tt.want)
		}
	}
}

func TestIntersectionOrder(t *testing.T) {
	intCand := NewOperatorType(OpEqual, NewFuncType(NewProductType(IntegerType, IntegerType), BooleanType))
	boolCand := NewOperatorType(OpEqual, NewFuncType(NewProductType(BooleanType, BooleanType), BooleanType))

	it := NewIntersectionType(intCand)
	it.AddType(boolCand)

	if len(it.Types) != 2 || it.Types[0] != intCand || it.Types[1] != boolCand {
		t.Error("intersection candidates not kept in insertion order")
	}
}

package ir_types

import (
	"fmt"
	"math/big"

	"github.com/kievzenit/cfront/internal/settings"
)

// Arithmetic is one of the C scalar number forms. Plain char is distinct
// from signed and unsigned char; its signedness comes from the target.
type Arithmetic int

const (
	Char Arithmetic = iota
	SignedChar
	UnsignedChar
	SignedShortInt
	UnsignedShortInt
	SignedInt
	UnsignedInt
	SignedLongInt
	UnsignedLongInt
	Float
	Double
	LongDouble
)

var arithmeticNames = [...]string{
	Char:             "char",
	SignedChar:       "signed char",
	UnsignedChar:     "unsigned char",
	SignedShortInt:   "short",
	UnsignedShortInt: "unsigned short",
	SignedInt:        "int",
	UnsignedInt:      "unsigned int",
	SignedLongInt:    "long",
	UnsignedLongInt:  "unsigned long",
	Float:            "float",
	Double:           "double",
	LongDouble:       "long double",
}

func (a Arithmetic) String() string {
	if int(a) < 0 || int(a) >= len(arithmeticNames) {
		return fmt.Sprintf("Arithmetic(%d)", int(a))
	}
	return arithmeticNames[a]
}

func (a Arithmetic) IsIntegral() bool {
	return a <= UnsignedLongInt
}

func (a Arithmetic) IsFloating() bool {
	return a >= Float
}

func (a Arithmetic) IsSigned(target settings.Target) bool {
	switch a {
	case Char:
		return target.DataModel().CharSigned
	case UnsignedChar, UnsignedShortInt, UnsignedInt, UnsignedLongInt:
		return false
	default:
		return true
	}
}

func (a Arithmetic) SizeInBits(target settings.Target) int {
	dm := target.DataModel()
	switch a {
	case Char, SignedChar, UnsignedChar:
		return dm.Char
	case SignedShortInt, UnsignedShortInt:
		return dm.Short
	case SignedInt, UnsignedInt:
		return dm.Int
	case SignedLongInt, UnsignedLongInt:
		return dm.Long
	case Float:
		return dm.Float
	case Double:
		return dm.Double
	case LongDouble:
		return dm.LongDouble
	default:
		panic(fmt.Sprintf("unknown arithmetic type %d", int(a)))
	}
}

// Rank orders integer conversion ranks, with the floating types above all
// integers.
func (a Arithmetic) Rank() int {
	switch a {
	case Char, SignedChar, UnsignedChar:
		return 1
	case SignedShortInt, UnsignedShortInt:
		return 2
	case SignedInt, UnsignedInt:
		return 3
	case SignedLongInt, UnsignedLongInt:
		return 4
	case Float:
		return 5
	case Double:
		return 6
	default:
		return 7
	}
}

// ToUnsigned returns the unsigned type of the same rank.
func (a Arithmetic) ToUnsigned() Arithmetic {
	switch a {
	case Char, SignedChar:
		return UnsignedChar
	case SignedShortInt:
		return UnsignedShortInt
	case SignedInt:
		return UnsignedInt
	case SignedLongInt:
		return UnsignedLongInt
	default:
		return a
	}
}

// Promote applies integer promotion. The flag reports whether the type
// changed. Types of int rank or above, and floating types, are returned
// as is.
func (a Arithmetic) Promote(target settings.Target) (Arithmetic, bool) {
	if !a.IsIntegral() || a.Rank() >= SignedInt.Rank() {
		return a, false
	}

	intBits := SignedInt.SizeInBits(target)
	bits := a.SizeInBits(target)
	if bits < intBits || (bits == intBits && a.IsSigned(target)) {
		return SignedInt, true
	}
	return UnsignedInt, true
}

// DefaultArgumentPromotion is the conversion applied to arguments matched by
// the ... of a variadic function.
func (a Arithmetic) DefaultArgumentPromotion(target settings.Target) Arithmetic {
	if a == Float {
		return Double
	}
	promoted, _ := a.Promote(target)
	return promoted
}

// UsualArithmeticConversion returns the common type both operands of a
// binary arithmetic operator are converted to.
func UsualArithmeticConversion(a, b Arithmetic, target settings.Target) Arithmetic {
	for _, floating := range []Arithmetic{LongDouble, Double, Float} {
		if a == floating || b == floating {
			return floating
		}
	}

	a, _ = a.Promote(target)
	b, _ = b.Promote(target)
	if a == b {
		return a
	}

	aSigned, bSigned := a.IsSigned(target), b.IsSigned(target)
	if aSigned == bSigned {
		if a.Rank() >= b.Rank() {
			return a
		}
		return b
	}

	unsigned, signed := a, b
	if aSigned {
		unsigned, signed = b, a
	}
	if unsigned.Rank() >= signed.Rank() {
		return unsigned
	}
	if signed.SizeInBits(target) > unsigned.SizeInBits(target) {
		return signed
	}
	return signed.ToUnsigned()
}

// FindFirstFit returns the first candidate able to hold value without loss.
// The needed width is the two's complement magnitude of value; signed
// candidates, and every candidate when value is negative, give up one bit
// for the sign.
func FindFirstFit(value *big.Int, candidates []Arithmetic, target settings.Target) (Arithmetic, bool) {
	negative := value.Sign() < 0
	needed := value.BitLen()
	if negative {
		needed = new(big.Int).Not(value).BitLen()
	}

	for _, candidate := range candidates {
		bits := candidate.SizeInBits(target)
		if candidate.IsSigned(target) || negative {
			bits--
		}
		if bits >= needed {
			return candidate, true
		}
	}
	return 0, false
}

// Bounds returns the inclusive value range of an integral type.
func (a Arithmetic) Bounds(target settings.Target) (*big.Int, *big.Int) {
	if !a.IsIntegral() {
		panic(fmt.Sprintf("%s has no integer bounds", a))
	}

	bits := uint(a.SizeInBits(target))
	one := big.NewInt(1)
	if a.IsSigned(target) {
		max := new(big.Int).Sub(new(big.Int).Lsh(one, bits-1), one)
		min := new(big.Int).Neg(new(big.Int).Lsh(one, bits-1))
		return min, max
	}
	return big.NewInt(0), new(big.Int).Sub(new(big.Int).Lsh(one, bits), one)
}

// PortableBounds returns the range an integral type holds on every known
// target. Plain char is limited to [0, 127] since its signedness differs.
func (a Arithmetic) PortableBounds() (*big.Int, *big.Int) {
	var min, max *big.Int
	for _, target := range settings.Targets() {
		lo, hi := a.Bounds(target)
		if min == nil || lo.Cmp(min) > 0 {
			min = lo
		}
		if max == nil || hi.Cmp(max) < 0 {
			max = hi
		}
	}
	return min, max
}

package pricing

import "fmt"

// FieldKind tells which half of a WireField or FormField is populated.
type FieldKind int

const (
	// KindAmount marks a price field.
	KindAmount FieldKind = iota
	// KindFlag marks a boolean gating field such as hasPrice.
	KindFlag
)

func (k FieldKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindAmount:
		return "amount"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// WireField is a price-list leaf as stored by the backend: either a flag or cents.
type WireField struct {
	Kind  FieldKind
	Flag  bool
	Cents int64
}

// FormField is a price-list leaf as edited on the form: either a flag or a decimal.
type FormField struct {
	Kind   FieldKind
	Flag   bool
	Amount float64
}

// FlagField builds a flag-valued wire field.
func FlagField(v bool) WireField { return WireField{Kind: KindFlag, Flag: v} }

// CentsField builds a price-valued wire field.
func CentsField(cents int64) WireField { return WireField{Kind: KindAmount, Cents: cents} }

// ToForm converts cents into a decimal amount. Flags pass through unchanged.
func (f WireField) ToForm() FormField {
	if f.Kind == KindFlag {
		return FormField{Kind: KindFlag, Flag: f.Flag}
	}
	return FormField{Kind: KindAmount, Amount: ToDecimal(f.Cents)}
}

// ToWire converts a decimal amount into cents. Flags pass through unchanged.
func (f FormField) ToWire() WireField {
	if f.Kind == KindFlag {
		return WireField{Kind: KindFlag, Flag: f.Flag}
	}
	return WireField{Kind: KindAmount, Cents: ToMinorUnits(f.Amount)}
}

func (f FormField) String() string {
	if f.Kind == KindFlag {
		return fmt.Sprintf("%t", f.Flag)
	}
	return fmt.Sprintf("%.2f", f.Amount)
}

func (f WireField) String() string {
	if f.Kind == KindFlag {
		return fmt.Sprintf("%t", f.Flag)
	}
	return fmt.Sprintf("%d", f.Cents)
}

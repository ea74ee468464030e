package config

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is a loosely typed scalar from a settings document. It keeps the raw
// text so that a field which is blank, null or not a number can be told apart
// from zero and resolved to its default.
//
// A value that holds text is always written back as a string, so labels such
// as "007" survive an export.
type Value struct {
	raw  string
	set  bool
	text bool
}

// Num returns a numeric Value.
func Num(f float64) Value {
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64), set: true}
}

// Int returns an integer Value.
func Int(i int) Value {
	return Value{raw: strconv.Itoa(i), set: true}
}

// Text returns a Value holding arbitrary text.
func Text(s string) Value {
	return Value{raw: s, set: true, text: true}
}

// Flag returns a boolean Value.
func Flag(b bool) Value {
	return Value{raw: strconv.FormatBool(b), set: true}
}

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool {
	return !v.set
}

// String returns the raw text of the value, or "" when absent.
func (v Value) String() string {
	return v.raw
}

// Float parses the value as a finite number.
func (v Value) Float() (float64, bool) {
	if !v.set {
		return 0, false
	}
	s := strings.TrimSpace(v.raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// maxWhole is the largest magnitude Whole and Ceil convert exactly.
const maxWhole = 1 << 53

// Whole parses the value as a number and truncates it toward zero.
func (v Value) Whole() (int, bool) {
	f, ok := v.Float()
	if !ok || math.Abs(f) > maxWhole {
		return 0, false
	}
	return int(f), true
}

// Ceil parses the value as a number and rounds it up to a whole number.
func (v Value) Ceil() (int, bool) {
	f, ok := v.Float()
	if !ok || math.Abs(f) > maxWhole {
		return 0, false
	}
	return int(math.Ceil(f)), true
}

// Fractional reports whether the value is a number with a fractional part.
func (v Value) Fractional() bool {
	f, ok := v.Float()
	return ok && f != math.Trunc(f)
}

// Bool parses the value as a boolean.
func (v Value) Bool() (bool, bool) {
	if !v.set {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.raw))
	if err != nil {
		return false, false
	}
	return b, true
}

// native returns the value as the Go type it most looks like, for encoding.
func (v Value) native() interface{} {
	if !v.set {
		return nil
	}
	if v.text {
		return v.raw
	}
	if i, err := strconv.Atoi(v.raw); err == nil {
		return i
	}
	if f, ok := v.Float(); ok && strings.TrimSpace(v.raw) == v.raw {
		return f
	}
	if b, err := strconv.ParseBool(v.raw); err == nil {
		return b
	}
	return v.raw
}

// UnmarshalYAML accepts any scalar. Nulls and non-scalar nodes leave the value
// absent instead of failing the whole document.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	*v = Value{}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return nil
	}
	v.raw = node.Value
	v.set = true
	v.text = node.ShortTag() == "!!str"
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	return v.native(), nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}

// AdjustmentSetting is one expense adjustment as stored in a settings document.
type AdjustmentSetting struct {
	Type    Value `yaml:"type" json:"type"`
	Trigger Value `yaml:"trigger" json:"trigger"`
	Amount  Value `yaml:"amount" json:"amount"`
	Desc    Value `yaml:"desc,omitempty" json:"desc,omitzero"`
}

// Settings is the flat, exchangeable form of every planner input. Any scalar
// may be missing, blank or malformed; Resolve supplies the defaults.
type Settings struct {
	AdvancedMode Value `yaml:"advanced_mode,omitempty" json:"advanced_mode,omitzero"`
	CalcMode     Value `yaml:"calc_mode,omitempty" json:"calc_mode,omitzero"`
	SWRRate      Value `yaml:"swr_rate,omitempty" json:"swr_rate,omitzero"`
	NumAdults    Value `yaml:"num_adults,omitempty" json:"num_adults,omitzero"`
	TargetEndAge Value `yaml:"target_end_age,omitempty" json:"target_end_age,omitzero"`
	StartYear    Value `yaml:"start_year,omitempty" json:"start_year,omitzero"`
	StartMonth   Value `yaml:"start_month,omitempty" json:"start_month,omitzero"`

	P1BirthYear     Value `yaml:"p1_birth_year,omitempty" json:"p1_birth_year,omitzero"`
	P1BirthMonth    Value `yaml:"p1_birth_month,omitempty" json:"p1_birth_month,omitzero"`
	P1RetirementAge Value `yaml:"p1_retirement_age,omitempty" json:"p1_retirement_age,omitzero"`
	P1SSStartAge    Value `yaml:"p1_ss_start_age,omitempty" json:"p1_ss_start_age,omitzero"`
	P1MaxSS         Value `yaml:"p1_max_ss,omitempty" json:"p1_max_ss,omitzero"`

	P2BirthYear     Value `yaml:"p2_birth_year,omitempty" json:"p2_birth_year,omitzero"`
	P2BirthMonth    Value `yaml:"p2_birth_month,omitempty" json:"p2_birth_month,omitzero"`
	P2RetirementAge Value `yaml:"p2_retirement_age,omitempty" json:"p2_retirement_age,omitzero"`
	P2SSStartAge    Value `yaml:"p2_ss_start_age,omitempty" json:"p2_ss_start_age,omitzero"`
	P2MaxSS         Value `yaml:"p2_max_ss,omitempty" json:"p2_max_ss,omitzero"`

	BalanceTrad             Value `yaml:"balance_trad,omitempty" json:"balance_trad,omitzero"`
	BalanceRoth             Value `yaml:"balance_roth,omitempty" json:"balance_roth,omitzero"`
	BalanceCash             Value `yaml:"balance_cash,omitempty" json:"balance_cash,omitzero"`
	HomeEquity              Value `yaml:"home_equity,omitempty" json:"home_equity,omitzero"`
	AnnualMortgagePrincipal Value `yaml:"annual_mortgage_principal,omitempty" json:"annual_mortgage_principal,omitzero"`
	MortgagePayoffYear      Value `yaml:"mortgage_payoff_year,omitempty" json:"mortgage_payoff_year,omitzero"`

	ContribTrad       Value `yaml:"contrib_trad,omitempty" json:"contrib_trad,omitzero"`
	ContribRoth       Value `yaml:"contrib_roth,omitempty" json:"contrib_roth,omitzero"`
	ContribCash       Value `yaml:"contrib_cash,omitempty" json:"contrib_cash,omitzero"`
	AnnualReturn      Value `yaml:"annual_return,omitempty" json:"annual_return,omitzero"`
	CashReturn        Value `yaml:"cash_return,omitempty" json:"cash_return,omitzero"`
	TargetBufferYears Value `yaml:"target_buffer_years,omitempty" json:"target_buffer_years,omitzero"`
	BufferBuildYears  Value `yaml:"buffer_build_years,omitempty" json:"buffer_build_years,omitzero"`
	TransitionDrop    Value `yaml:"transition_drop,omitempty" json:"transition_drop,omitzero"`
	StateTaxRate      Value `yaml:"state_tax_rate,omitempty" json:"state_tax_rate,omitzero"`

	EnableCrash  Value `yaml:"enable_crash,omitempty" json:"enable_crash,omitzero"`
	CrashAge     Value `yaml:"crash_age,omitempty" json:"crash_age,omitzero"`
	CrashPercent Value `yaml:"crash_percent,omitempty" json:"crash_percent,omitzero"`

	Expenses    map[string]Value    `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Adjustments []AdjustmentSetting `yaml:"adjustments,omitempty" json:"adjustments,omitempty"`
}

// ExpenseCategories is the display order of the built-in expense buckets.
var ExpenseCategories = []string{"housing", "family", "food", "transport", "health", "lifestyle"}

// ExampleSettings returns a complete two-adult household to start from.
func ExampleSettings() *Settings {
	return &Settings{
		AdvancedMode: Flag(false),
		CalcMode:     Text("fixed"),
		SWRRate:      Num(4.0),
		NumAdults:    Int(2),
		TargetEndAge: Int(100),
		StartYear:    Int(nowFunc().Year()),
		StartMonth:   Int(1),

		P1BirthYear:     Int(1985),
		P1BirthMonth:    Int(1),
		P1RetirementAge: Int(65),
		P1SSStartAge:    Int(67),
		P1MaxSS:         Int(2500),

		P2BirthYear:     Int(1985),
		P2BirthMonth:    Int(1),
		P2RetirementAge: Int(65),
		P2SSStartAge:    Int(67),
		P2MaxSS:         Int(2500),

		BalanceTrad:             Int(150000),
		BalanceRoth:             Int(50000),
		BalanceCash:             Int(20000),
		HomeEquity:              Int(100000),
		AnnualMortgagePrincipal: Int(6000),
		MortgagePayoffYear:      Int(2045),

		ContribTrad:       Int(12000),
		ContribRoth:       Int(6000),
		ContribCash:       Int(0),
		AnnualReturn:      Num(5.0),
		CashReturn:        Num(1.5),
		TargetBufferYears: Num(3.0),
		BufferBuildYears:  Num(5.0),
		TransitionDrop:    Int(50),
		StateTaxRate:      Num(0),

		EnableCrash:  Flag(false),
		CrashAge:     Int(55),
		CrashPercent: Int(30),

		Expenses: map[string]Value{
			"housing":   Int(24000),
			"family":    Int(12000),
			"food":      Int(12000),
			"transport": Int(6000),
			"health":    Int(6000),
			"lifestyle": Int(12000),
		},
		Adjustments: []AdjustmentSetting{
			{Type: Text("year"), Trigger: Int(2045), Amount: Int(-12000), Desc: Text("Mortgage Payoff")},
			{Type: Text("age"), Trigger: Int(55), Amount: Int(-12000), Desc: Text("Childcare Ends")},
		},
	}
}

// BlankSettings returns a cleared document: every numeric field is blank and
// only the selectors keep a value.
func BlankSettings() *Settings {
	expenses := make(map[string]Value, len(ExpenseCategories))
	for _, name := range ExpenseCategories {
		expenses[name] = Text("")
	}
	return &Settings{
		AdvancedMode: Flag(false),
		CalcMode:     Text("fixed"),
		SWRRate:      Num(4.0),
		NumAdults:    Int(2),
		StartMonth:   Int(1),
		EnableCrash:  Flag(false),
		Expenses:     expenses,
	}
}

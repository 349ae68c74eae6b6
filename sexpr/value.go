package sexpr

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tildegen/tildegen/strutil"
)

// Kind represents the variant held by a Value. The declaration order is
// the variant rank used by Compare.
type Kind uint8

// List of value kinds
const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindAtom
	KindSymbol
	KindList
	KindVector
	KindMap
	KindFunc
	KindMacro
	KindNative
)

var kindNames = map[Kind]string{
	KindNil:    "nil",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindAtom:   "atom",
	KindSymbol: "symbol",
	KindList:   "list",
	KindVector: "vector",
	KindMap:    "map",
	KindFunc:   "func",
	KindMacro:  "macro",
	KindNative: "native",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Symbol is an identifier with an optional namespace qualifier.
type Symbol struct {
	NS    string
	Token string
}

func (s Symbol) String() string {
	if s.NS != "" {
		return s.NS + "." + s.Token
	}
	return s.Token
}

func compareSymbols(a, b Symbol) int {
	if c := strutil.BinCompare(a.NS, b.NS); c != 0 {
		return c
	}
	return strutil.BinCompare(a.Token, b.Token)
}

// EvalPolicy controls how many leading arguments reach a callable
// without being evaluated first.
type EvalPolicy int

// EvalAll evaluates every argument; EvalSkipAll passes all of them
// through verbatim.
const (
	EvalAll     EvalPolicy = 0
	EvalSkipAll EvalPolicy = -1
)

// EvalSkipN builds a policy that skips evaluation for the first n
// arguments.
func EvalSkipN(n int) EvalPolicy {
	return EvalPolicy(n)
}

func (p EvalPolicy) skip() int {
	if p == EvalSkipAll {
		return int(math.MaxInt32)
	}
	return int(p)
}

// NativeFn is the implementation of a host-provided procedure. It
// receives the caller's lexical frame along with the arguments.
type NativeFn func(args []*Value, frame *Frame) (*Value, error)

// NativeFunc is a host-provided procedure with its evaluation policy.
type NativeFunc struct {
	Name   string
	Policy EvalPolicy
	Fn     NativeFn
}

// Func is a user-defined procedure with a captured lexical frame.
type Func struct {
	Params   []Symbol
	VarParam *Symbol
	Body     []*Value
	Frame    *Frame
	Doc      string
}

// Macro is like Func but receives its arguments unevaluated and
// returns a form to evaluate in the caller's scope.
type Macro struct {
	Params   []Symbol
	VarParam *Symbol
	Body     []*Value
	Doc      string
}

// Value is the tagged union evaluated by the Context.
type Value struct {
	v    interface{}
	kind Kind
}

// Shared literal values
var (
	Nil   = &Value{kind: KindNil}
	True  = &Value{v: true, kind: KindBool}
	False = &Value{v: false, kind: KindBool}
)

// NewBoolValue returns the shared boolean value for v
func NewBoolValue(v bool) *Value {
	if v {
		return True
	}
	return False
}

// NewNumberValue creates a value of kind number
func NewNumberValue(v float64) *Value {
	return &Value{v: v, kind: KindNumber}
}

// NewStringValue creates a value of kind string
func NewStringValue(v string) *Value {
	return &Value{v: v, kind: KindString}
}

// NewAtomValue creates a value of kind atom
func NewAtomValue(token string) *Value {
	return &Value{v: token, kind: KindAtom}
}

// NewSymbolValue creates a value of kind symbol
func NewSymbolValue(s Symbol) *Value {
	return &Value{v: s, kind: KindSymbol}
}

// NewListValue creates a callable form from items
func NewListValue(items []*Value) *Value {
	return &Value{v: items, kind: KindList}
}

// NewVectorValue creates a data sequence from items
func NewVectorValue(items []*Value) *Value {
	return &Value{v: items, kind: KindVector}
}

// NewMapValue creates a value of kind map
func NewMapValue(m *Map) *Value {
	return &Value{v: m, kind: KindMap}
}

// NewFuncValue creates a value of kind func
func NewFuncValue(fn *Func) *Value {
	return &Value{v: fn, kind: KindFunc}
}

// NewMacroValue creates a value of kind macro
func NewMacroValue(m *Macro) *Value {
	return &Value{v: m, kind: KindMacro}
}

// NewNativeValue creates a value of kind native
func NewNativeValue(name string, policy EvalPolicy, fn NativeFn) *Value {
	return &Value{v: &NativeFunc{Name: name, Policy: policy, Fn: fn}, kind: KindNative}
}

// Kind returns the variant held by the value
func (v *Value) Kind() Kind {
	return v.kind
}

// Is returns true if the value holds the given variant
func (v *Value) Is(k Kind) bool {
	return v.kind == k
}

// IsNil returns true for the nil value
func (v *Value) IsNil() bool {
	return v.kind == KindNil
}

// Bool returns the boolean payload
func (v *Value) Bool() bool {
	return v.v.(bool)
}

// Number returns the numeric payload
func (v *Value) Number() float64 {
	return v.v.(float64)
}

// Text returns the payload of a string or atom value
func (v *Value) Text() string {
	return v.v.(string)
}

// Symbol returns the symbol payload
func (v *Value) Symbol() Symbol {
	return v.v.(Symbol)
}

// List returns the items of a list or vector value
func (v *Value) List() []*Value {
	return v.v.([]*Value)
}

// Map returns the ordered map payload
func (v *Value) Map() *Map {
	return v.v.(*Map)
}

// Func returns the user-defined procedure payload
func (v *Value) Func() *Func {
	return v.v.(*Func)
}

// Macro returns the macro payload
func (v *Value) Macro() *Macro {
	return v.v.(*Macro)
}

// Native returns the host procedure payload
func (v *Value) Native() *NativeFunc {
	return v.v.(*NativeFunc)
}

// Number coercion: bools coerce to 0/1, anything else but a number is
// an error.
func (v *Value) toNumber() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.Number(), nil
	case KindBool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot cast value '%v' to number", v)
}

// Compare is the total strict order over values: variant rank first,
// then component-wise within the variant. Returns -1, 0 or 1.
func Compare(a, b *Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}

	switch a.kind {
	case KindNil:
		return 0

	case KindBool:
		ab, bb := a.Bool(), b.Bool()
		switch {
		case ab == bb:
			return 0
		case bb:
			return -1
		}
		return 1

	case KindNumber:
		an, bn := a.Number(), b.Number()
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0

	case KindString, KindAtom:
		return strutil.BinCompare(a.Text(), b.Text())

	case KindSymbol:
		return compareSymbols(a.Symbol(), b.Symbol())

	case KindList, KindVector:
		return compareItems(a.List(), b.List())

	case KindMap:
		am, bm := a.Map(), b.Map()
		for i := 0; i < am.Len() && i < bm.Len(); i++ {
			ak, av := am.Entry(i)
			bk, bv := bm.Entry(i)
			if c := Compare(ak, bk); c != 0 {
				return c
			}
			if c := Compare(av, bv); c != 0 {
				return c
			}
		}
		return compareInts(am.Len(), bm.Len())

	case KindFunc:
		af, bf := a.Func(), b.Func()
		return compareProcs(af.Params, bf.Params, af.VarParam, bf.VarParam, af.Body, bf.Body, af.Doc, bf.Doc)

	case KindMacro:
		am, bm := a.Macro(), b.Macro()
		return compareProcs(am.Params, bm.Params, am.VarParam, bm.VarParam, am.Body, bm.Body, am.Doc, bm.Doc)

	case KindNative:
		return strutil.BinCompare(a.Native().Name, b.Native().Name)
	}

	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareItems(a, b []*Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(a), len(b))
}

func compareProcs(aParams, bParams []Symbol, aVar, bVar *Symbol, aBody, bBody []*Value, aDoc, bDoc string) int {
	for i := 0; i < len(aParams) && i < len(bParams); i++ {
		if c := compareSymbols(aParams[i], bParams[i]); c != 0 {
			return c
		}
	}
	if c := compareInts(len(aParams), len(bParams)); c != 0 {
		return c
	}
	if (aVar != nil) != (bVar != nil) {
		if aVar == nil {
			return -1
		}
		return 1
	}
	if aVar != nil {
		if c := compareSymbols(*aVar, *bVar); c != 0 {
			return c
		}
	}
	if c := compareItems(aBody, bBody); c != 0 {
		return c
	}
	return strutil.BinCompare(aDoc, bDoc)
}

// Map is an ordered mapping from Value to Value, kept sorted under
// Compare so maps themselves have a deterministic order.
type Map struct {
	keys []*Value
	vals []*Value
}

// NewMap creates an empty ordered map
func NewMap() *Map {
	return &Map{}
}

// Set inserts or replaces the entry for key. NaN numbers cannot be
// used as keys.
func (m *Map) Set(key, value *Value) error {
	if key.Is(KindNumber) && math.IsNaN(key.Number()) {
		return fmt.Errorf("NaN cannot be used as a map key")
	}
	i := sort.Search(len(m.keys), func(i int) bool {
		return Compare(m.keys[i], key) >= 0
	})
	if i < len(m.keys) && Compare(m.keys[i], key) == 0 {
		m.vals[i] = value
		return nil
	}
	m.keys = append(m.keys, nil)
	m.vals = append(m.vals, nil)
	copy(m.keys[i+1:], m.keys[i:])
	copy(m.vals[i+1:], m.vals[i:])
	m.keys[i] = key
	m.vals[i] = value
	return nil
}

// Get returns the value bound to key
func (m *Map) Get(key *Value) (*Value, bool) {
	i := sort.Search(len(m.keys), func(i int) bool {
		return Compare(m.keys[i], key) >= 0
	})
	if i < len(m.keys) && Compare(m.keys[i], key) == 0 {
		return m.vals[i], true
	}
	return nil, false
}

// Len returns the number of entries
func (m *Map) Len() int {
	return len(m.keys)
}

// Entry returns the i-th key/value pair in map order
func (m *Map) Entry(i int) (*Value, *Value) {
	return m.keys[i], m.vals[i]
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func joinValues(items []*Value) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, " ")
}

func procSignature(params []Symbol, varParam *Symbol) string {
	parts := make([]string, 0, len(params)+2)
	for _, p := range params {
		parts = append(parts, p.Token)
	}
	if varParam != nil {
		parts = append(parts, "&", varParam.Token)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"

	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"

	case KindNumber:
		return formatNumber(v.Number())

	case KindString:
		return `"` + strings.ReplaceAll(v.Text(), `"`, `\"`) + `"`

	case KindAtom:
		return ":" + v.Text()

	case KindSymbol:
		return v.Symbol().String()

	case KindList:
		return "(" + joinValues(v.List()) + ")"

	case KindVector:
		return "[" + joinValues(v.List()) + "]"

	case KindMap:
		m := v.Map()
		parts := make([]string, 0, m.Len())
		for i := 0; i < m.Len(); i++ {
			k, val := m.Entry(i)
			parts = append(parts, k.String()+" "+val.String())
		}
		return "{" + strings.Join(parts, " ") + "}"

	case KindFunc:
		fn := v.Func()
		return "(__native__.fn " + procSignature(fn.Params, fn.VarParam) + " " + joinValues(fn.Body) + ")"

	case KindMacro:
		m := v.Macro()
		return "(__native__.macro " + procSignature(m.Params, m.VarParam) + " " + joinValues(m.Body) + ")"

	case KindNative:
		return "<NativeFunc:" + v.Native().Name + ">"
	}

	return "nil"
}

// render is the buffer/str rendering: strings append verbatim, every
// other value goes through the printer.
func (v *Value) render() string {
	if v.Is(KindString) {
		return v.Text()
	}
	return v.String()
}

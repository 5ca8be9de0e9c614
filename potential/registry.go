package potential

import (
	"fmt"
	"sort"
)

// Kind describes one registered potential kind: its name, the ordered list
// of named constants following the gravitational constant in the parameter
// block, an optional dimensionality restriction (0 means any), and the slot
// implementations. A nil implementation means the quantity is undefined for
// the kind and evaluates through the NaN sentinel.
type Kind struct {
	Name     string
	Params   []string
	NDim     int
	Value    ValueFunc
	Density  DensityFunc
	Gradient GradientFunc
	Hessian  HessianFunc
}

// NParams is the full parameter block length, counting the leading
// gravitational constant.
func (k Kind) NParams() int {
	return len(k.Params) + 1
}

func (k Kind) Capabilities() (c Capability) {
	if k.Value != nil {
		c |= CapEnergy
	}
	if k.Density != nil {
		c |= CapDensity
	}
	if k.Gradient != nil {
		c |= CapGradient
	}
	if k.Hessian != nil {
		c |= CapHessian
	}
	return
}

// The kind registry is an explicit name -> Kind map populated by Register
// calls from package init functions. Lookups never scan type names at
// runtime. Registration is not synchronized: it belongs in init, before any
// evaluation starts.
var kindRegistry = make(map[string]Kind)

func Register(k Kind) error {
	if k.Name == "" {
		return fmt.Errorf("cannot register a potential kind with an empty name")
	}
	if _, exists := kindRegistry[k.Name]; exists {
		return DuplicateKeyError{Key: k.Name}
	}
	kindRegistry[k.Name] = k
	return nil
}

func MustRegister(k Kind) {
	if err := Register(k); err != nil {
		panic(err)
	}
}

func LookupKind(name string) (Kind, error) {
	k, ok := kindRegistry[name]
	if !ok {
		return Kind{}, UnknownKindError{Name: name}
	}
	return k, nil
}

// Kinds lists the registered kind names in sorted order.
func Kinds() (names []string) {
	names = make([]string, 0, len(kindRegistry))
	for name := range kindRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

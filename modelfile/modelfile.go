// Package modelfile reads mass model descriptions from YAML and turns them
// into composite potentials. A model file names its components; each
// component names a registered kind, its parameters by name, and optionally
// an origin offset and a rotation. The gravitational constant is set once
// for the whole model and passed to every component.
package modelfile

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

// One component of the mass model as given in the YAML input file
type ComponentSpec struct {
	Kind       string             `yaml:"Kind"`
	Parameters map[string]float64 `yaml:"Parameters"`
	Origin     []float64          `yaml:"Origin"`
	Rotation   []float64          `yaml:"Rotation"` // Row major NDim x NDim
}

// Parameters obtained from the YAML model file
type ModelSpec struct {
	Title      string                   `yaml:"Title"`
	NDim       int                      `yaml:"NDim"`
	GravConst  float64                  `yaml:"GravConst"`
	Components map[string]ComponentSpec `yaml:"Components"`
}

// Parse fills the spec from YAML text and applies the defaults: three
// dimensions and G = 1 when the file leaves them out.
func (ms *ModelSpec) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ms); err != nil {
		return err
	}
	if ms.NDim == 0 {
		ms.NDim = 3
	}
	if ms.GravConst == 0 {
		ms.GravConst = 1
	}
	return nil
}

func (ms *ModelSpec) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ms.Title)
	fmt.Printf("[%d]\t\t\t\t= NDim\n", ms.NDim)
	fmt.Printf("%8.5g\t\t= GravConst\n", ms.GravConst)
	for _, key := range ms.componentNames() {
		cs := ms.Components[key]
		fmt.Printf("Components[%s] = %s %v\n", key, cs.Kind, cs.Parameters)
	}
}

// componentNames returns the component keys in sorted order so that builds
// and printouts are deterministic.
func (ms *ModelSpec) componentNames() (keys []string) {
	keys = make([]string, len(ms.Components))
	i := 0
	for k := range ms.Components {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	return
}

// Build assembles the composite potential the spec describes. Components are
// added in sorted key order. Parameter maps must name exactly the parameters
// of the component's kind; the G slot comes from GravConst.
func (ms *ModelSpec) Build() (c *potential.Composite, err error) {
	if ms.NDim < 1 {
		return nil, fmt.Errorf("bad model dimension %d", ms.NDim)
	}
	c = potential.NewComposite(ms.NDim)
	for _, key := range ms.componentNames() {
		var (
			cs = ms.Components[key]
			d  *potential.Descriptor
		)
		if d, err = ms.buildComponent(cs); err != nil {
			return nil, fmt.Errorf("component %q: %w", key, err)
		}
		if err = c.Add(key, d); err != nil {
			return nil, fmt.Errorf("component %q: %w", key, err)
		}
	}
	return c, nil
}

func (ms *ModelSpec) buildComponent(cs ComponentSpec) (d *potential.Descriptor, err error) {
	var (
		k potential.Kind
		n = ms.NDim
	)
	if k, err = potential.LookupKind(cs.Kind); err != nil {
		return nil, err
	}
	pars := make([]float64, 0, k.NParams())
	pars = append(pars, ms.GravConst)
	for _, name := range k.Params {
		v, ok := cs.Parameters[name]
		if !ok {
			return nil, fmt.Errorf("kind %q needs parameter %q", cs.Kind, name)
		}
		pars = append(pars, v)
	}
	if len(cs.Parameters) != len(k.Params) {
		for _, name := range parameterNames(cs.Parameters) {
			if !contains(k.Params, name) {
				return nil, fmt.Errorf("kind %q has no parameter %q", cs.Kind, name)
			}
		}
	}
	origin := cs.Origin
	if origin == nil {
		origin = make([]float64, n)
	}
	if d, err = potential.NewKind(cs.Kind, pars, origin, n); err != nil {
		return nil, err
	}
	if len(cs.Rotation) != 0 {
		if len(cs.Rotation) != n*n {
			return nil, potential.ShapeError{
				Context: "rotation",
				Got:     fmt.Sprintf("%d values", len(cs.Rotation)),
				Want:    fmt.Sprintf("%dx%d", n, n),
			}
		}
		R := utils.NewMatrix(n, n, append([]float64(nil), cs.Rotation...))
		if err = d.SetRotation(0, R); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parameterNames(pars map[string]float64) (keys []string) {
	keys = make([]string, 0, len(pars))
	for k := range pars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Load reads and parses a model file from disk.
func Load(path string) (ms *ModelSpec, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(path); err != nil {
		return nil, err
	}
	ms = &ModelSpec{}
	if err = ms.Parse(data); err != nil {
		return nil, err
	}
	return ms, nil
}

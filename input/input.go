package input

import (
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"
)

/*
	A ParameterInput is the parsed form of a YAML input deck, organized as
	named sections of scalar parameters:

		job:
		  problem_id: radbondi
		problem:
		  cs_cgm: 0.057
		  rho_cgm: 0.01
		hydro:
		  gamma: 1.6666667

	Lookups are by (section, key). The Get* variants fail when the key is
	absent, the GetOrAdd* variants substitute and record a default, so a
	deck printed after setup shows the values actually used.
*/
type ParameterInput struct {
	Sections map[string]map[string]interface{}
}

func NewParameterInput() (pin *ParameterInput) {
	pin = &ParameterInput{
		Sections: make(map[string]map[string]interface{}),
	}
	return
}

func (pin *ParameterInput) Parse(data []byte) error {
	if pin.Sections == nil {
		pin.Sections = make(map[string]map[string]interface{})
	}
	return yaml.Unmarshal(data, &pin.Sections)
}

func ReadFile(fileName string) (pin *ParameterInput, err error) {
	var (
		data []byte
	)
	pin = NewParameterInput()
	if data, err = os.ReadFile(fileName); err != nil {
		return nil, err
	}
	if err = pin.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse input deck %s: %v", fileName, err)
	}
	return
}

func (pin *ParameterInput) lookup(section, key string) (val interface{}, err error) {
	var (
		sec    map[string]interface{}
		exists bool
	)
	if sec, exists = pin.Sections[section]; !exists {
		err = fmt.Errorf("input deck has no <%s> section, needed for key %q", section, key)
		return
	}
	if val, exists = sec[key]; !exists {
		err = fmt.Errorf("input deck is missing required key %s/%s", section, key)
		return
	}
	return
}

func (pin *ParameterInput) set(section, key string, val interface{}) {
	if _, exists := pin.Sections[section]; !exists {
		pin.Sections[section] = make(map[string]interface{})
	}
	pin.Sections[section][key] = val
}

// GetReal returns a required scalar, failing when the key is absent
func (pin *ParameterInput) GetReal(section, key string) (r float64, err error) {
	var (
		val interface{}
		ok  bool
	)
	if val, err = pin.lookup(section, key); err != nil {
		return
	}
	if r, ok = val.(float64); !ok {
		err = fmt.Errorf("key %s/%s is %T, expected a real number", section, key, val)
	}
	return
}

// GetOrAddReal returns an optional scalar, substituting def when absent
func (pin *ParameterInput) GetOrAddReal(section, key string, def float64) (r float64) {
	var (
		err error
	)
	if r, err = pin.GetReal(section, key); err != nil {
		pin.set(section, key, def)
		r = def
	}
	return
}

func (pin *ParameterInput) GetInt(section, key string) (i int, err error) {
	var (
		r float64
	)
	if r, err = pin.GetReal(section, key); err != nil {
		return
	}
	i = int(r)
	if float64(i) != r {
		err = fmt.Errorf("key %s/%s = %v is not an integer", section, key, r)
	}
	return
}

func (pin *ParameterInput) GetOrAddInt(section, key string, def int) (i int) {
	var (
		err error
	)
	if i, err = pin.GetInt(section, key); err != nil {
		pin.set(section, key, float64(def))
		i = def
	}
	return
}

func (pin *ParameterInput) GetString(section, key string) (s string, err error) {
	var (
		val interface{}
		ok  bool
	)
	if val, err = pin.lookup(section, key); err != nil {
		return
	}
	if s, ok = val.(string); !ok {
		err = fmt.Errorf("key %s/%s is %T, expected a string", section, key, val)
	}
	return
}

func (pin *ParameterInput) GetOrAddString(section, key, def string) (s string) {
	var (
		err error
	)
	if s, err = pin.GetString(section, key); err != nil {
		pin.set(section, key, def)
		s = def
	}
	return
}

func (pin *ParameterInput) GetOrAddBool(section, key string, def bool) (b bool) {
	var (
		val interface{}
		err error
		ok  bool
	)
	if val, err = pin.lookup(section, key); err != nil {
		pin.set(section, key, def)
		return def
	}
	if b, ok = val.(bool); !ok {
		pin.set(section, key, def)
		return def
	}
	return
}

func (pin *ParameterInput) Print() {
	sections := make([]string, 0, len(pin.Sections))
	for name := range pin.Sections {
		sections = append(sections, name)
	}
	sort.Strings(sections)
	for _, name := range sections {
		fmt.Printf("<%s>\n", name)
		keys := make([]string, 0, len(pin.Sections[name]))
		for k := range pin.Sections[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-16s= %v\n", k, pin.Sections[name][k])
		}
	}
}

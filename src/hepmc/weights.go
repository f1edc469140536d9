package hepmc

import (
	"fmt"
	"strconv"
)

// WeightContainer is an ordered list of weights where every slot also has a
// unique name. Weights can be looked up by position or by name. The zero
// value is an empty container.
type WeightContainer struct {
	values []float64
	names  []string
	index  map[string]int
}

// NewWeightContainer creates a container holding values with default names.
func NewWeightContainer(values ...float64) WeightContainer {
	w := WeightContainer{}
	for _, v := range values {
		w.Push(v)
	}
	return w
}

// Len returns the number of weights.
func (w *WeightContainer) Len() int {
	return len(w.values)
}

// Empty reports whether the container holds no weight.
func (w *WeightContainer) Empty() bool {
	return len(w.values) == 0
}

// Push appends a weight. Its name is its position, or the first free name
// derived from it if that name is already taken.
func (w *WeightContainer) Push(value float64) {
	name := strconv.Itoa(len(w.values))
	for w.HasKey(name) {
		name += "_"
	}
	w.push(name, value)
}

func (w *WeightContainer) push(name string, value float64) {
	if w.index == nil {
		w.index = make(map[string]int)
	}
	w.index[name] = len(w.values)
	w.values = append(w.values, value)
	w.names = append(w.names, name)
}

// Pop removes the last weight.
func (w *WeightContainer) Pop() {
	n := len(w.values)
	if n == 0 {
		return
	}
	delete(w.index, w.names[n-1])
	w.values = w.values[:n-1]
	w.names = w.names[:n-1]
}

// Clear removes every weight.
func (w *WeightContainer) Clear() {
	w.values = nil
	w.names = nil
	w.index = nil
}

// At returns the weight at position i. It panics if i is out of range.
func (w *WeightContainer) At(i int) float64 {
	return w.values[i]
}

// SetAt overwrites the weight at position i. It panics if i is out of range.
func (w *WeightContainer) SetAt(i int, value float64) {
	w.values[i] = value
}

// HasKey reports whether a weight with the given name exists.
func (w *WeightContainer) HasKey(name string) bool {
	_, ok := w.index[name]
	return ok
}

// Get returns the weight with the given name.
func (w *WeightContainer) Get(name string) (float64, bool) {
	i, ok := w.index[name]
	if !ok {
		return 0, false
	}
	return w.values[i], true
}

// Set sets the weight with the given name, appending a new slot if the name
// is not yet used.
func (w *WeightContainer) Set(name string, value float64) {
	if i, ok := w.index[name]; ok {
		w.values[i] = value
		return
	}
	w.push(name, value)
}

// Rename changes the name of the weight at position i. It fails if the new
// name is used by another slot.
func (w *WeightContainer) Rename(i int, name string) error {
	if i < 0 || i >= len(w.values) {
		return fmt.Errorf("weight index %d out of range", i)
	}
	if j, ok := w.index[name]; ok {
		if j == i {
			return nil
		}
		return fmt.Errorf("weight name %q already used by slot %d", name, j)
	}
	delete(w.index, w.names[i])
	w.names[i] = name
	w.index[name] = i
	return nil
}

// Names returns the names in position order.
func (w *WeightContainer) Names() []string {
	return append([]string(nil), w.names...)
}

// Values returns the weights in position order.
func (w *WeightContainer) Values() []float64 {
	return append([]float64(nil), w.values...)
}

// HasDefaultNames reports whether every slot is still named after its
// position.
func (w *WeightContainer) HasDefaultNames() bool {
	for i, n := range w.names {
		if n != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy.
func (w *WeightContainer) Copy() WeightContainer {
	c := WeightContainer{}
	for i, v := range w.values {
		c.push(w.names[i], v)
	}
	return c
}

// Equal compares the values in position order. Names are not compared.
func (w *WeightContainer) Equal(o *WeightContainer) bool {
	if len(w.values) != len(o.values) {
		return false
	}
	for i, v := range w.values {
		if v != o.values[i] {
			return false
		}
	}
	return true
}

package hepmc

import (
	"fmt"
	"sort"
	"strings"
)

// Flow is a sparse map from a small positive index to an integer code,
// attached to exactly one Particle. It is typically used to follow colour
// flow: particles sharing a code at a given index belong to the same chain.
type Flow struct {
	owner *Particle
	codes map[int]int
}

// NewFlow creates an empty Flow owned by p. p may be nil.
func NewFlow(p *Particle) Flow {
	return Flow{owner: p}
}

// Owner returns the particle the Flow belongs to.
func (f *Flow) Owner() *Particle {
	return f.owner
}

// Code returns the code at index, or 0 if none is set.
func (f *Flow) Code(index int) int {
	return f.codes[index]
}

// SetCode sets the code at index.
func (f *Flow) SetCode(index, code int) {
	if f.codes == nil {
		f.codes = make(map[int]int)
	}
	f.codes[index] = code
}

// Erase removes the code at index and reports whether one was set.
func (f *Flow) Erase(index int) bool {
	if _, ok := f.codes[index]; !ok {
		return false
	}
	delete(f.codes, index)
	return true
}

// Clear removes every code.
func (f *Flow) Clear() {
	f.codes = nil
}

// Len returns the number of indices with a code.
func (f *Flow) Len() int {
	return len(f.codes)
}

// Indices returns the set indices in ascending order.
func (f *Flow) Indices() []int {
	res := make([]int, 0, len(f.codes))
	for i := range f.codes {
		res = append(res, i)
	}
	sort.Ints(res)
	return res
}

// Equal compares the full code maps. Owners are not compared.
func (f *Flow) Equal(o *Flow) bool {
	if f.Len() != o.Len() {
		return false
	}
	for i, c := range f.codes {
		oc, ok := o.codes[i]
		if !ok || oc != c {
			return false
		}
	}
	return true
}

// copyFrom replaces the codes with those of o, keeping the owner.
func (f *Flow) copyFrom(o *Flow) {
	f.codes = nil
	for i, c := range o.codes {
		f.SetCode(i, c)
	}
}

func (f *Flow) hasCode(code, start, num int) bool {
	for i := start; i < start+num; i++ {
		if f.Code(i) == code {
			return true
		}
	}
	return false
}

// ConnectedPartners returns every particle reachable from the owner by
// repeatedly crossing a production or end vertex to a particle that carries
// code at one of the num indices starting at start. The owner is part of the
// result. The result is empty if the owner does not carry the code itself.
func (f *Flow) ConnectedPartners(code, start, num int) []*Particle {
	if f.owner == nil || !f.hasCode(code, start, num) {
		return nil
	}

	visited := map[*Particle]bool{f.owner: true}
	result := []*Particle{f.owner}

	stack := []*Particle{f.owner}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, v := range []*Vertex{p.productionVertex, p.endVertex} {
			if v == nil {
				continue
			}
			for _, q := range v.family() {
				if visited[q] || !q.flow.hasCode(code, start, num) {
					continue
				}
				visited[q] = true
				result = append(result, q)
				stack = append(stack, q)
			}
		}
	}

	sortByBarcode(result)
	return result
}

// DanglingConnectedPartners returns the particles of the chain found by
// ConnectedPartners which have at most one partner, that is the open ends of
// the chain.
func (f *Flow) DanglingConnectedPartners(code, start, num int) []*Particle {
	chain := f.ConnectedPartners(code, start, num)

	result := []*Particle{}
	for _, p := range chain {
		if countPartners(p, code, start, num) <= 1 {
			result = append(result, p)
		}
	}
	return result
}

// countPartners counts the particles, other than p, sharing code at p's
// production and end vertices.
func countPartners(p *Particle, code, start, num int) int {
	n := 0
	for _, v := range []*Vertex{p.productionVertex, p.endVertex} {
		if v == nil {
			continue
		}
		for _, q := range v.family() {
			if q != p && q.flow.hasCode(code, start, num) {
				n++
			}
		}
	}
	return n
}

func (f *Flow) String() string {
	parts := []string{}
	for _, i := range f.Indices() {
		parts = append(parts, fmt.Sprintf("(%d,%d)", i, f.codes[i]))
	}
	return strings.Join(parts, " ")
}

// sortByBarcode orders particles by barcode; unregistered particles (barcode
// 0) keep their relative order at the front.
func sortByBarcode(ps []*Particle) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].barcode < ps[j].barcode
	})
}

// Package pdt holds a particle data table: static properties of particle
// types keyed by PDG id, as carried by the particle data block of an ASCII
// event file.
package pdt

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// ParticleData describes one particle type. Charge is in units of the
// positron charge; Mass in the momentum unit of the file; CLifetime is c*tau
// in the length unit of the file. A CLifetime of -1 means stable.
type ParticleData struct {
	ID        int
	Name      string
	Charge    float64
	Mass      float64
	CLifetime float64
	Spin      float64
}

// Stable is the CLifetime of stable particles.
const Stable = -1

// Width returns the decay width hbar*c/ctau, or 0 for stable particles.
// hbarc is expressed in the product of the momentum and length units used.
func (d *ParticleData) Width(hbarc float64) float64 {
	if d.CLifetime <= 0 {
		return 0
	}
	return hbarc / d.CLifetime
}

// IsStable reports whether the particle never decays.
func (d *ParticleData) IsStable() bool {
	return d.CLifetime == Stable
}

// AntiParticle returns the data of the antiparticle: opposite id and charge.
func (d *ParticleData) AntiParticle(name string) *ParticleData {
	a := *d
	a.ID = -d.ID
	a.Charge = -d.Charge
	a.Name = name
	if a.Charge == 0 {
		a.Charge = 0 //no negative zero
	}
	return &a
}

func (d *ParticleData) String() string {
	return fmt.Sprintf("%s(%d) q=%g m=%g ctau=%g spin=%g",
		d.Name, d.ID, d.Charge, d.Mass, d.CLifetime, d.Spin)
}

// Table is a particle data table ordered by PDG id.
type Table struct {
	Description string

	entries *treemap.Map //id => *ParticleData
}

// NewTable creates an empty Table.
func NewTable(description string) *Table {
	return &Table{
		Description: description,
		entries:     treemap.NewWithIntComparator(),
	}
}

// Insert adds d, replacing any entry with the same id. It returns false if an
// entry was replaced.
func (t *Table) Insert(d *ParticleData) bool {
	_, found := t.entries.Get(d.ID)
	t.entries.Put(d.ID, d)
	return !found
}

// Find returns the entry for id, or nil.
func (t *Table) Find(id int) *ParticleData {
	d, ok := t.entries.Get(id)
	if !ok {
		return nil
	}
	return d.(*ParticleData)
}

// Erase removes the entry for id and reports whether there was one.
func (t *Table) Erase(id int) bool {
	if _, ok := t.entries.Get(id); !ok {
		return false
	}
	t.entries.Remove(id)
	return true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return t.entries.Size()
}

// Entries returns the entries in ascending id order.
func (t *Table) Entries() []*ParticleData {
	res := make([]*ParticleData, 0, t.entries.Size())
	it := t.entries.Iterator()
	for it.Next() {
		res = append(res, it.Value().(*ParticleData))
	}
	return res
}

// Clear removes every entry.
func (t *Table) Clear() {
	t.entries.Clear()
}

// IDs returns the ids in ascending order.
func (t *Table) IDs() []int {
	res := make([]int, 0, t.entries.Size())
	for _, k := range t.entries.Keys() {
		res = append(res, k.(int))
	}
	return res
}

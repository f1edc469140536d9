package hepmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hepmc/src/vector"
)

// A -> v1 -> B -> v2 -> C, all carrying code 7 at index 1. D leaves v1 with
// another code.
func newFlowChain(t *testing.T) (a, b, c, d *Particle) {
	mom := vector.NewFourVector(0, 0, 5, 5)
	a = NewParticle(mom, 21, StatusDecayed)
	b = NewParticle(mom, 21, StatusDecayed)
	c = NewParticle(mom, 21, StatusUndecayed)
	d = NewParticle(mom, 21, StatusUndecayed)
	a.SetFlowCode(1, 7)
	b.SetFlowCode(1, 7)
	c.SetFlowCode(1, 7)
	d.SetFlowCode(1, 8)
	d.SetFlowCode(2, 7)

	v1 := NewVertex(vector.FourVector{}, 0)
	v1.AddParticleIn(a)
	v1.AddParticleOut(b)
	v1.AddParticleOut(d)
	v2 := NewVertex(vector.FourVector{}, 0)
	v2.AddParticleIn(b)
	v2.AddParticleOut(c)

	evt := NewEvent()
	require.True(t, evt.AddVertex(v1))
	require.True(t, evt.AddVertex(v2))
	return
}

func TestConnectedPartners(t *testing.T) {
	a, b, c, d := newFlowChain(t)

	chain := a.Flow().ConnectedPartners(7, 1, 1)
	assert.Equal(t, []*Particle{a, b, c}, chain)
	assert.Equal(t, chain, c.Flow().ConnectedPartners(7, 1, 1))

	//widening the index range brings in d
	assert.Equal(t, []*Particle{a, b, d, c}, b.Flow().ConnectedPartners(7, 1, 2))

	assert.Empty(t, d.Flow().ConnectedPartners(7, 1, 1))
	assert.Equal(t, []*Particle{d}, d.Flow().ConnectedPartners(8, 1, 1))
}

func TestDanglingConnectedPartners(t *testing.T) {
	a, b, c, _ := newFlowChain(t)

	assert.Equal(t, []*Particle{a, c}, b.Flow().DanglingConnectedPartners(7, 1, 1))
	assert.Empty(t, a.Flow().DanglingConnectedPartners(9, 1, 1))
}

func TestFlowCodes(t *testing.T) {
	p := NewParticle(vector.FourVector{}, 21, StatusUndecayed)
	f := p.Flow()
	assert.Equal(t, p, f.Owner())
	assert.Equal(t, 0, f.Code(1))

	f.SetCode(2, 502)
	f.SetCode(1, 501)
	assert.Equal(t, []int{1, 2}, f.Indices())
	assert.Equal(t, "(1,501) (2,502)", f.String())

	q := p.Clone()
	assert.True(t, q.Flow().Equal(f))
	assert.Equal(t, q, q.Flow().Owner())

	assert.True(t, f.Erase(2))
	assert.False(t, f.Erase(2))
	assert.False(t, q.Flow().Equal(f))
	assert.Equal(t, 502, q.FlowCode(2))

	f.Clear()
	assert.Equal(t, 0, f.Len())
}

func TestConnectedPartnersEmptyRange(t *testing.T) {
	a, b, _, _ := newFlowChain(t)

	assert.Empty(t, a.Flow().ConnectedPartners(7, 1, 0))
	assert.Empty(t, b.Flow().ConnectedPartners(7, 1, -1))
	assert.Empty(t, b.Flow().DanglingConnectedPartners(7, 2, -3))
}

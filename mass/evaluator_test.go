package mass

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/massprop/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// unitSquareShell builds one CQUAD4 over the unit square in the xy plane.
func unitSquareShell(thickness, rho, nsm float64) *model.Model {
	m := model.NewModel()
	m.Nodes[1] = r3.Vec{}
	m.Nodes[2] = r3.Vec{X: 1}
	m.Nodes[3] = r3.Vec{X: 1, Y: 1}
	m.Nodes[4] = r3.Vec{Y: 1}
	m.Properties[10] = &model.Property{
		ID: 10, Type: model.PSHELL, Rho: rho, Thickness: thickness, NSM: nsm,
	}
	m.Elements[1] = &model.Element{
		ID: 1, Family: model.CQUAD4, Nodes: []int{1, 2, 3, 4}, PID: 10,
	}
	return m
}

// rodChain builds CROD elements end to end along x with the given segment
// lengths, all sharing one PROD property.
func rodChain(prop *model.Property, lengths ...float64) *model.Model {
	m := model.NewModel()
	m.Properties[prop.ID] = prop
	m.Nodes[1] = r3.Vec{}
	x := 0.0
	for i, l := range lengths {
		x += l
		m.Nodes[i+2] = r3.Vec{X: x}
		m.Elements[i+1] = &model.Element{
			ID: i + 1, Family: model.CROD, Nodes: []int{i + 1, i + 2}, PID: prop.ID,
		}
	}
	return m
}

func TestShellUnitSquare(t *testing.T) {
	// Scenario: t=0.05, rho=7850, no NSM -> mass = 7850*0.05*1.0 = 392.5.
	m := unitSquareShell(0.05, 7850, 0)
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)

	assert.InDelta(t, 392.5, props.Mass, 1e-10)
	assert.InDelta(t, 0.5, props.CG.X, 1e-12)
	assert.InDelta(t, 0.5, props.CG.Y, 1e-12)
	assert.Zero(t, props.CG.Z)

	// The element lumps at its centroid: direct per-point formula.
	assert.InDelta(t, 392.5*0.25, props.Inertia[Ixx], 1e-9)
	assert.InDelta(t, 392.5*0.25, props.Inertia[Iyy], 1e-9)
	assert.InDelta(t, 392.5*0.5, props.Inertia[Izz], 1e-9)
	assert.InDelta(t, 392.5*0.25, props.Inertia[Ixy], 1e-9)
	assert.Zero(t, props.Inertia[Ixz])
	assert.Zero(t, props.Inertia[Iyz])
}

func TestShellThicknessOverrides(t *testing.T) {
	cases := []struct {
		name  string
		tflag int
		tOver [4]float64
		want  float64 // effective thickness
	}{
		{"nominal", 0, [4]float64{}, 0.1},
		{"absolute", 0, [4]float64{0.2, 0.2, 0.1, 0.1}, 0.15},
		{"absolute partial", 0, [4]float64{0.3, 0, 0, 0}, (0.3 + 0.1 + 0.1 + 0.1) / 4},
		{"relative", 1, [4]float64{2, 2, 2, 2}, 0.2},
		{"relative partial", 1, [4]float64{3, 0, 0, 0}, (0.3 + 0.1 + 0.1 + 0.1) / 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := unitSquareShell(0.1, 1000, 0)
			m.Elements[1].T = tc.tOver
			m.Elements[1].TFlag = tc.tflag
			props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
			require.NoError(t, err)
			assert.InDelta(t, 1000*tc.want, props.Mass, 1e-9)
		})
	}
}

func TestShellCompositeMassPerArea(t *testing.T) {
	m := unitSquareShell(0, 0, 0)
	m.Properties[10] = &model.Property{
		ID: 10, Type: model.PCOMP, NSM: 0.5,
		Plies: []model.Ply{{Rho: 2000, Thickness: 0.001}, {Rho: 1500, Thickness: 0.002}},
	}
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)
	assert.InDelta(t, 2000*0.001+1500*0.002+0.5, props.Mass, 1e-12)
}

func TestShellTria(t *testing.T) {
	m := model.NewModel()
	m.Nodes[1] = r3.Vec{}
	m.Nodes[2] = r3.Vec{X: 2}
	m.Nodes[3] = r3.Vec{Y: 2}
	m.Properties[1] = &model.Property{ID: 1, Type: model.PSHELL, Rho: 10, Thickness: 0.5}
	m.Elements[1] = &model.Element{ID: 1, Family: model.CTRIA3, Nodes: []int{1, 2, 3}, PID: 1}

	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)
	assert.InDelta(t, 10*0.5*2.0, props.Mass, 1e-12) // area = 2
	assert.InDelta(t, 2.0/3.0, props.CG.X, 1e-12)
	assert.InDelta(t, 2.0/3.0, props.CG.Y, 1e-12)
}

func TestRodMass(t *testing.T) {
	prop := &model.Property{ID: 1, Type: model.PROD, Rho: 3, Area: 0.5, NSM: 0.1}
	m := rodChain(prop, 2)
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)
	assert.InDelta(t, (3*0.5+0.1)*2, props.Mass, 1e-12)
	assert.InDelta(t, 1.0, props.CG.X, 1e-12)
}

func TestBeamTaperedProfile(t *testing.T) {
	// Linear taper from A=2 to A=4 over the unit line: mean area 3.
	m := model.NewModel()
	m.Nodes[1] = r3.Vec{}
	m.Nodes[2] = r3.Vec{X: 2}
	m.Properties[1] = &model.Property{
		ID: 1, Type: model.PBEAML, Rho: 10,
		Stations: []model.BeamStation{
			{Xxb: 0, Area: 2, NSM: 0.5},
			{Xxb: 1, Area: 4, NSM: 0.5},
		},
	}
	m.Elements[1] = &model.Element{
		ID: 1, Family: model.CBEAM, Nodes: []int{1, 2}, PID: 1, Orient: r3.Vec{Y: 1},
	}
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)
	// (rho*A_mean + nsm_mean) * length
	assert.InDelta(t, (10*3+0.5)*2, props.Mass, 1e-12)
	assert.InDelta(t, 1.0, props.CG.X, 1e-12)
}

func TestBeamNSMOffsetCentroid(t *testing.T) {
	// PBEAM with an m1 section offset: the NSM mass lands off the axis, the
	// structural mass stays on it.
	m := model.NewModel()
	m.Nodes[1] = r3.Vec{}
	m.Nodes[2] = r3.Vec{X: 1}
	m.Properties[1] = &model.Property{
		ID: 1, Type: model.PBEAM, Rho: 1,
		Stations: []model.BeamStation{
			{Xxb: 0, Area: 2, NSM: 0.4},
			{Xxb: 1, Area: 2, NSM: 0.4},
		},
		M1A: 0.5, M1B: 0.5,
	}
	m.Elements[1] = &model.Element{
		ID: 1, Family: model.CBEAM, Nodes: []int{1, 2}, PID: 1, Orient: r3.Vec{Y: 1},
	}
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)

	// Structural 2.0 at (0.5,0,0), NSM 0.4 at (0.5,0.5,0).
	require.InDelta(t, 2.4, props.Mass, 1e-12)
	assert.InDelta(t, 0.5, props.CG.X, 1e-12)
	assert.InDelta(t, 0.4*0.5/2.4, props.CG.Y, 1e-12)
}

func TestSolidVolumes(t *testing.T) {
	solid := &model.Property{ID: 1, Type: model.PSOLID, Rho: 6}

	t.Run("tetra", func(t *testing.T) {
		m := model.NewModel()
		m.Properties[1] = solid
		m.Nodes[1] = r3.Vec{}
		m.Nodes[2] = r3.Vec{X: 1}
		m.Nodes[3] = r3.Vec{Y: 1}
		m.Nodes[4] = r3.Vec{Z: 1}
		m.Elements[1] = &model.Element{ID: 1, Family: model.CTETRA, Nodes: []int{1, 2, 3, 4}, PID: 1}
		props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
		require.NoError(t, err)
		assert.InDelta(t, 6.0/6.0, props.Mass, 1e-12)

		// Node-order inversion must not flip the sign.
		m.Elements[1].Nodes = []int{2, 1, 3, 4}
		props, err = Compute(m, Options{Logger: golog.NewTestLogger(t)})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, props.Mass, 1e-12)
	})

	t.Run("hexa unit cube", func(t *testing.T) {
		m := model.NewModel()
		m.Properties[1] = solid
		corners := []r3.Vec{
			{}, {X: 1}, {X: 1, Y: 1}, {Y: 1},
			{Z: 1}, {X: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {Y: 1, Z: 1},
		}
		nodes := make([]int, 8)
		for i, c := range corners {
			m.Nodes[i+1] = c
			nodes[i] = i + 1
		}
		m.Elements[1] = &model.Element{ID: 1, Family: model.CHEXA, Nodes: nodes, PID: 1}
		props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
		require.NoError(t, err)
		assert.InDelta(t, 6.0, props.Mass, 1e-12)
		assert.InDelta(t, 0.5, props.CG.Z, 1e-12)
	})

	t.Run("pyramid", func(t *testing.T) {
		m := model.NewModel()
		m.Properties[1] = solid
		m.Nodes[1] = r3.Vec{}
		m.Nodes[2] = r3.Vec{X: 1}
		m.Nodes[3] = r3.Vec{X: 1, Y: 1}
		m.Nodes[4] = r3.Vec{Y: 1}
		m.Nodes[5] = r3.Vec{X: 0.5, Y: 0.5, Z: 1}
		m.Elements[1] = &model.Element{ID: 1, Family: model.CPYRAM, Nodes: []int{1, 2, 3, 4, 5}, PID: 1}
		props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
		require.NoError(t, err)
		assert.InDelta(t, 6.0/3.0, props.Mass, 1e-12)
	})

	t.Run("penta wedge", func(t *testing.T) {
		m := model.NewModel()
		m.Properties[1] = solid
		m.Nodes[1] = r3.Vec{}
		m.Nodes[2] = r3.Vec{X: 1}
		m.Nodes[3] = r3.Vec{Y: 1}
		m.Nodes[4] = r3.Vec{Z: 1}
		m.Nodes[5] = r3.Vec{X: 1, Z: 1}
		m.Nodes[6] = r3.Vec{Y: 1, Z: 1}
		m.Elements[1] = &model.Element{ID: 1, Family: model.CPENTA, Nodes: []int{1, 2, 3, 4, 5, 6}, PID: 1}
		props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
		require.NoError(t, err)
		assert.InDelta(t, 6.0*0.5, props.Mass, 1e-12)
	})
}

func TestPointMassDirectInertia(t *testing.T) {
	m := model.NewModel()
	m.Nodes[1] = r3.Vec{X: 1, Y: 2, Z: 3}
	m.Masses[5] = &model.PointMass{
		ID: 5, Node: 1, Mass: 4,
		Inertia: [6]float64{1, 2, 3, 0.1, 0.2, 0.3},
	}
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)

	assert.Equal(t, 4.0, props.Mass)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, props.CG)
	// Point-mass term about the origin plus the direct tensor.
	assert.InDelta(t, 4*(4+9)+1, props.Inertia[Ixx], 1e-12)
	assert.InDelta(t, 4*(1+9)+2, props.Inertia[Iyy], 1e-12)
	assert.InDelta(t, 4*(1+4)+3, props.Inertia[Izz], 1e-12)
	assert.InDelta(t, 4*1*2+0.1, props.Inertia[Ixy], 1e-12)
}

func TestZeroMassFamiliesSkipped(t *testing.T) {
	m := unitSquareShell(0.1, 1000, 0)
	m.Elements[2] = &model.Element{ID: 2, Family: model.CELAS, Nodes: []int{1, 2}}
	m.Elements[3] = &model.Element{ID: 3, Family: model.CBUSH, Nodes: []int{2, 3}}
	props, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, props.Mass, 1e-9)
}

func TestUnsupportedFamilyStrictAndPermissive(t *testing.T) {
	m := unitSquareShell(0.1, 1000, 0)
	m.Elements[2] = &model.Element{ID: 2, Family: model.FamilyUnknown, Nodes: []int{1, 2}}
	m.Elements[3] = &model.Element{ID: 3, Family: model.FamilyUnknown, Nodes: []int{2, 3}}

	_, err := Compute(m, Options{Logger: golog.NewTestLogger(t)})
	var ue *UnsupportedElementTypeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, model.FamilyUnknown, ue.Family)

	props, err := Compute(m, Options{Permissive: true, Logger: golog.NewTestLogger(t)})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, props.Mass, 1e-9)
}

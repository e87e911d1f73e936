package pasta

import (
	"crypto/rand"
	"testing"
)

func randomScalar(t *testing.T, c *Curve) Element {
	t.Helper()
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	k, err := c.ScalarFromBytes(buf[:])
	if err != nil {
		t.Fatalf("ScalarFromBytes: %v", err)
	}
	return k
}

func TestGeneratorOnCurve(t *testing.T) {
	for _, c := range []*Curve{Pallas, Vesta} {
		g := c.Generator()
		if g.Infinity {
			t.Errorf("%s: generator should not be infinity", c.Name())
		}
		if !c.IsOnCurve(&g) {
			t.Errorf("%s: generator is not on the curve", c.Name())
		}

		inf := Affine{Infinity: true}
		if !c.IsOnCurve(&inf) {
			t.Errorf("%s: infinity should be accepted", c.Name())
		}
	}
}

func TestGroupOrder(t *testing.T) {
	for _, c := range []*Curve{Pallas, Vesta} {
		g := c.Generator()

		// order * G == infinity
		order := c.ScalarField().Modulus()
		r := c.scalarMultLimbs(&g, &order)
		if !r.isInfinity() {
			t.Errorf("%s: r*G should be infinity", c.Name())
		}

		// (order-1) * G == -G
		order[0]--
		r = c.scalarMultLimbs(&g, &order)
		neg := c.Neg(&g)
		negJ := c.FromAffine(&neg)
		if !c.Equal(&r, &negJ) {
			t.Errorf("%s: (r-1)*G should equal -G", c.Name())
		}
	}
}

func TestGroupLaw(t *testing.T) {
	for _, c := range []*Curve{Pallas, Vesta} {
		g := c.Generator()
		for i := 0; i < 10; i++ {
			a := randomScalar(t, c)
			b := randomScalar(t, c)
			pa := c.ScalarMult(&g, &a)
			pb := c.ScalarMult(&g, &b)

			// a*G + b*G == (a+b)*G
			sum := c.Sum(&pa, &pb)
			ab := c.ScalarField().Add(&a, &b)
			want := c.ScalarMult(&g, &ab)
			if !c.Equal(&sum, &want) {
				t.Fatalf("%s: a*G + b*G != (a+b)*G", c.Name())
			}

			// commutativity
			rev := c.Sum(&pb, &pa)
			if !c.Equal(&sum, &rev) {
				t.Fatalf("%s: addition is not commutative", c.Name())
			}

			// mixed addition agrees with full addition
			pbAff := c.ToAffine(&pb)
			if !c.IsOnCurve(&pbAff) {
				t.Fatalf("%s: normalized point left the curve", c.Name())
			}
			mixed := pa
			c.AddAffine(&mixed, &pbAff)
			if !c.Equal(&mixed, &sum) {
				t.Fatalf("%s: mixed addition disagrees", c.Name())
			}

			// doubling agrees with self-addition
			dbl := pa
			c.Double(&dbl)
			self := pa
			c.Add(&self, &pa)
			if !c.Equal(&dbl, &self) {
				t.Fatalf("%s: 2P != P + P", c.Name())
			}
			paAff := c.ToAffine(&pa)
			selfMixed := pa
			c.AddAffine(&selfMixed, &paAff)
			if !c.Equal(&dbl, &selfMixed) {
				t.Fatalf("%s: mixed P + P != 2P", c.Name())
			}

			// P - P == infinity
			diff := pa
			c.SubAffine(&diff, &paAff)
			if !c.IsInfinity(&diff) {
				t.Fatalf("%s: P - P should be infinity", c.Name())
			}
			negPa := c.NegJacobian(&pa)
			c.Add(&negPa, &pa)
			if !c.IsInfinity(&negPa) {
				t.Fatalf("%s: -P + P should be infinity", c.Name())
			}
		}
	}
}

func TestInfinityIdentity(t *testing.T) {
	for _, c := range []*Curve{Pallas, Vesta} {
		g := c.Generator()
		gJ := c.FromAffine(&g)

		var inf Jacobian
		c.SetInfinity(&inf)
		if !c.IsInfinity(&inf) {
			t.Fatalf("%s: SetInfinity did not produce infinity", c.Name())
		}

		r := inf
		c.Add(&r, &gJ)
		if !c.Equal(&r, &gJ) {
			t.Errorf("%s: O + G != G", c.Name())
		}
		r = gJ
		c.Add(&r, &inf)
		if !c.Equal(&r, &gJ) {
			t.Errorf("%s: G + O != G", c.Name())
		}
		r = inf
		c.AddAffine(&r, &g)
		if !c.Equal(&r, &gJ) {
			t.Errorf("%s: O + affine G != G", c.Name())
		}
		r = gJ
		infAff := Affine{Infinity: true}
		c.AddAffine(&r, &infAff)
		if !c.Equal(&r, &gJ) {
			t.Errorf("%s: G + affine O != G", c.Name())
		}
		r = inf
		c.Double(&r)
		if !c.IsInfinity(&r) {
			t.Errorf("%s: 2*O != O", c.Name())
		}

		a := c.ToAffine(&inf)
		if !a.Infinity {
			t.Errorf("%s: infinity should normalize to flagged affine", c.Name())
		}
	}
}

func TestBatchNormalize(t *testing.T) {
	for _, c := range []*Curve{Pallas, Vesta} {
		g := c.Generator()
		in := make([]Jacobian, 17)
		for i := range in {
			if i%5 == 3 {
				continue // leave a few points at infinity
			}
			k := randomScalar(t, c)
			in[i] = c.ScalarMult(&g, &k)
		}
		out := make([]Affine, len(in))
		c.BatchNormalize(out, in)
		for i := range in {
			want := c.ToAffine(&in[i])
			if !c.EqualAffine(&out[i], &want) {
				t.Fatalf("%s: batch normalization differs at %d", c.Name(), i)
			}
		}
	}
}

func TestCanonicalScalar(t *testing.T) {
	c := Pallas
	k := c.ScalarFromUint64(123456789)
	var dst [4]uint64
	c.Canonical(&dst, &k, true)
	if dst != [4]uint64{123456789} {
		t.Errorf("montgomery canonicalization gave %v", dst)
	}

	raw := Element{987654321}
	c.Canonical(&dst, &raw, false)
	if dst != [4]uint64{987654321} {
		t.Errorf("raw canonicalization gave %v", dst)
	}

	// raw limbs at or above the order are reduced
	order := Element(c.ScalarField().Modulus())
	order[0] += 5
	c.Canonical(&dst, &order, false)
	if dst != [4]uint64{5} {
		t.Errorf("order+5 reduced to %v", dst)
	}
}

func TestPointsFromDigests(t *testing.T) {
	digests := make([][32]byte, 8)
	for i := range digests {
		digests[i][0] = byte(i + 1)
	}
	out := make([]Affine, len(digests))
	Vesta.PointsFromDigests(out, digests)
	g := Vesta.Generator()
	for i := range out {
		if !Vesta.IsOnCurve(&out[i]) {
			t.Fatalf("point %d is not on the curve", i)
		}
		k := Vesta.ScalarFromUint64(uint64(i + 1))
		want := Vesta.ScalarMult(&g, &k)
		got := Vesta.FromAffine(&out[i])
		if !Vesta.Equal(&got, &want) {
			t.Fatalf("point %d is not %d*G", i, i+1)
		}
	}
}

func TestGroupOperationsDoNotAllocate(t *testing.T) {
	prev := CurrentISA()
	defer SetISA(prev)

	for _, isa := range []ISA{ISAPortable, ISAAccelerated} {
		SetISA(isa)
		for _, c := range []*Curve{Pallas, Vesta} {
			g := c.Generator()
			k := c.ScalarFromUint64(7)
			p := c.ScalarMult(&g, &k)
			q := c.FromAffine(&g)
			r := p

			ops := map[string]func(){
				"AddAffine": func() { c.AddAffine(&r, &g) },
				"SubAffine": func() { c.SubAffine(&r, &g) },
				"Add":       func() { c.Add(&r, &q) },
				"Double":    func() { c.Double(&r) },
			}
			for name, op := range ops {
				if allocs := testing.AllocsPerRun(100, op); allocs != 0 {
					t.Errorf("%s/%s: %s allocates %v times per call", isa, c.Name(), name, allocs)
				}
			}
		}
	}
}

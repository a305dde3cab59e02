package genetics

// mutationDenominator gives the ~0.1% per-bit mutation rate: a bit flips
// when a PRNG draw mod 1000 lands on zero.
const mutationDenominator = 1000

// XorShift32 advances the seed in place and returns the next value of the
// xorshift32 sequence. A seed that collapses to zero is reset to 1 so the
// stream never absorbs.
func XorShift32(seed *uint32) uint32 {
	s := *seed
	if s == 0 {
		s = 1
	}
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	if s == 0 {
		s = 1
	}
	*seed = s
	return s
}

// Crossover produces a child genome from two parents. For each locus the
// child's paternal allele is drawn from one of the father's two alleles and
// the maternal allele from one of the mother's, each choice advancing the
// seed. The child is then mutated. Identical seeds produce identical
// children.
func Crossover(father, mother Genome, seed *uint32) Genome {
	var child Genome
	for i := 0; i < NumLoci; i++ {
		fp, fm := father.Alleles(i)
		mp, mm := mother.Alleles(i)

		p := fp
		if XorShift32(seed)&1 == 1 {
			p = fm
		}
		m := mp
		if XorShift32(seed)&1 == 1 {
			m = mm
		}
		child.SetLocus(i, p, m)
	}
	Mutate(&child, seed)
	return child
}

// Mutate flips each of the genome's 128 bits with probability ~1/1000,
// advancing the seed once per bit.
func Mutate(g *Genome, seed *uint32) {
	for b := 0; b < NumLoci*2; b++ {
		if XorShift32(seed)%mutationDenominator == 0 {
			g.flipBit(b)
		}
	}
}

// Package genetics implements the 128-bit creature genome: 64 diploid loci
// of two allele bits each, with seeded crossover and mutation driving
// phenotype scalars.
package genetics

// NumLoci is the number of diploid loci in a genome.
const NumLoci = 64

// Phenotype scalars resolved from an allele pair.
const (
	phenoRecessive    = 0.2 // (0,0)
	phenoHeterozygous = 1.0 // (0,1) or (1,0)
	phenoDominant     = 1.5 // (1,1)
)

// PhenotypeMax is the largest resolvable phenotype value. Callers divide by
// it to renormalize a locus to [0,1], e.g. for color channels.
const PhenotypeMax = phenoDominant

// Genome packs 64 diploid loci into 128 bits. Locus i occupies bits
// [2i, 2i+1] of the word i/32: the paternal allele at the high bit, the
// maternal at the low bit. Genome is plain data with no identity; the zero
// value is all-recessive.
type Genome struct {
	W [2]uint64
}

// SetLocus writes the allele pair at locus i. Indices outside [0,63] are
// ignored.
func (g *Genome) SetLocus(i int, paternal, maternal bool) {
	if i < 0 || i >= NumLoci {
		return
	}
	word := i >> 5
	shift := uint(i&31) * 2
	g.W[word] &^= 3 << shift
	var v uint64
	if paternal {
		v |= 2
	}
	if maternal {
		v |= 1
	}
	g.W[word] |= v << shift
}

// Locus returns the 2-bit value (paternal<<1 | maternal) at locus i, or 0
// for out-of-range indices.
func (g Genome) Locus(i int) uint8 {
	if i < 0 || i >= NumLoci {
		return 0
	}
	return uint8(g.W[i>>5] >> (uint(i&31) * 2) & 3)
}

// Alleles returns the paternal and maternal allele bits at locus i.
func (g Genome) Alleles(i int) (paternal, maternal bool) {
	v := g.Locus(i)
	return v&2 != 0, v&1 != 0
}

// flipBit flips raw bit b in [0,127].
func (g *Genome) flipBit(b int) {
	g.W[b>>6] ^= 1 << uint(b&63)
}

// Phenotype maps a 2-bit locus value to its scalar: recessive pairs resolve
// to 0.2, heterozygous pairs to 1.0, dominant pairs to 1.5.
func Phenotype(locusValue uint8) float32 {
	switch locusValue & 3 {
	case 0:
		return phenoRecessive
	case 3:
		return phenoDominant
	default:
		return phenoHeterozygous
	}
}

// Resolve returns the phenotype scalar for locus i of g.
func (g Genome) Resolve(i int) float32 {
	return Phenotype(g.Locus(i))
}

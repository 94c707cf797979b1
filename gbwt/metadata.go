package gbwt

import "slices"

// PathName identifies a stored path by sample, contig, phase and fragment.
type PathName struct {
	Sample uint64
	Contig uint64
	Phase  uint64
	Count  uint64
}

// Metadata is opaque path bookkeeping passed through unchanged.
type Metadata struct {
	Samples    []string
	Contigs    []string
	Haplotypes uint64
	Paths      []PathName
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	return Metadata{
		Samples:    slices.Clone(m.Samples),
		Contigs:    slices.Clone(m.Contigs),
		Haplotypes: m.Haplotypes,
		Paths:      slices.Clone(m.Paths),
	}
}

// Empty reports whether the metadata holds nothing.
func (m Metadata) Empty() bool {
	return len(m.Samples) == 0 && len(m.Contigs) == 0 && m.Haplotypes == 0 && len(m.Paths) == 0
}

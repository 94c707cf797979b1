package record

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/hupe1980/lfgbwt/internal/sdvector"
	"github.com/hupe1980/lfgbwt/persistence"
)

// WriteTo writes the record structures in the order outgoing, first,
// firstByAlphabet, firstByAlphComp, alphabet, alphabetByRun.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	enc := persistence.NewEncoder(w)
	enc.Uvarints(r.outgoing)
	enc.Value(r.first)
	enc.Value(r.firstByAlphabet)
	enc.Value(r.firstByAlphComp)
	enc.Value(r.alphabet)
	enc.Uvarints(r.alphabetByRun)
	return enc.Written(), enc.Err()
}

// Decode reads a record written by WriteTo and checks that its structures
// are consistent with each other and with the comp alphabet size.
func Decode(dec *persistence.Decoder, effective uint64) (*Record, error) {
	r := &Record{}
	r.outgoing = dec.Uvarints(effective)
	r.first = readVector(dec)
	r.firstByAlphabet = readVector(dec)
	r.firstByAlphComp = readVector(dec)
	r.alphabet = readVector(dec)
	r.alphabetByRun = dec.Uvarints(r.first.Count())
	if err := dec.Err(); err != nil {
		return nil, err
	}
	if err := r.validate(effective); err != nil {
		return nil, err
	}
	return r, nil
}

func readVector(dec *persistence.Decoder) sdvector.Vector {
	if dec.Err() != nil {
		return sdvector.Vector{}
	}
	v, err := sdvector.ReadFrom(dec.Reader())
	if errors.Is(err, sdvector.ErrCorrupt) {
		err = fmt.Errorf("%w: %v", persistence.ErrCorrupt, err)
	}
	if err != nil {
		dec.Fail(err)
	}
	return v
}

func (r *Record) validate(effective uint64) error {
	n := r.Size()
	sigma := r.Outdegree()
	runs := r.first.Count()

	if n == 0 {
		if sigma != 0 || runs != 0 || r.alphabet.Count() != 0 || len(r.alphabetByRun) != 0 {
			return fmt.Errorf("%w: empty record with structures", persistence.ErrCorrupt)
		}
		return nil
	}

	switch {
	case sigma == 0:
		return fmt.Errorf("%w: record of length %d without edges", persistence.ErrCorrupt, n)
	case r.alphabet.Size() != effective || r.alphabet.Count() != sigma:
		return fmt.Errorf("%w: alphabet (%d of %d) does not match %d edges over %d nodes",
			persistence.ErrCorrupt, r.alphabet.Count(), r.alphabet.Size(), sigma, effective)
	case r.firstByAlphabet.Size() != n*sigma || r.firstByAlphComp.Size() != n:
		return fmt.Errorf("%w: run vectors do not match record length %d", persistence.ErrCorrupt, n)
	case r.firstByAlphabet.Count() != runs || r.firstByAlphComp.Count() != runs || uint64(len(r.alphabetByRun)) != runs:
		return fmt.Errorf("%w: inconsistent run counts", persistence.ErrCorrupt)
	case !r.first.Contains(0) || !r.firstByAlphComp.Contains(0):
		return fmt.Errorf("%w: first run does not start at 0", persistence.ErrCorrupt)
	}
	for _, outrank := range r.alphabetByRun {
		if outrank >= sigma {
			return fmt.Errorf("%w: run outrank %d out of range", persistence.ErrCorrupt, outrank)
		}
	}
	return nil
}

// Equal reports whether two records have identical structures.
func (r *Record) Equal(o *Record) bool {
	return slices.Equal(r.outgoing, o.outgoing) &&
		r.first.Equal(o.first) &&
		r.firstByAlphabet.Equal(o.firstByAlphabet) &&
		r.firstByAlphComp.Equal(o.firstByAlphComp) &&
		r.alphabet.Equal(o.alphabet) &&
		slices.Equal(r.alphabetByRun, o.alphabetByRun)
}

package rlgbwt

import "github.com/hupe1980/lfgbwt/gbwt"

type options struct {
	bidirectional bool
	tags          gbwt.Tags
	metadata      *gbwt.Metadata
}

// Option configures FromPaths.
type Option func(*options)

// WithBidirectional stores the reverse complement of every path next to the
// path itself. Sequence 2k is path k and sequence 2k+1 its reverse.
func WithBidirectional() Option {
	return func(o *options) {
		o.bidirectional = true
	}
}

// WithTags adds tags to the index. The source tag is always set.
func WithTags(tags gbwt.Tags) Option {
	return func(o *options) {
		for k, v := range tags {
			o.tags[k] = v
		}
	}
}

// WithMetadata attaches metadata and sets the metadata flag.
func WithMetadata(md gbwt.Metadata) Option {
	return func(o *options) {
		clone := md.Clone()
		o.metadata = &clone
	}
}

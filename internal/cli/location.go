package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/blobstore"
	"github.com/hupe1980/lfgbwt/blobstore/minio"
	"github.com/hupe1980/lfgbwt/blobstore/s3"
)

// Location schemes.
const (
	schemeFile  = "file"
	schemeS3    = "s3"
	schemeMinIO = "minio"
)

// location names where an index is stored.
type location struct {
	Scheme string
	Bucket string
	// Key is the blob name, or the file path for the file scheme.
	Key string
}

func (l location) String() string {
	if l.Scheme == schemeFile {
		return l.Key
	}
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Key)
}

// parseLocation parses a file path, s3://bucket/key or minio://bucket/key.
func parseLocation(s string) (location, error) {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		if s == "" {
			return location{}, fmt.Errorf("empty index location")
		}
		return location{Scheme: schemeFile, Key: s}, nil
	}
	switch scheme {
	case schemeS3, schemeMinIO:
	case schemeFile:
		if rest == "" {
			return location{}, fmt.Errorf("empty index location %q", s)
		}
		return location{Scheme: schemeFile, Key: rest}, nil
	default:
		return location{}, fmt.Errorf("unsupported location scheme %q", scheme)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return location{}, fmt.Errorf("location %q must name a bucket and a key", s)
	}
	return location{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// openStore connects to the blob store of a remote location.
func openStore(ctx context.Context, cfg Config, loc location) (blobstore.BlobStore, error) {
	switch loc.Scheme {
	case schemeS3:
		var opts []s3.Option
		if cfg.S3.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.S3.Region))
		}
		if cfg.S3.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.S3.Endpoint))
		}
		if cfg.S3.Prefix != "" {
			opts = append(opts, s3.WithPrefix(cfg.S3.Prefix))
		}
		return s3.New(ctx, loc.Bucket, opts...)
	case schemeMinIO:
		if cfg.MinIO.Endpoint == "" {
			return nil, fmt.Errorf("%s: minio endpoint not configured", loc)
		}
		return minio.New(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Region:    cfg.MinIO.Region,
			Secure:    cfg.MinIO.Secure,
			Bucket:    loc.Bucket,
			Prefix:    cfg.MinIO.Prefix,
		})
	default:
		return nil, fmt.Errorf("%s: not a blob store location", loc)
	}
}

// saveIndex writes idx to the file or blob store named by target.
func saveIndex(ctx context.Context, cfg Config, idx *lfgbwt.Index, target string) error {
	loc, err := parseLocation(target)
	if err != nil {
		return err
	}
	if loc.Scheme == schemeFile {
		return idx.Save(ctx, loc.Key)
	}
	store, err := openStore(ctx, cfg, loc)
	if err != nil {
		return err
	}
	return idx.SaveToStore(ctx, store, loc.Key)
}

// loadIndex reads the index stored at source.
func loadIndex(ctx context.Context, cfg Config, source string, opts ...lfgbwt.Option) (*lfgbwt.Index, error) {
	loc, err := parseLocation(source)
	if err != nil {
		return nil, err
	}
	if loc.Scheme == schemeFile {
		return lfgbwt.Load(ctx, loc.Key, opts...)
	}
	store, err := openStore(ctx, cfg, loc)
	if err != nil {
		return nil, err
	}
	return lfgbwt.LoadFromStore(ctx, store, loc.Key, opts...)
}

func parseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(s)
}

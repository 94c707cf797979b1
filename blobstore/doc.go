// Package blobstore stores serialized indexes as named, immutable blobs.
//
// BlobStore is the interface for reading and writing index artifacts.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and caches
//   - LocalStore: local filesystem with mmap reads and atomic writes
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)           // Open for reading
//	    Create(ctx, name) (WritableBlob, error) // Create for writing
//	    Put(ctx, name, data) error              // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that can expose their contents without copying implement Mappable;
// NewReader prefers it over ranged reads.
package blobstore

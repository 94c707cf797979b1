// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible services (Ceph, Garage,
// SeaweedFS) without the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "indexes",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	idx, err := lfgbwt.LoadFromStore(ctx, store, "hprc.lfgbwt")
//
// An existing *minio.Client can be wrapped with NewStore.
package minio

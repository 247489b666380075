// Package storage provides the object-storage abstraction behind the
// remote corpus mirror.
//
// It wraps the MinIO Go client with a narrow interface covering what the
// sync command needs: verifying or creating the target bucket, uploading
// corpus files, listing mirrored objects and removing stale ones. The
// Client interface keeps storage interactions mockable for unit testing
// (see core/storage/mocks).
package storage

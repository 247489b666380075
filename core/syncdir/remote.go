package syncdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"locsync/core/storage"
)

// RemoteOptions configures a mirror into an S3-compatible bucket.
type RemoteOptions struct {
	// Src is the corpus tree to upload.
	Src string

	// Bucket is the target bucket; created when missing.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// DryRun logs the planned uploads without transferring anything.
	DryRun bool
}

// RemoteStats summarizes a remote mirror run.
type RemoteStats struct {
	Uploaded int
	Removed  int
}

// MirrorRemote uploads every non-ignored file under Src into the bucket
// and removes objects under Prefix that no longer exist locally, so the
// bucket reflects exactly the current corpus.
func MirrorRemote(ctx context.Context, client storage.Client, opts RemoteOptions, log *zap.Logger) (*RemoteStats, error) {
	if _, err := os.Stat(opts.Src); err != nil {
		return nil, fmt.Errorf("source folder: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if opts.DryRun {
			log.Info("dry-run: would create bucket", zap.String("bucket", opts.Bucket))
		} else if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("bucket create: %w", err)
		}
	}

	stats := &RemoteStats{}
	local := make(map[string]struct{})

	err = filepath.WalkDir(opts.Src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if shouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldIgnore(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(opts.Src, path)
		if err != nil {
			return err
		}
		key := objectKey(opts.Prefix, rel)
		local[key] = struct{}{}

		if opts.DryRun {
			log.Info("dry-run: would upload", zap.String("object", key))
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}
		_, err = client.PutObject(ctx, opts.Bucket, key, f, info.Size(), minio.PutObjectOptions{
			ContentType: "text/tab-separated-values",
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		stats.Uploaded++
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Drop remote objects that disappeared locally.
	listPrefix := opts.Prefix
	if listPrefix != "" && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}
	for obj := range client.ListObjects(ctx, opts.Bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if _, ok := local[obj.Key]; ok {
			continue
		}
		if opts.DryRun {
			log.Info("dry-run: would remove stale object", zap.String("object", obj.Key))
			continue
		}
		if err := client.RemoveObject(ctx, opts.Bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return nil, fmt.Errorf("remove %s: %w", obj.Key, err)
		}
		stats.Removed++
	}

	return stats, nil
}

func objectKey(prefix, rel string) string {
	key := filepath.ToSlash(rel)
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, "/") + "/" + key
}

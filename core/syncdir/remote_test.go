package syncdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"locsync/core/storage/mocks"
)

func objectChan(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestMirrorRemoteUploadsAndPrunes(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "text"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "text", "units.loc.tsv"),
		[]byte("key\ttext\ttooltip\n"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "translations").Return(true, nil)
	client.On("PutObject", mock.Anything, "translations", "corpus/text/units.loc.tsv",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "translations", mock.Anything).
		Return(objectChan(
			minio.ObjectInfo{Key: "corpus/text/units.loc.tsv"},
			minio.ObjectInfo{Key: "corpus/text/stale.loc.tsv"},
		))
	client.On("RemoveObject", mock.Anything, "translations", "corpus/text/stale.loc.tsv",
		mock.Anything).Return(nil)

	stats, err := MirrorRemote(context.Background(), client, RemoteOptions{
		Src:    src,
		Bucket: "translations",
		Prefix: "corpus",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Uploaded)
	assert.Equal(t, 1, stats.Removed)
	client.AssertExpectations(t)
}

func TestMirrorRemoteCreatesMissingBucket(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "units.loc.tsv"), []byte("key\ttext\ttooltip\n"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "translations").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "translations", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "translations", "units.loc.tsv",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(objectChan())

	_, err := MirrorRemote(context.Background(), client, RemoteOptions{
		Src:    src,
		Bucket: "translations",
	}, zap.NewNop())
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestMirrorRemoteDryRunTransfersNothing(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "units.loc.tsv"), []byte("key\ttext\ttooltip\n"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "translations").Return(false, nil)
	client.On("ListObjects", mock.Anything, "translations", mock.Anything).
		Return(objectChan(minio.ObjectInfo{Key: "stale.loc.tsv"}))

	stats, err := MirrorRemote(context.Background(), client, RemoteOptions{
		Src:    src,
		Bucket: "translations",
		DryRun: true,
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Uploaded)
	assert.Equal(t, 0, stats.Removed)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMirrorRemoteSkipsIgnoredFiles(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, ".env"), []byte("SECRET=1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "units.loc.tsv"), []byte("key\ttext\ttooltip\n"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "translations").Return(true, nil)
	client.On("PutObject", mock.Anything, "translations", "units.loc.tsv",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(objectChan())

	stats, err := MirrorRemote(context.Background(), client, RemoteOptions{
		Src:    src,
		Bucket: "translations",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Uploaded)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "text/units.loc.tsv", objectKey("", filepath.Join("text", "units.loc.tsv")))
	assert.Equal(t, "corpus/text/units.loc.tsv", objectKey("corpus", filepath.Join("text", "units.loc.tsv")))
	assert.Equal(t, "corpus/units.loc.tsv", objectKey("corpus/", "units.loc.tsv"))
}

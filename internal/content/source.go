package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// File is one raw Markdown document. Path is relative to the source root and
// uses forward slashes.
type File struct {
	Path string
	Data []byte
}

type Source interface {
	Files(ctx context.Context) ([]File, error)
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

// FSSource walks a file system for Markdown files.
type FSSource struct {
	FS fs.FS
}

func NewDirSource(dir string) *FSSource {
	return &FSSource{FS: os.DirFS(dir)}
}

func (s *FSSource) Files(ctx context.Context) ([]File, error) {
	var files []File
	err := fs.WalkDir(s.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(p) {
			return nil
		}
		data, err := fs.ReadFile(s.FS, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, File{Path: p, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// BucketSource reads posts stored as objects under a prefix of a MinIO bucket.
type BucketSource struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewBucketSource(client *minio.Client, bucket, prefix string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: prefix}
}

func (s *BucketSource) Files(ctx context.Context) ([]File, error) {
	var files []File
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	})
	for info := range objects {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s: %w", s.bucket, info.Err)
		}
		if !isMarkdown(info.Key) {
			continue
		}
		data, err := s.read(ctx, info.Key)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Path: strings.TrimPrefix(strings.TrimPrefix(info.Key, s.prefix), "/"),
			Data: data,
		})
	}
	return files, nil
}

func (s *BucketSource) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

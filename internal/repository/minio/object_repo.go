package minio

import (
	"bytes"
	"context"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
)

// ObjectRepo хранит медиа админки в бакете MinIO.
type ObjectRepo struct {
	mc     *minio.Client
	bucket string
}

func NewObjectRepo(mc *minio.Client, bucket string) *ObjectRepo {
	return &ObjectRepo{
		mc:     mc,
		bucket: bucket,
	}
}

// Upload загружает объект и возвращает его ключ.
func (o *ObjectRepo) Upload(ctx context.Context, object *domain.MediaObject) (string, error) {
	info, err := o.mc.PutObject(ctx, object.Bucket, object.ObjectKey, bytes.NewReader(object.Bytes), object.Size, minio.PutObjectOptions{
		ContentType:  object.ContentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект по ключу. Отсутствующий объект ошибкой не считается.
func (o *ObjectRepo) Delete(ctx context.Context, key string) error {
	if err := o.mc.RemoveObject(ctx, o.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

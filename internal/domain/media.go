package domain

// MediaObject описывает файл из админки, который хранится в S3.
type MediaObject struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Bytes       []byte
	Size        int64
	ContentType string
}

func NewMediaObject(id string, bucket string, objectKey string, data []byte, size int64, contentType string) *MediaObject {
	return &MediaObject{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        size,
		ContentType: contentType,
	}
}

// mediaExtensions — изображения, которые админка может загружать в бакет.
var mediaExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MediaExtension возвращает расширение объекта для MIME-типа изображения.
func MediaExtension(contentType string) (string, bool) {
	ext, ok := mediaExtensions[contentType]
	return ext, ok
}

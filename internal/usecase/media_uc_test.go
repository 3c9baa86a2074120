package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeMediaInfra struct {
	req *UploadMediaReq
}

func (f *fakeMediaInfra) UploadFiles(_ context.Context, req *UploadMediaReq) (*UploadMediaRes, error) {
	f.req = req
	keys := make([]string, 0, len(req.Files))
	for i := range req.Files {
		keys = append(keys, req.Folder+"/file-"+string(rune('a'+i))+".png")
	}
	return &UploadMediaRes{Keys: keys}, nil
}

func (f *fakeMediaInfra) CleanupFiles([]string) {}

func TestMediaUploadBuildsPublicURLs(t *testing.T) {
	infra := &fakeMediaInfra{}
	uc := NewMediaUC(infra, "http://cdn.megashop.sk/media/", logger.NewNop())

	res, err := uc.Upload(context.Background(), &UploadMediaReq{
		Folder: "Produkty",
		Files:  []UploadedFile{{Name: "a.png", ContentType: "application/octet-stream", Data: pngHeader}},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(res.URLs) != 1 || res.URLs[0] != "http://cdn.megashop.sk/media/produkty/file-a.png" {
		t.Fatalf("unexpected urls %v", res.URLs)
	}
	if infra.req.Files[0].ContentType != "image/png" {
		t.Fatalf("content type must be sniffed, got %s", infra.req.Files[0].ContentType)
	}
}

func TestMediaUploadValidation(t *testing.T) {
	uc := NewMediaUC(&fakeMediaInfra{}, "http://cdn", logger.NewNop())

	tooMany := make([]UploadedFile, MaxMediaFiles+1)
	for i := range tooMany {
		tooMany[i] = UploadedFile{Name: "x.png", ContentType: "image/png", Data: pngHeader}
	}

	cases := []struct {
		name  string
		files []UploadedFile
		want  error
	}{
		{"no files", nil, e.ErrNoFiles},
		{"too many", tooMany, e.ErrTooManyFiles},
		{"too large", []UploadedFile{{Name: "big.png", ContentType: "image/png", Data: pngHeader, Size: MaxMediaFileSize + 1}}, e.ErrFileTooLarge},
		{"not an image", []UploadedFile{{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte(strings.Repeat("%PDF-1.4", 4))}}, e.ErrUnsupportedMediaType},
		{"script labelled as png", []UploadedFile{{Name: "x.png", ContentType: "image/png", Data: []byte("<html><script>alert(1)</script></html>")}}, e.ErrUnsupportedMediaType},
		{"svg rejected", []UploadedFile{{Name: "logo.svg", ContentType: "image/svg+xml", Data: bytes.Repeat([]byte("<svg>"), 4)}}, e.ErrUnsupportedMediaType},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := uc.Upload(context.Background(), &UploadMediaReq{Files: c.files}); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

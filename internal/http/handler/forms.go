package handler

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"abcip/internal/service"
)

const datetimeLocalLayout = "2006-01-02T15:04"

// formFiles opens multipart uploads and closes them once the request is served.
type formFiles struct {
	closers []io.Closer
}

// get returns the file posted under field, or nil when the form carries none.
func (f *formFiles) get(c *fiber.Ctx, field string) (*service.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart body, so there is nothing to upload.
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil, nil
	}
	fh := files[0]
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	f.closers = append(f.closers, file)

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &service.Upload{Reader: file, Filename: fh.Filename, ContentType: ct, Size: fh.Size}, nil
}

func (f *formFiles) Close() {
	for _, c := range f.closers {
		c.Close()
	}
}

func formString(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

// formBool reads a checkbox. Browsers omit unchecked boxes entirely.
func formBool(c *fiber.Ctx, key string) bool {
	return cast.ToBool(c.FormValue(key))
}

// formTime parses a datetime-local input in loc. Empty or malformed input yields nil.
func formTime(c *fiber.Ctx, key string, loc *time.Location) *time.Time {
	v := formString(c, key)
	if v == "" {
		return nil
	}
	t, err := time.ParseInLocation(datetimeLocalLayout, v, loc)
	if err != nil {
		return nil
	}
	return &t
}

// queryPage reads ?page= as a 1-based page number.
func queryPage(c *fiber.Ctx) int {
	p := cast.ToInt(c.Query("page"))
	if p < 1 {
		return 1
	}
	return p
}

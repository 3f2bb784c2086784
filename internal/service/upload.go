package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"abcip/internal/storage"
)

// Upload is a file received from an admin form, streamed straight to object storage.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// objectKey builds <folder>/<uuid><ext>. The original name only contributes its extension.
func objectKey(folder, filename string) string {
	return path.Join(folder, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
}

// staging tracks the objects uploaded while serving one write so they can be
// removed again if the database write fails, and the objects the write
// replaced so they can be removed once it succeeds.
type staging struct {
	store    storage.Storage
	uploaded []string
	replaced []string
}

func newStaging(store storage.Storage) *staging {
	return &staging{store: store}
}

// put uploads up (when present) and points *field at its public URL.
func (s *staging) put(ctx context.Context, folder string, up *Upload, field *string) error {
	if up == nil {
		return nil
	}
	if up.Reader == nil {
		return ErrReaderNil
	}
	key := objectKey(folder, up.Filename)
	info, err := s.store.Put(ctx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
		Metadata: map[string]string{
			"original-filename": up.Filename,
		},
	})
	if err != nil {
		return fmt.Errorf("upload to storage: %w", err)
	}
	s.uploaded = append(s.uploaded, info.Key)
	if *field != "" {
		s.replaced = append(s.replaced, *field)
	}
	*field = s.store.PublicURL(info.Key)
	return nil
}

// supersede records that a write points a field away from old, so done
// removes old once the write commits. Uploads record their own replacements.
func (s *staging) supersede(old, current string) {
	if old == "" || old == current {
		return
	}
	for _, u := range s.replaced {
		if u == old {
			return
		}
	}
	s.replaced = append(s.replaced, old)
}

// fail deletes everything uploaded so far and returns cause, annotated when a rollback happened.
func (s *staging) fail(ctx context.Context, cause error) error {
	if len(s.uploaded) == 0 {
		return cause
	}
	for _, key := range s.uploaded {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return fmt.Errorf("db save failed: %w; rollback delete failed: %v", cause, delErr)
		}
	}
	return fmt.Errorf("db save failed: %w", cause)
}

// abort removes what was uploaded before a later upload of the same write failed.
func (s *staging) abort(ctx context.Context) {
	for _, key := range s.uploaded {
		_ = s.store.Delete(ctx, key)
	}
}

// done removes the objects the committed write no longer references.
// Foreign URLs are left alone and a failed delete only leaves an orphan object.
func (s *staging) done(ctx context.Context) {
	for _, u := range s.replaced {
		discard(ctx, s.store, u)
	}
}

// discard deletes the object behind a public URL when it lives in our bucket.
func discard(ctx context.Context, store storage.Storage, u string) {
	if u == "" {
		return
	}
	if key, ok := store.KeyFromURL(u); ok {
		_ = store.Delete(ctx, key)
	}
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

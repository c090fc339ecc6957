// Package media stores listing images on disk and releases them when a
// listing is deleted or its images replaced.
package media

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"kasuwa/models"
	"kasuwa/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

var listingDir = "./static/listingpic"

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store releases a stored image by its storage id. Implementations must
// treat a missing object as success; cleanup is best-effort and re-run
// safe.
type Store interface {
	Delete(ctx context.Context, storageID string) error
}

// DiskStore keeps originals and thumbnails under a local directory.
type DiskStore struct {
	Dir string
}

func NewDiskStore() *DiskStore {
	if err := os.MkdirAll(listingDir, 0755); err != nil {
		log.Printf("media: create dir %s: %v", listingDir, err)
	}
	return &DiskStore{Dir: listingDir}
}

func (s *DiskStore) Delete(_ context.Context, storageID string) error {
	if storageID == "" {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, storageID+"*"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// ReleaseImages deletes the storage objects behind a listing's images in
// the background. Failures are logged; the delete that triggered the
// cleanup already succeeded and stays successful.
func ReleaseImages(store Store, images []models.ImageRef) {
	go func() {
		for _, img := range images {
			if img.StorageID == "" {
				continue
			}
			if err := store.Delete(context.Background(), img.StorageID); err != nil {
				log.Printf("media: failed to release %s: %v", img.StorageID, err)
			}
		}
	}()
}

// UploadImage accepts one multipart image, stores the original plus a 300px
// thumbnail, and returns the {url, storageId} pair listings embed.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(handler.Filename)
	if !supportedExts[ext] {
		http.Error(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Invalid image data", http.StatusBadRequest)
		return
	}

	id := uuid.New().String()
	originalPath := filepath.Join(listingDir, id+ext)
	thumbPath := filepath.Join(listingDir, id+"_thumb"+ext)

	if err := imaging.Save(img, originalPath); err != nil {
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Printf("media: thumbnail for %s: %v", id, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"url":       fmt.Sprintf("/static/listingpic/%s%s", id, ext),
		"thumbUrl":  fmt.Sprintf("/static/listingpic/%s_thumb%s", id, ext),
		"storageId": id,
	})
}

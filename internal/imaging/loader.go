package imaging

import (
	"fmt"
	"path/filepath"
	"sync"
)

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads and decodes.
//
// The cache stores *Image values keyed by the canonical path of the file
// they were loaded from, so "a.png", "./a.png" and the absolute path all
// share one entry.
// Because an Image is mutable, Load always hands out a clone: transforms
// applied by the caller never reach the cached copy.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Saving over a cached file should be followed by Evict with any
// spelling of its path so the next Load sees the new file.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	thumb, err := img.Resize(imaging.ResizeOptions{Width: 200})
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Image),
	}
}

// Load returns a private copy of the image at path, decoding it from disk
// on the first call for that path.
//
// The image is cached under its canonical path. Different spellings of the
// same file (relative vs absolute, symlinks) hit the same entry.
//
// # Errors
//
//   - Returns error if the path is not an existing regular file
//   - Returns an error matching ErrDecode if the file is not a GIF, JPEG,
//     PNG, or WEBP image
func (c *ImageCache) Load(path string) (*Image, error) {
	key, err := canonicalPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.RLock()
	if img, ok := c.images[key]; ok {
		c.mu.RUnlock()
		return img.Clone(), nil
	}
	c.mu.RUnlock()

	img, err := Open(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()

	return img.Clone(), nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict removes the image cached for path, matching by canonical path.
// A file that no longer exists is matched through its resolved directory.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	key, err := canonicalPath(path)
	if err != nil {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		key = abs
		if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
			key = filepath.Join(dir, filepath.Base(abs))
		}
	}

	c.mu.Lock()
	delete(c.images, key)
	c.mu.Unlock()
}

// LoadImageInfo loads an image through the cache and returns its metadata,
// including the size of the file on disk.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return img.Info(), nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional
// metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  img.Width(),
		Height: img.Height(),
	}, nil
}

package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/ameya/config"
	"github.com/shashiranjanraj/ameya/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. The local disk is always
// available; the s3 disk only when S3_BUCKET is configured.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultDisk = config.Get("STORAGE_DISK", "local")
	disks["local"] = newLocalDisk()

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.L.Warn("s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	mu.RLock()
	d, ok := disks[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// The remaining helpers proxy to the default disk (STORAGE_DISK,
// default "local").

func Put(path string, r io.Reader) error      { return Use(defaultDisk).Put(path, r) }
func Open(path string) (io.ReadCloser, error) { return Use(defaultDisk).Open(path) }
func Exists(path string) bool                 { return Use(defaultDisk).Exists(path) }
func Delete(path string) error                { return Use(defaultDisk).Delete(path) }
func URL(path string) string                  { return Use(defaultDisk).URL(path) }

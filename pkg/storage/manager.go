package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/muthuvel/santhai/config"
	"github.com/muthuvel/santhai/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. The local disk always exists so
// invoice generation never depends on cloud credentials; the S3 disk is
// added only when a bucket is configured.
func Connect() {
	defaultDisk = config.Get("STORAGE_DISK", "local")

	disks["local"] = newLocalDisk()

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3"). Unknown names panic;
// they are wiring mistakes, not runtime conditions.
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk at boot, used by tests to point
// the archive at a temp directory.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk { return Use(defaultDisk) }

// The helpers below proxy to the default disk.

func Put(path string, content []byte) error    { return defaultD().Put(path, content) }
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }
func Get(path string) ([]byte, error)          { return defaultD().Get(path) }
func GetStream(path string) (io.ReadCloser, error) {
	return defaultD().GetStream(path)
}
func Exists(path string) bool           { return defaultD().Exists(path) }
func Missing(path string) bool          { return defaultD().Missing(path) }
func Size(path string) (int64, error)   { return defaultD().Size(path) }
func URL(path string) string            { return defaultD().URL(path) }
func Delete(path string) error          { return defaultD().Delete(path) }
func Files(dir string) ([]string, error)    { return defaultD().Files(dir) }
func AllFiles(dir string) ([]string, error) { return defaultD().AllFiles(dir) }

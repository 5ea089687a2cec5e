package provision

import (
	"io/fs"
	"os"

	"github.com/conn-castle/allsky-automount/internal/host"
)

// System abstracts the host queries the pipeline performs directly.
type System interface {
	host.System
	Stat(name string) (fs.FileInfo, error)
}

// RealSystem implements System using the OS.
type RealSystem struct {
	host.RealSystem
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

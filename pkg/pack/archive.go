// pkg/pack/archive.go
package pack

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/effect-native/libsqlite/pkg/core"
)

// archivePrefix is the top-level directory inside the tarball, as npm expects
const archivePrefix = "package"

// ArchiveName returns the default archive file name, e.g.
// effect-native-libsqlite-3.50.1.tar.xz
func (p *Packager) ArchiveName() string {
	name := strings.TrimPrefix(p.pkg.Name, "@")
	name = strings.ReplaceAll(name, "/", "-")
	if name == "" {
		name = "lib" + p.library
	}
	if p.pkg.Version != "" {
		name += "-" + p.pkg.Version
	}
	return name + ".tar.xz"
}

// ArchivePath returns where Archive writes by default: next to the
// distribution directory
func (p *Packager) ArchivePath() string {
	return filepath.Join(filepath.Dir(filepath.Clean(p.distDir)), p.ArchiveName())
}

// Archive writes the distribution directory as an xz-compressed tarball to dst
func (p *Packager) Archive(dst string) (retErr error) {
	p.logger.Info("archiving package", "path", dst)

	f, err := os.Create(dst)
	if err != nil {
		return core.PackagingError("archive", fmt.Errorf("creating %s: %w", dst, err))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && retErr == nil {
			retErr = core.PackagingError("archive", closeErr)
		}
		if retErr != nil {
			_ = os.Remove(dst)
		}
	}()

	xw, err := xz.NewWriter(f)
	if err != nil {
		return core.PackagingError("archive", fmt.Errorf("creating xz writer: %w", err))
	}
	tw := tar.NewWriter(xw)

	if err := filepath.WalkDir(p.distDir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return addToTar(tw, p.distDir, file, d)
	}); err != nil {
		return core.PackagingError("archive", err)
	}

	if err := tw.Close(); err != nil {
		return core.PackagingError("archive", fmt.Errorf("closing tar: %w", err))
	}
	if err := xw.Close(); err != nil {
		return core.PackagingError("archive", fmt.Errorf("closing xz: %w", err))
	}
	return nil
}

func addToTar(tw *tar.Writer, root, file string, d fs.DirEntry) error {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return err
	}

	info, err := d.Info()
	if err != nil {
		return err
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("%s: unsupported file type %s", file, info.Mode().Type())
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("header for %s: %w", file, err)
	}
	name := path.Join(archivePrefix, filepath.ToSlash(rel))
	if info.IsDir() {
		name += "/"
	}
	hdr.Name = name
	hdr.Uname, hdr.Gname = "", ""
	hdr.Uid, hdr.Gid = 0, 0

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header for %s: %w", file, err)
	}
	if info.IsDir() {
		return nil
	}

	src, err := os.Open(file) //nolint:gosec // G304: walking our own dist directory
	if err != nil {
		return err
	}
	defer src.Close()

	if _, err := io.Copy(tw, src); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	return nil
}

// ListArchive returns the entry names of an xz-compressed tarball in order
func ListArchive(file string) ([]string, error) {
	f, err := os.Open(file) //nolint:gosec // G304: caller-supplied archive
	if err != nil {
		return nil, err
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating xz reader: %w", err)
	}
	tr := tar.NewReader(xr)

	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar entry: %w", err)
		}
		names = append(names, hdr.Name)
	}
	return names, nil
}

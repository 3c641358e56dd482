package artifacts

import (
	"archive/tar"
	"fmt"
	"io"

	"github.com/google/go-containerregistry/pkg/v1/tarball"
	"github.com/rs/zerolog/log"
)

// ScanImageTarballs walks root for tar files that parse as container image
// tarballs (docker save / OCI layout) and emits each layer's file entries.
// Entries are named "<tarball>!<layer-digest>/<path>" so findings can be
// traced back to a specific layer. Tar files that are not image tarballs
// are skipped quietly; ScanArchives covers those.
func ScanImageTarballs(root string, lim Limits, emit EmitFunc) error {
	return walkBySuffix(root, []string{".tar"}, func(path, rel string) {
		if err := emitImage(path, rel, lim, emit); err != nil {
			log.Debug().Str("artifact", rel).Err(err).Msg("not a scannable image tarball")
		}
	})
}

func emitImage(path, rel string, lim Limits, emit EmitFunc) error {
	img, err := tarball.ImageFromPath(path, nil)
	if err != nil {
		return err
	}
	layers, err := img.Layers()
	if err != nil {
		return err
	}

	budget := lim.bytes()
	seen := 0
	for _, layer := range layers {
		digest, err := layer.Digest()
		if err != nil {
			continue
		}
		rc, err := layer.Uncompressed()
		if err != nil {
			log.Debug().Str("artifact", rel).Err(err).Msg("layer unreadable")
			continue
		}
		short := digest.Hex
		if len(short) > 12 {
			short = short[:12]
		}
		tr := tar.NewReader(rc)
		for {
			hdr, err := tr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			if hdr.Typeflag != tar.TypeReg {
				continue
			}
			if seen >= lim.entries() || budget <= 0 {
				log.Debug().Str("artifact", rel).Msg("image limits reached")
				_ = rc.Close()
				return nil
			}
			seen++
			lr := io.LimitReader(tr, budget)
			emit(fmt.Sprintf("%s!%s/%s", rel, short, hdr.Name), lr)
			_, _ = io.Copy(io.Discard, lr)
			budget -= hdr.Size
		}
		_ = rc.Close()
	}
	return nil
}

// This file is part of shaderloop.
//
// shaderloop is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// shaderloop is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with shaderloop.  If not, see <https://www.gnu.org/licenses/>.

// Package capture reads the content of a framebuffer into an image and saves
// it to disk.
//
// Framebuffers are stored with the bottom row first. The images returned by
// the package have the top row first, which is what the image package and
// every image viewer expects.
package capture

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
	"golang.org/x/image/draw"
)

// Sentinal error patterns.
const (
	ReadError = "capture: read: %v"
	SaveError = "capture: save: %v"
)

// Read the framebuffer into a new image. The framebuffer is left bound.
func Read(ctx gpu.Context, fb gpu.Framebuffer, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, curated.Errorf(ReadError, fmt.Sprintf("invalid size %dx%d", width, height))
	}

	ctx.BindFramebuffer(fb)
	pix, err := ctx.ReadPixels(0, 0, width, height)
	if err != nil {
		return nil, curated.Errorf(ReadError, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(pix) != len(img.Pix) {
		return nil, curated.Errorf(ReadError, fmt.Sprintf("expected %d bytes of pixel data (got %d)", len(img.Pix), len(pix)))
	}

	// flip vertically
	for y := 0; y < height; y++ {
		src := pix[y*img.Stride : (y+1)*img.Stride]
		dst := (height - 1 - y) * img.Stride
		copy(img.Pix[dst:dst+img.Stride], src)
	}

	return img, nil
}

// Scale the image by an integer factor using nearest neighbour sampling. A
// factor of one or less returns the image unchanged.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled
}

// Fit scales the image to the size using bilinear interpolation.
func Fit(img *image.RGBA, width, height int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	fit := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(fit, fit.Bounds(), img, b, draw.Src, nil)
	return fit
}

// Encode the image in PNG format.
func Encode(w io.Writer, img image.Image) error {
	err := png.Encode(w, img)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	return nil
}

// Save the image to the path. The image is saved as JPEG if the path has a
// .jpg or .jpeg extension and as PNG otherwise.
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
		if err != nil {
			err = curated.Errorf(SaveError, err)
		}
	default:
		err = Encode(f, img)
	}
	if err != nil {
		_ = f.Close()
		return err
	}

	err = f.Close()
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	// indicate success
	logger.Logf(logger.Allow, "capture", "saved: %s", path)

	return nil
}

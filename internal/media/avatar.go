// Package media normaliza imagens enviadas pelo painel.
package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
)

const (
	MaxAvatarSide  = 256
	MaxUploadBytes = 5 << 20
	avatarQuality  = 80
)

var ErrUnsupportedImage = httperr.ErrBusiness("unsupported_image")

// NormalizeAvatar decodifica png/jpeg/gif/webp, reduz para no máximo
// MaxAvatarSide no maior lado e devolve em webp.
func NormalizeAvatar(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, Fit(img, MaxAvatarSide), &webp.Options{Quality: avatarQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fit mantém a proporção; imagens que já cabem voltam sem alteração.
func Fit(img image.Image, side int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return img
	}

	if w >= h {
		h = max(1, h*side/w)
		w = side
	} else {
		w = max(1, w*side/h)
		h = side
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

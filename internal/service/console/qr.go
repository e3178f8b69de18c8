package console

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	QRSize   = 600 // 像素
	QRMargin = 2   // 模块
)

// RenderQR 把链接渲染为 600x600 的 PNG，四周留 2 个模块的空白
func RenderQR(content string) ([]byte, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr")
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	modules := len(bitmap) + 2*QRMargin
	img := image.NewPaletted(image.Rect(0, 0, QRSize, QRSize), color.Palette{color.White, color.Black})
	for y := 0; y < QRSize; y++ {
		row := y*modules/QRSize - QRMargin
		for x := 0; x < QRSize; x++ {
			col := x*modules/QRSize - QRMargin
			if row >= 0 && row < len(bitmap) && col >= 0 && col < len(bitmap) && bitmap[row][col] {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

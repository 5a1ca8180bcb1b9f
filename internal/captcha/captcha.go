package captcha

import (
	"bytes"
	"crypto/rand"
	"image"
	"image/color"
	"image/png"
	"math/big"
)

// Generator 图片验证码生成器
// 返回验证码真实值与图片数据，真实值由调用方存入缓存做后续比对。
type Generator interface {
	Generate() (text string, img []byte, err error)
}

const codeChars = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// DigitGenerator 内置的简易验证码实现：随机字符配噪点底图
// 字形渲染留给前端的接入方替换，接口保持不变。
type DigitGenerator struct {
	Length int
}

func NewDigitGenerator() *DigitGenerator { return &DigitGenerator{Length: 4} }

func (g *DigitGenerator) Generate() (string, []byte, error) {
	n := g.Length
	if n <= 0 {
		n = 4
	}
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			return "", nil, err
		}
		buf[i] = codeChars[idx.Int64()]
	}
	text := string(buf)

	img, err := g.render(text)
	if err != nil {
		return "", nil, err
	}
	return text, img, nil
}

// render 生成带噪点的 PNG 底图
func (g *DigitGenerator) render(text string) ([]byte, error) {
	const w, h = 120, 40
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			canvas.Set(x, y, color.RGBA{R: 240, G: 240, B: 245, A: 255})
		}
	}
	// 按验证码内容撒伪随机噪点，同一验证码图片稳定
	seed := 0
	for _, ch := range text {
		seed = seed*131 + int(ch)
	}
	for i := 0; i < 600; i++ {
		seed = seed*1103515245 + 12345
		x := (seed >> 8) % w
		y := (seed >> 16) % h
		if x < 0 {
			x = -x
		}
		if y < 0 {
			y = -y
		}
		canvas.Set(x, y, color.RGBA{R: uint8(seed), G: uint8(seed >> 4), B: 200, A: 255})
	}

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

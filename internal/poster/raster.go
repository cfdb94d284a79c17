package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/desertthunder/tidalfest/internal/models"
)

const (
	BaseWidth     = 680
	MinHeight     = 600
	DefaultScale  = 3
	margin        = 16
	padding       = 40
	barHeight     = 8
	borderWidth   = 2
	dividerWidth  = 96
	sectionGap    = 18
	panelGap      = 36
	bullet        = "•"
	bulletSpacing = 10
)

var loadFonts = sync.OnceValues(func() (*fontSet, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	return &fontSet{bold: bold, regular: regular}, nil
})

type fontSet struct {
	bold, regular *opentype.Font
}

// faces holds every face needed for one rasterization.
type faces struct {
	title, heading, date font.Face
	tiers                map[models.Tier]font.Face
	all                  []font.Face
}

func newFaces(scale int) (*faces, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}

	f := &faces{tiers: map[models.Tier]font.Face{}}
	mk := func(src *opentype.Font, size float64) (font.Face, error) {
		face, err := opentype.NewFace(src, &opentype.FaceOptions{
			Size:    size * float64(scale),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create font face: %w", err)
		}
		f.all = append(f.all, face)
		return face, nil
	}

	specs := []struct {
		dst  *font.Face
		src  *opentype.Font
		size float64
	}{
		{&f.title, fs.bold, 56},
		{&f.heading, fs.bold, 22},
		{&f.date, fs.regular, 14},
	}
	for _, s := range specs {
		if *s.dst, err = mk(s.src, s.size); err != nil {
			f.Close()
			return nil, err
		}
	}

	tierSpecs := []struct {
		tier models.Tier
		src  *opentype.Font
		size float64
	}{
		{models.Headliners, fs.bold, 40},
		{models.SpecialGuests, fs.bold, 22},
		{models.Undercard, fs.regular, 18},
		{models.TinyLetters, fs.regular, 13},
	}
	for _, s := range tierSpecs {
		face, err := mk(s.src, s.size)
		if err != nil {
			f.Close()
			return nil, err
		}
		f.tiers[s.tier] = face
	}
	return f, nil
}

func (f *faces) Close() {
	for _, face := range f.all {
		face.Close()
	}
}

type segment struct {
	text string
	col  color.Color
	sep  bool
}

// row is a single centered line of the poster.
type row struct {
	face     font.Face
	segments []segment
	divider  bool
	gap      int
}

type palette struct {
	outer, bg, text, accent, border, decoration, muted colorful.Color
	bar                                                [3]colorful.Color
}

func newPalette(t Theme) (palette, error) {
	var p palette
	hexes := []struct {
		dst *colorful.Color
		hex string
	}{
		{&p.outer, ExportBackground},
		{&p.bg, t.Background},
		{&p.text, t.Text},
		{&p.accent, t.Accent},
		{&p.border, t.Border},
		{&p.decoration, t.Decoration},
		{&p.bar[0], t.Primary},
		{&p.bar[1], t.Secondary},
		{&p.bar[2], t.Accent},
	}
	for _, h := range hexes {
		c, err := colorful.Hex(strings.ToLower(h.hex))
		if err != nil {
			return p, fmt.Errorf("theme %s: invalid color %q: %w", t.Name, h.hex, err)
		}
		*h.dst = c
	}
	p.muted = p.bg.BlendRgb(p.text, 0.4)
	return p, nil
}

// gradient returns the top bar color at position t in [0, 1].
func (p palette) gradient(t float64) colorful.Color {
	if t <= 0.5 {
		return p.bar[0].BlendLab(p.bar[1], t*2).Clamped()
	}
	return p.bar[1].BlendLab(p.bar[2], (t-0.5)*2).Clamped()
}

// Rasterize draws layout at scale times the base width.
func Rasterize(layout Layout, scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}

	pal, err := newPalette(layout.Theme)
	if err != nil {
		return nil, err
	}
	f, err := newFaces(scale)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	width := BaseWidth * scale
	inner := width - 2*(margin+padding)*scale
	rows := buildRows(layout, f, pal, inner, scale)

	height := 2*(margin+padding)*scale + barHeight*scale
	for _, r := range rows {
		height += r.gap + rowHeight(r, scale)
	}
	height = max(height, MinHeight*scale)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), pal.outer)

	card := image.Rect(margin*scale, margin*scale, width-margin*scale, height-margin*scale)
	fill(img, card, pal.border)
	fill(img, card.Inset(borderWidth*scale), pal.bg)

	bar := image.Rect(card.Min.X+borderWidth*scale, card.Min.Y+borderWidth*scale, card.Max.X-borderWidth*scale, card.Min.Y+(borderWidth+barHeight)*scale)
	for x := bar.Min.X; x < bar.Max.X; x++ {
		t := float64(x-bar.Min.X) / float64(max(bar.Dx()-1, 1))
		fill(img, image.Rect(x, bar.Min.Y, x+1, bar.Max.Y), pal.gradient(t))
	}

	y := bar.Max.Y + padding*scale
	for _, r := range rows {
		y += r.gap
		if r.divider {
			w := dividerWidth * scale
			x := (width - w) / 2
			fill(img, image.Rect(x, y, x+w, y+max(scale, 1)), pal.muted)
			y += rowHeight(r, scale)
			continue
		}
		drawRow(img, r, width, y, scale)
		y += rowHeight(r, scale)
	}

	return img, nil
}

// EncodePNG rasterizes layout and returns the PNG bytes.
func EncodePNG(layout Layout, scale int) ([]byte, error) {
	img, err := Rasterize(layout, scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func buildRows(layout Layout, f *faces, pal palette, inner, scale int) []row {
	rows := []row{{face: f.title, segments: []segment{{text: layout.Title, col: pal.text}}}}
	if layout.Subtitle != "" {
		rows = append(rows, row{face: f.date, segments: []segment{{text: strings.ToUpper(layout.Subtitle), col: pal.decoration}}, gap: 4 * scale})
	}

	for i, p := range layout.Panels {
		gap := panelGap * scale
		if i == 0 {
			gap = sectionGap * scale
		}
		if p.Dated {
			rows = append(rows, row{face: f.heading, segments: []segment{{text: p.Heading, col: pal.accent}}, gap: gap})
			rows = append(rows, row{face: f.date, segments: []segment{{text: p.DateLabel, col: pal.decoration}}, gap: 4 * scale})
			gap = sectionGap * scale
		}

		for j, s := range p.Sections {
			if j > 0 {
				rows = append(rows, row{divider: true, gap: sectionGap * scale})
				gap = sectionGap * scale
			}
			face := f.tiers[s.Tier]
			for k, line := range wrapSection(s, face, inner, scale, pal) {
				g := 6 * scale
				if k == 0 {
					g = gap
				}
				rows = append(rows, row{face: face, segments: line, gap: g})
			}
		}
	}
	return rows
}

// wrapSection splits a tier into centered lines. Headliners get a line each; other tiers
// are bullet-separated and wrapped to width.
func wrapSection(s Section, face font.Face, width, scale int, pal palette) [][]segment {
	if s.Tier == models.Headliners {
		lines := make([][]segment, len(s.Names))
		for i, n := range s.Names {
			lines[i] = []segment{{text: n, col: pal.text}}
		}
		return lines
	}

	sep := font.MeasureString(face, bullet).Ceil() + 2*bulletSpacing*scale
	var (
		lines [][]segment
		line  []segment
		used  int
	)
	for _, n := range s.Names {
		w := font.MeasureString(face, n).Ceil()
		if len(line) > 0 && used+sep+w > width {
			lines = append(lines, line)
			line, used = nil, 0
		}
		if len(line) > 0 {
			line = append(line, segment{text: bullet, col: pal.accent, sep: true})
			used += sep
		}
		line = append(line, segment{text: n, col: pal.text})
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func rowHeight(r row, scale int) int {
	if r.divider {
		return max(scale, 1)
	}
	return r.face.Metrics().Height.Ceil()
}

func rowWidth(r row, scale int) int {
	w := 0
	for _, s := range r.segments {
		if s.sep {
			w += 2 * bulletSpacing * scale
		}
		w += font.MeasureString(r.face, s.text).Ceil()
	}
	return w
}

func drawRow(img *image.RGBA, r row, width, y, scale int) {
	x := (width - rowWidth(r, scale)) / 2
	baseline := y + r.face.Metrics().Ascent.Ceil()

	for _, s := range r.segments {
		if s.sep {
			x += bulletSpacing * scale
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(s.col),
			Face: r.face,
			Dot:  fixed.P(x, baseline),
		}
		d.DrawString(s.text)
		x = d.Dot.X.Ceil()
		if s.sep {
			x += bulletSpacing * scale
		}
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// Thumbnail scales src down to width, keeping the aspect ratio.
func Thumbnail(src image.Image, width int) *image.RGBA {
	b := src.Bounds()
	if width <= 0 || width >= b.Dx() {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	height := max(b.Dy()*width/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

package wizard

// Point 是签名板上的一个坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke 是一次按下到抬起之间的轨迹
type Stroke []Point

// SignaturePad 记录手写签名的笔画
type SignaturePad struct {
	strokes []Stroke
	drawing bool
	signed  bool
}

// Begin 按下时开始新的笔画
func (s *SignaturePad) Begin(p Point) {
	s.drawing = true
	s.strokes = append(s.strokes, Stroke{p})
}

// Extend 仅在按下状态下延长当前笔画
func (s *SignaturePad) Extend(p Point) {
	if !s.drawing {
		return
	}
	last := len(s.strokes) - 1
	s.strokes[last] = append(s.strokes[last], p)
}

// End 抬起或移出画布时结束笔画
func (s *SignaturePad) End() {
	if !s.drawing {
		return
	}
	s.drawing = false
	s.signed = true
}

// Clear 擦除画布并重置签名标记
func (s *SignaturePad) Clear() {
	s.strokes = nil
	s.drawing = false
	s.signed = false
}

// Drawing 是否处于按下状态
func (s *SignaturePad) Drawing() bool { return s.drawing }

// HasSigned 是否至少完成过一笔
func (s *SignaturePad) HasSigned() bool { return s.signed }

// Strokes 返回笔画副本
func (s *SignaturePad) Strokes() []Stroke {
	out := make([]Stroke, len(s.strokes))
	for i, st := range s.strokes {
		out[i] = append(Stroke(nil), st...)
	}
	return out
}

// Draw 依次回放一组笔画，等价于每笔一次按下、若干次移动和一次抬起
func (s *SignaturePad) Draw(points []Point) {
	if len(points) == 0 {
		return
	}
	s.Begin(points[0])
	for _, p := range points[1:] {
		s.Extend(p)
	}
	s.End()
}

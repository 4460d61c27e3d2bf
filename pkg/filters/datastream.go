package filters

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"unicode/utf16"
)

// dataStream reads the big endian serialization of Qt's QDataStream at
// stream version 3. The first error sticks; later reads return zero
// values.
type dataStream struct {
	r   io.Reader
	err error
}

func newDataStream(r io.Reader) *dataStream {
	return &dataStream{r: r}
}

func (s *dataStream) read(n int) []byte {
	if s.err != nil {
		return make([]byte, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		s.err = err
	}
	return buf
}

func (s *dataStream) uint8() uint8   { return s.read(1)[0] }
func (s *dataStream) int16() int16   { return int16(binary.BigEndian.Uint16(s.read(2))) }
func (s *dataStream) uint16() uint16 { return binary.BigEndian.Uint16(s.read(2)) }
func (s *dataStream) int32() int32   { return int32(binary.BigEndian.Uint32(s.read(4))) }
func (s *dataStream) uint32() uint32 { return binary.BigEndian.Uint32(s.read(4)) }

func (s *dataStream) float32() float64 {
	return float64(math.Float32frombits(s.uint32()))
}

func (s *dataStream) float64() float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(s.read(8)))
}

// nullLength marks a null QString or QByteArray.
const nullLength = 0xffffffff

// maxChunk bounds string and array lengths read from untrusted input.
const maxChunk = 1 << 24

func (s *dataStream) length() int {
	n := s.uint32()
	switch {
	case s.err != nil, n == nullLength:
		return 0
	case n > maxChunk:
		s.err = fmt.Errorf("length %d too large", n)
		return 0
	}
	return int(n)
}

// string reads a QString: a byte length followed by UTF-16 code units.
func (s *dataStream) string() string {
	n := s.length()
	if n%2 != 0 {
		s.err = fmt.Errorf("odd string length %d", n)
		return ""
	}
	b := s.read(n)
	units := make([]uint16, n/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(units))
}

// bytes reads a QByteArray.
func (s *dataStream) bytes() []byte {
	return s.read(s.length())
}

// color reads a QColor stored as 0xAARRGGBB.
func (s *dataStream) color() color.RGBA {
	v := s.uint32()
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// font skips a QFont.
func (s *dataStream) font() {
	s.string() // family
	s.int16()  // point size
	s.uint8()  // style hint
	s.uint8()  // char set
	s.uint8()  // weight
	s.uint8()  // bits
}

type qtPen struct {
	style uint8
	width int
	color color.RGBA
}

func (s *dataStream) pen() qtPen {
	return qtPen{style: s.uint8(), width: int(s.uint16()), color: s.color()}
}

// customPattern is the brush style followed by a pixmap.
const customPattern = 24

func (s *dataStream) brush() color.RGBA {
	style := s.uint8()
	c := s.color()
	if style == customPattern && s.err == nil {
		s.err = errors.New("pixmap brushes are not supported")
	}
	return c
}

package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestWidenU8ToFloatRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u8 := rapid.Uint8().Draw(t, "u8")
		src := []uint8{u8, u8}
		dst := make([]Complex64F, 1)
		WidenU8ToFloat(src, dst)
		assert.GreaterOrEqual(t, dst[0].I, float32(-1.0))
		assert.LessOrEqual(t, dst[0].I, float32(1.0))
	})
}

func TestRotate90PhaseCycles(t *testing.T) {
	buf := make([]Complex64F, 8)
	for i := range buf {
		buf[i] = Complex64F{I: 1, Q: 0}
	}
	phase := Rotate90(buf, 0)
	assert.Equal(t, 0, phase%4)
}

func TestPolarDiscriminatorSign(t *testing.T) {
	disc := PolarDiscriminator{Kind: DiscFast}
	cur := Complex64F{I: 0, Q: 1}
	prev := Complex64F{I: 1, Q: 0}
	v := disc.Discriminate(cur, prev)
	assert.Positive(t, v)
}

func TestFastAtan2Q14Bounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := float32(rapid.Float64Range(-1, 1).Draw(t, "x"))
		y := float32(rapid.Float64Range(-1, 1).Draw(t, "y"))
		v := FastAtan2Q14(y, x)
		assert.LessOrEqual(t, v, int32(Q14*4))
		assert.GreaterOrEqual(t, v, int32(-Q14*4))
	})
}

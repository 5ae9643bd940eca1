package scoring

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodec_EncodeIsSorted(t *testing.T) {
	c := NewCodec(nil)

	assert.Equal(t, `{"a":1,"b":20,"c":300}`, c.Encode(ScoreMap{"c": 300, "a": 1, "b": 20}))
	assert.Equal(t, `{}`, c.Encode(ScoreMap{}))
}

func TestCodec_DecodeEmpty(t *testing.T) {
	c := NewCodec(nil)

	assert.Equal(t, ScoreMap{}, c.Decode(""))
	assert.Equal(t, ScoreMap{}, c.Decode("{}"))
	assert.Equal(t, ScoreMap{}, c.Decode("  { }  "))
}

func TestCodec_DecodeLegacyForms(t *testing.T) {
	c := NewCodec(nil)
	want := ScoreMap{"A": 80, "B": 90}

	for _, in := range []string{
		`{"A":80,"B":90}`,
		`{A:80,B:90}`,
		`{"A":"80","B":"90"}`,
		`{ "A" : 80 , "B" : 90 }`,
		`A:80,B:90`,
		`{'A':80,'B':'90'}`,
		`{"A":80,"B":90,}`,
	} {
		assert.Equal(t, want, c.Decode(in), in)
	}
}

func TestCodec_DecodeMalformedIsPartial(t *testing.T) {
	var buf bytes.Buffer
	c := NewCodec(slog.New(slog.NewTextHandler(&buf, nil)))

	got := c.Decode(`{"A":80,"B":x,C,:5,"D":7.5,"E":3}`)

	assert.Equal(t, ScoreMap{"A": 80, "E": 3}, got)
	assert.Contains(t, buf.String(), "skipping score pair")
}

func TestCodec_RoundTrip(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(7))
	c := NewCodec(nil)

	for i := 0; i < 200; i++ {
		m := ScoreMap{}
		for j := 0; j < r.Intn(8); j++ {
			key := make([]byte, 1+r.Intn(10))
			for k := range key {
				key[k] = alphabet[r.Intn(len(alphabet))]
			}
			m[string(key)] = r.Intn(201) - 100
		}
		assert.Equal(t, m, c.Decode(c.Encode(m)), fmt.Sprintf("iteration %d", i))
	}
}

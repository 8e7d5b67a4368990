package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_DropsSentenceMetadataLine(t *testing.T) {
	in := "# ::snt The cat sat.\n(c / cat)"
	out := NewNormalizer(DefaultNormalizeOptions()).Normalize(in)
	assert.Equal(t, "(c / cat)", out)
}

func TestNormalize_KeepsOtherCommentLines(t *testing.T) {
	in := "# ::id bolt-42\n(c / cat)"
	out := NewNormalizer(DefaultNormalizeOptions()).Normalize(in)
	assert.Equal(t, "# ::id bolt-42\n(c / cat)", out)
}

func TestNormalize_DropsBlankLines(t *testing.T) {
	in := "(c / cat\n\n   \n:ARG0 d)"
	out := NewNormalizer(DefaultNormalizeOptions()).Normalize(in)
	assert.Equal(t, "(c / cat\n:ARG0 d)", out)
}

func TestNormalize_JoinsMultiWordConcepts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "two words",
			in:   "(m / micro biology",
			want: "(m /micro_biology",
		},
		{
			name: "single word untouched",
			in:   "(m / biology)",
			want: "(m /biology)",
		},
		{
			name: "non-node line untouched",
			in:   ":ARG0 (b / b2",
			want: ":ARG0 (b / b2",
		},
		{
			name: "label bounded before roles",
			in:   "(g / gggg) :ARG0 x",
			want: "(g /gggg) :ARG0 x",
		},
		{
			name: "label bounded before nested node",
			in:   "(a / foo :ARG0 (b / bar",
			want: "(a /foo :ARG0 (b / bar",
		},
	}
	n := NewNormalizer(NormalizeOptions{JoinConceptWords: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalize_SpaceAfterGluedRole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "glued open bracket",
			in:   ":ARG0(c / cat)",
			want: ":ARG0 (c / cat)",
		},
		{
			name: "already spaced role untouched",
			in:   "(g / gggg) :ARG0 x",
			want: "(g / gggg) :ARG0 x",
		},
		{
			name: "glued quote",
			in:   `:name"Rome"`,
			want: `:name "Rome"`,
		},
		{
			name: "role before slash untouched",
			in:   ":ARG0 / x",
			want: ":ARG0 / x",
		},
		{
			name: "consecutive glued roles",
			in:   ":ARG0(a / a2 :ARG1(b / b2))",
			want: ":ARG0 (a / a2 :ARG1 (b / b2))",
		},
	}
	n := NewNormalizer(NormalizeOptions{SpaceAfterRoles: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalize_LineCountPreserved(t *testing.T) {
	// Apart from the dropped metadata and blank lines, normalization never
	// adds or removes lines.
	in := "# ::snt s\n(w / want-01\n:ARG0 (b / boy)\n:ARG1 (g / go-02))"
	out := NewNormalizer(DefaultNormalizeOptions()).Normalize(in)
	assert.Len(t, strings.Split(out, "\n"), 3)
}

package patterns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestExtractKey_DefaultPattern(t *testing.T) {
	set := MustCompile(Sources{})

	tests := []struct {
		branch string
		want   string
		ok     bool
	}{
		{"feature/ABC-123-do-thing", "ABC-123", true},
		{"origin/refs/heads/team/XY-9", "XY-9", true},
		{"ABC-1", "ABC-1", true},
		{"refs/heads/bugfix/PROJ-42_fix_login", "PROJ-42", true},
		{"main", "", false},
		{"feature/no-key-here", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			got, ok := set.ExtractKey(tt.branch)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractKey_CustomPattern(t *testing.T) {
	set := MustCompile(Sources{Issue: `^(ATT-[0-9]+)`})

	key, ok := set.ExtractKey("ATT-77-thing")
	assert.True(t, ok)
	assert.Equal(t, "ATT-77", key)

	_, ok = set.ExtractKey("feature/ATT-77")
	assert.False(t, ok, "custom pattern is anchored and must not match")
}

func TestExtractKey_NoCaptureGroup(t *testing.T) {
	set := MustCompile(Sources{Issue: `[A-Z]+-\d+`})

	_, ok := set.ExtractKey("ABC-1")
	assert.False(t, ok)
}

func TestMatchIgnore_FirstMatchWins(t *testing.T) {
	set := MustCompile(Sources{Ignore: []string{`^main$`, `release`, `^release/`}})

	pattern, ok := set.MatchIgnore("release/1.2")
	assert.True(t, ok)
	assert.Equal(t, "release", pattern)

	pattern, ok = set.MatchIgnore("main")
	assert.True(t, ok)
	assert.Equal(t, "^main$", pattern)

	_, ok = set.MatchIgnore("mainline")
	assert.False(t, ok)
}

func TestMatchIgnore_Unanchored(t *testing.T) {
	set := MustCompile(Sources{Ignore: []string{`dependabot`}})

	_, ok := set.MatchIgnore("origin/dependabot/npm/lodash")
	assert.True(t, ok)
}

func TestIsMagic(t *testing.T) {
	disabled := MustCompile(Sources{})
	assert.False(t, disabled.HasMagic())
	assert.False(t, disabled.IsMagic("Revert something"))

	set := MustCompile(Sources{Magic: `^(Revert|fixup!|squash!) `})
	assert.True(t, set.HasMagic())
	assert.True(t, set.IsMagic("Revert \"ABC-1 thing\""))
	assert.True(t, set.IsMagic("fixup! ABC-1 thing"))
	assert.False(t, set.IsMagic("Fix bug"))
}

func TestMergeFor(t *testing.T) {
	set := MustCompile(Sources{})

	re, err := set.MergeFor("ABC-123")
	require.NoError(t, err)
	assert.Equal(t, `^Merge .* into ABC-123`, re.String())
	assert.True(t, re.MatchString("Merge branch 'foo' into ABC-123"))
	assert.False(t, re.MatchString("Merge branch 'ABC-123' into main"))
}

func TestMergeFor_QuotesKey(t *testing.T) {
	set := MustCompile(Sources{Issue: `^(.+)$`})

	re, err := set.MergeFor("A.B-1")
	require.NoError(t, err)
	assert.True(t, re.MatchString("Merge branch 'x' into A.B-1"))
	assert.False(t, re.MatchString("Merge branch 'x' into AxB-1"))
}

func TestCompile_ReportsEveryInvalidPattern(t *testing.T) {
	_, err := Compile(Sources{
		Issue:  `(`,
		Magic:  `[`,
		Ignore: []string{`ok`, `*bad`},
	})
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)

	var names []string
	for _, e := range errs {
		var pe *PatternError
		require.True(t, errors.As(e, &pe))
		names = append(names, pe.Name)
	}
	assert.Equal(t, []string{"issue_pattern", "magic_pattern", "ignore[1]"}, names)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile(Sources{Merge: `(`}) })
}

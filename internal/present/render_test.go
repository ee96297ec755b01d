package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
)

func TestRenderDraw_Plain(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, false).RenderDraw(types.LuckyDraw{Numbers: []int{6, 19, 20, 27, 43, 44}, Bonus: 41})

	if !strings.Contains(out.String(), "( 6) (19) (20) (27) (43) (44)  +  (41)") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("plain output must not contain ANSI codes")
	}
}

func TestRenderDraw_ColorBands(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, true).RenderDraw(types.LuckyDraw{Numbers: []int{1, 11, 21, 31, 41, 45}, Bonus: 10})

	for _, style := range []string{"\x1b[1;30;43m", "\x1b[1;37;44m", "\x1b[1;37;41m", "\x1b[1;37;100m", "\x1b[1;37;42m"} {
		if !strings.Contains(out.String(), style) {
			t.Fatalf("missing color %q in output", style)
		}
	}
}

func TestRenderNarrative_Plain(t *testing.T) {
	var out bytes.Buffer
	if err := NewRenderer(&out, false).RenderNarrative("## 총운\n\n좋은 일이 생깁니다."); err != nil {
		t.Fatalf("RenderNarrative failed: %v", err)
	}
	if !strings.Contains(out.String(), "좋은 일이 생깁니다.") {
		t.Fatalf("narrative text missing:\n%s", out.String())
	}
}

package figure_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/figmark/pkg/figure"
	"github.com/yaklabco/figmark/pkg/markdown"
	"github.com/yaklabco/figmark/pkg/token"
)

func BenchmarkRender(b *testing.B) {
	var doc strings.Builder
	for range 50 {
		doc.WriteString("# Section\n\nSome text with ![inline](a.png) images.\n\n")
		doc.WriteString("![A caption with a [link](to)](fig.png)\n\n")
		doc.WriteString("[![linked](thumb.jpg)](full.jpg)\n\n")
		doc.WriteString("![clip](movie.mp4)\n\n")
	}
	src := []byte(doc.String())

	cases := map[string]figure.Options{
		"defaults": figure.DefaultOptions(),
		"all": withOptions(func(o *figure.Options) {
			o.DataType = true
			o.Figcaption = true
			o.TabIndex = true
			o.Link = true
		}),
	}

	for name, opts := range cases {
		b.Run(name, func(b *testing.B) {
			engine := markdown.New()
			if err := engine.Use(figure.Plugin(opts)); err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(src)))
			for b.Loop() {
				if _, err := engine.Render(context.Background(), src, token.NewEnv("en")); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

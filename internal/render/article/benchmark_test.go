package article

import "testing"

func BenchmarkLinesWithOptions_LongComment(b *testing.B) {
	fragment := `<p>Intro with a <a href="https://example.com/link">reference</a>.</p>
<blockquote><p>Quoted claim from the parent comment.</p></blockquote>
<ul><li>First point</li><li>Second point with <code>code</code></li></ul>
<ol><li>Step one</li><li>Step two</li></ol>
<pre><code>func main() {
	fmt.Println("hi")
}
</code></pre>
<p>Closing paragraph with <em>emphasis</em> and <strong>weight</strong>.</p>`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = LinesWithOptions(fragment, "", 72, DefaultOptions)
	}
}

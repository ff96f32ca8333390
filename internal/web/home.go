package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(flash string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePageStart(w, "Photo Hunt")
		_, _ = io.WriteString(w, `      <header class="hero">
        <h1>Photo Hunt</h1>
        <p>Enter the code from your organizer to join a hunt.</p>
      </header>
`)
		if flash != "" {
			_, _ = io.WriteString(w, `      <p class="flash">`+templ.EscapeString(flash)+"</p>\n")
		}
		_, _ = io.WriteString(w, `      <form id="codeForm" class="join-form">
        <input name="code" placeholder="Game code" autocomplete="off" required/>
        <button type="submit">Open game</button>
      </form>
      <script>
        document.getElementById("codeForm").addEventListener("submit", (event) => {
          event.preventDefault();
          const code = event.target.elements.code.value.trim();
          if (code) {
            window.location.href = "/g/" + encodeURIComponent(code);
          }
        });
      </script>
`)
		writePageEnd(w)
		return nil
	})
}

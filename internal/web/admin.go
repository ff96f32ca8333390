package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func AdminHome(data AdminHomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := "/admin/" + templ.EscapeString(data.Slug)
		writePageStart(w, "Photo Hunt Admin")
		_, _ = io.WriteString(w, `      <h1>Games</h1>
      <form id="createForm">
        <input name="title" placeholder="Title" required/>
        <input name="code" placeholder="Code (optional)"/>
        <button type="submit">Create game</button>
      </form>
      <p id="createResult"></p>
      <table>
        <thead><tr><th>Code</th><th>Title</th><th>Status</th><th>Created</th></tr></thead>
        <tbody>
`)
		for _, game := range data.Games {
			_, _ = io.WriteString(w, `          <tr><td><a href="`+base+`/games/`+utoa(game.ID)+`">`+templ.EscapeString(game.Code)+`</a></td><td>`+
				templ.EscapeString(game.Title)+`</td><td>`+templ.EscapeString(game.Status)+`</td><td>`+formatTime(game.CreatedAt)+"</td></tr>\n")
		}
		_, _ = io.WriteString(w, "        </tbody>\n      </table>\n")
		writePagination(w, data.Pagination)
		_, _ = io.WriteString(w, `      <script>
        document.getElementById("createForm").addEventListener("submit", async (event) => {
          event.preventDefault();
          const body = { title: event.target.elements.title.value, code: event.target.elements.code.value };
          const res = await fetch("/api`+base+`/games", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify(body)
          });
          const data = await res.json();
          if (!res.ok) {
            document.getElementById("createResult").textContent = data.error || "Failed to create game.";
            return;
          }
          window.location.href = "`+base+`/games/" + data.game.id;
        });
      </script>
`)
		writePageEnd(w)
		return nil
	})
}

func AdminGame(data AdminGameData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		slug := templ.EscapeString(data.Slug)
		game := data.Game
		writePageStart(w, game.Title)
		_, _ = io.WriteString(w, `      <p><a href="/admin/`+slug+`">All games</a></p>
      <h1>`+templ.EscapeString(game.Title)+`</h1>
      <p>Code <strong>`+templ.EscapeString(game.Code)+`</strong> &middot; status `+templ.EscapeString(game.Status)+
			` &middot; started `+templ.EscapeString(sinceTime(game.StartAt))+`</p>
      <p><a href="`+templ.EscapeString(data.PublicURL)+`">`+templ.EscapeString(data.PublicURL)+`</a></p>
      <img alt="QR code" width="192" height="192" src="/api/admin/`+slug+`/games/`+utoa(game.ID)+`/qr.png"/>
      <h2>Scores</h2>
      <ol>
`)
		for _, score := range data.Scores {
			_, _ = io.WriteString(w, `        <li style="color:`+templ.EscapeString(score.Color)+`">`+templ.EscapeString(score.Name)+
				` - `+pointsLabel(score.Score)+` (`+itoa(score.Claims)+" claims)</li>\n")
		}
		_, _ = io.WriteString(w, "      </ol>\n      <h2>Keywords</h2>\n      <ul>\n")
		for _, keyword := range data.Keywords {
			_, _ = io.WriteString(w, `        <li>#`+itoa(keyword.OrderIndex)+` `+templ.EscapeString(keyword.Text)+` - `+pointsLabel(keyword.Points)+"</li>\n")
		}
		_, _ = io.WriteString(w, "      </ul>\n      <h2>Recent events</h2>\n      <ul>\n")
		for _, event := range data.Events {
			_, _ = io.WriteString(w, `        <li>`+formatTime(event.CreatedAt)+` `+templ.EscapeString(event.Type)+` <code>`+
				templ.EscapeString(string(event.Payload))+"</code></li>\n")
		}
		_, _ = io.WriteString(w, "      </ul>\n")
		writePageEnd(w)
		return nil
	})
}

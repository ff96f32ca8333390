package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// GameView is the public page for one game. State comes from the websocket
// snapshot; claims are posted to the JSON API.
func GameView(code, title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePageStart(w, title)
		_, _ = io.WriteString(w, `      <section id="game" data-code="`+templ.EscapeString(code)+`">
        <h1>`+templ.EscapeString(title)+`</h1>
        <p id="status"></p>
        <label>Team <select id="team"></select></label>
        <h2>Scores</h2>
        <ol id="scores"></ol>
        <h2>Keywords</h2>
        <ul id="keywords"></ul>
        <form id="claimForm">
          <select name="keyword_id" id="keywordSelect"></select>
          <input type="file" name="photo" accept="image/*" capture="environment" required/>
          <button type="submit">Claim</button>
        </form>
        <p id="claimResult"></p>
      </section>
      <script>
        const root = document.getElementById("game");
        const code = root.dataset.code;
        const api = "/api/g/" + encodeURIComponent(code);
        const teamSelect = document.getElementById("team");
        const keywordSelect = document.getElementById("keywordSelect");
        const claimResult = document.getElementById("claimResult");
        let state = { teams: [], keywords: [], claims: [], scores: [] };

        function text(tag, value) {
          const el = document.createElement(tag);
          el.textContent = value;
          return el;
        }

        function render() {
          document.getElementById("status").textContent = state.game ? state.game.status : "";
          const selected = teamSelect.value;
          teamSelect.replaceChildren(...state.teams.map((team) => {
            const option = text("option", team.name);
            option.value = team.id;
            return option;
          }));
          if (selected) {
            teamSelect.value = selected;
          }
          keywordSelect.replaceChildren(...state.keywords.map((keyword) => {
            const option = text("option", keyword.text + " (" + keyword.points + ")");
            option.value = keyword.id;
            return option;
          }));
          const teamID = Number(teamSelect.value);
          document.getElementById("keywords").replaceChildren(...state.keywords.map((keyword) => {
            const done = state.claims.some((claim) => claim.team_id === teamID && claim.keyword_id === keyword.id);
            return text("li", (done ? "[x] " : "[ ] ") + keyword.text + " - " + keyword.points);
          }));
          document.getElementById("scores").replaceChildren(...state.scores.map((score) => text("li", score.name + ": " + score.score)));
        }

        teamSelect.addEventListener("change", async () => {
          await fetch(api + "/team", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({ team_id: Number(teamSelect.value) })
          });
          render();
        });

        document.getElementById("claimForm").addEventListener("submit", async (event) => {
          event.preventDefault();
          const form = new FormData(event.target);
          form.set("team_id", teamSelect.value);
          claimResult.textContent = "Uploading...";
          const res = await fetch(api + "/claims", { method: "POST", body: form });
          const data = await res.json();
          claimResult.textContent = res.ok ? "+" + data.points + " points" : (data.error || "Claim failed.");
        });

        const scheme = window.location.protocol === "https:" ? "wss://" : "ws://";
        const socket = new WebSocket(scheme + window.location.host + "/ws/g/" + encodeURIComponent(code));
        socket.addEventListener("message", (event) => {
          const message = JSON.parse(event.data);
          if (message.type === "snapshot") {
            state = message;
          } else if (message.type === "claims") {
            state.claims = message.claims;
            state.scores = message.scores;
          }
          render();
        });
      </script>
`)
		writePageEnd(w)
		return nil
	})
}

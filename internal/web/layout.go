package web

import (
	"io"

	"github.com/a-h/templ"
)

func writePageStart(w io.Writer, title string) {
	_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+templ.EscapeString(title)+`</title>
  </head>
  <body>
    <main class="shell">
`)
}

func writePageEnd(w io.Writer) {
	_, _ = io.WriteString(w, `    </main>
  </body>
</html>
`)
}

func writePagination(w io.Writer, data PaginationData) {
	if data.TotalPages <= 1 {
		return
	}
	_, _ = io.WriteString(w, `      <nav class="pagination">`)
	if data.HasPrev {
		_, _ = io.WriteString(w, `<a href="`+templ.EscapeString(pageURL(data.BasePath, data.PrevPage, data.PerPage))+`">Previous</a> `)
	}
	_, _ = io.WriteString(w, `<span>Page `+itoa(data.Page)+` of `+itoa(data.TotalPages)+`</span>`)
	if data.HasNext {
		_, _ = io.WriteString(w, ` <a href="`+templ.EscapeString(pageURL(data.BasePath, data.NextPage, data.PerPage))+`">Next</a>`)
	}
	_, _ = io.WriteString(w, "</nav>\n")
}

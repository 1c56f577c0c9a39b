package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// page wraps body and script in the shared document shell. body and script
// are trusted markup; callers escape any request data they embed.
func page(title, body, script string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+templ.EscapeString(title)+` · Prompt Museum</title>
    <link rel="stylesheet" href="/static/app.css"/>
  </head>
  <body>
`+body+`
    <script>
`+authScript+script+`
    </script>
  </body>
</html>`)
		return err
	})
}

// authScript keeps the session in localStorage under the same keys the API
// clients use.
const authScript = `
      const auth = {
        token: () => localStorage.getItem("access_token"),
        user: () => JSON.parse(localStorage.getItem("user") || "null"),
        set: (data) => {
          localStorage.setItem("access_token", data.access_token);
          localStorage.setItem("user", JSON.stringify(data.user));
        },
        clear: () => {
          localStorage.removeItem("access_token");
          localStorage.removeItem("user");
        },
        fetch: (url, options = {}) => {
          const headers = { "Content-Type": "application/json", ...(options.headers || {}) };
          const token = auth.token();
          if (token) headers.Authorization = "Bearer " + token;
          return fetch(url, { ...options, headers });
        },
      };
      const esc = (value) => String(value ?? "").replace(/[&<>"']/g, (ch) => ({
        "&": "&amp;", "<": "&lt;", ">": "&gt;", '"': "&quot;", "'": "&#39;",
      })[ch]);
`

const header = `
    <header class="topbar">
      <a class="brand" href="/dashboard">Prompt Museum</a>
      <nav>
        <a href="/new-prompt" class="button primary">New prompt</a>
        <span id="who" class="who"></span>
        <button id="logout" class="button">Logout</button>
      </nav>
    </header>`

const headerScript = `
      const who = auth.user();
      if (who) document.getElementById("who").textContent = who.name;
      document.getElementById("logout").addEventListener("click", async () => {
        await auth.fetch("/auth/logout", { method: "POST" }).catch(() => {});
        auth.clear();
        location.href = "/";
      });
`

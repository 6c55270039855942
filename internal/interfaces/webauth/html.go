package webauth

import "html/template"

// The login flow is three small self-contained pages. Styling loosely
// follows the game's purple/green palette so users recognize where they are.

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #37003c; margin: 0;
         display: flex; min-height: 100vh; align-items: center; justify-content: center; }
  .card { background: #fff; border-radius: 12px; padding: 2rem; width: 100%; max-width: 380px;
          box-shadow: 0 8px 30px rgba(0,0,0,.3); }
  h1 { font-size: 1.3rem; color: #37003c; margin-top: 0; }
  label { display: block; margin: .8rem 0 .25rem; font-size: .85rem; color: #333; }
  input { width: 100%; box-sizing: border-box; padding: .6rem; border: 1px solid #ccc; border-radius: 6px; }
  button { margin-top: 1.2rem; width: 100%; padding: .7rem; border: 0; border-radius: 6px;
           background: #00ff87; color: #37003c; font-weight: 700; font-size: 1rem; cursor: pointer; }
  .note { font-size: .8rem; color: #666; margin-top: 1rem; }
  .error { color: #c0392b; }
  .ok { color: #1e8449; }
</style>
</head>
<body>
<div class="card">
{{block "body" .}}{{end}}
</div>
</body>
</html>`

var loginPage = template.Must(template.Must(template.New("shell").Parse(pageShell)).Parse(`
{{define "body"}}
<h1>Sign in to Fantasy Premier League</h1>
<form method="post" action="/auth/submit/{{.RequestID}}">
  <label for="team_id">Team ID</label>
  <input id="team_id" name="team_id" type="number" min="1" required
         placeholder="Found under Points → browser URL /entry/&lt;id&gt;/">
  <label for="email">Email</label>
  <input id="email" name="email" type="email" required autocomplete="email">
  <label for="password">Password</label>
  <input id="password" name="password" type="password" required autocomplete="current-password">
  <button type="submit">Sign in</button>
</form>
<p class="note">Credentials go directly to the official login service and are never stored.</p>
{{end}}`))

var successPage = template.Must(template.Must(template.New("shell").Parse(pageShell)).Parse(`
{{define "body"}}
<h1 class="ok">Login successful</h1>
<p>Your session is active. You can close this tab and return to your assistant.</p>
{{end}}`))

var failurePage = template.Must(template.Must(template.New("shell").Parse(pageShell)).Parse(`
{{define "body"}}
<h1 class="error">Login failed</h1>
<p>{{.Reason}}</p>
<p class="note">Ask your assistant to start a new login and try again.</p>
{{end}}`))

package render

// fragmentTemplates holds the named templates for each page region.
const fragmentTemplates = `{{define "artists"}}{{range .}}<div class="artist-card">
  <h3>{{.Name}}</h3>
  <p>Genre: {{.Genre}}</p>
  <p>Stage: {{.Stage}}</p>
  <p>Day: {{.Day}}</p>
  {{.DescriptionHTML}}
</div>
{{end}}{{end}}
{{define "stages"}}{{range .}}<div class="stage-card">
  <h3>{{.Name}}</h3>
  {{.DescriptionHTML}}
  <p>Area: {{.Area}}</p>
</div>
{{end}}{{end}}
{{define "schedule"}}{{range .}}<tr>
  <td>{{.Time}}</td>{{range .Cells}}
  <td class="{{.Class}}">{{.Performer}}</td>{{end}}
</tr>
{{end}}{{end}}`

// pageTemplate is the full festival page. Region containers keep the ids
// and classes the site's stylesheet and script target.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.StylesheetURL}}">
</head>
<body>
  <header class="site-header">
    <h1 class="site-title">{{.Title}}</h1>
    <a class="hamburger" id="hamburger-menu" href="{{.Menu.ToggleHref}}" aria-label="Toggle menu" aria-expanded="{{.Menu.Open}}">
      <span></span><span></span><span></span>
    </a>
    <nav class="nav-menu" id="nav-menu" style="display: {{.Menu.Display}}">
      <ul>
        {{- range .NavLinks}}
        <li><a href="{{$.Menu.LinkHref .Anchor}}">{{.Label}}</a></li>
        {{- end}}
      </ul>
    </nav>
  </header>
  <main>
    <section id="artists">
      <h2>Lineup</h2>
      <div class="artist-list">
{{.Artists}}
      </div>
    </section>
    <section id="stages">
      <h2>Stages</h2>
      <div class="stage-list">
{{.Stages}}
      </div>
    </section>
    <section id="schedule">
      <h2>Schedule</h2>
      <h3>Friday</h3>
      <table class="schedule-table">
        <thead><tr><th>Time</th>{{range .FridayColumns}}<th>{{.Stage}}</th>{{end}}</tr></thead>
        <tbody id="schedule-body-friday">
{{.Friday}}
        </tbody>
      </table>
      <h3>Saturday</h3>
      <table class="schedule-table">
        <thead><tr><th>Time</th>{{range .SaturdayColumns}}<th>{{.Stage}}</th>{{end}}</tr></thead>
        <tbody id="schedule-body-saturday">
{{.Saturday}}
        </tbody>
      </table>
    </section>
  </main>
  <script src="{{.ScriptURL}}"></script>
</body>
</html>
`

// cssContent is the site stylesheet.
const cssContent = `:root {
  --bg: #0f0d16;
  --fg: #f4f1fa;
  --muted: #a59fb8;
  --card: #1c1828;
  --accent: #ff4f8b;
  --echo: #ff4f8b;
  --sunset: #ff9f1c;
  --skyline: #2ec4b6;
  --bassline: #7b61ff;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
  background: var(--bg);
  color: var(--fg);
}

.site-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  flex-wrap: wrap;
  padding: 1rem 1.5rem;
  border-bottom: 1px solid var(--card);
}

.site-title { margin: 0; font-size: 1.5rem; letter-spacing: 0.2em; }

.hamburger {
  display: flex;
  flex-direction: column;
  gap: 5px;
  padding: 0.5rem;
  cursor: pointer;
}

.hamburger span {
  display: block;
  width: 26px;
  height: 3px;
  background: var(--fg);
  border-radius: 2px;
}

.nav-menu { width: 100%; }

.nav-menu ul {
  list-style: none;
  margin: 0;
  padding: 0.5rem 0;
  display: flex;
  flex-direction: column;
  gap: 0.75rem;
}

.nav-menu a { color: var(--fg); text-decoration: none; font-weight: 600; }
.nav-menu a:hover { color: var(--accent); }

main { max-width: 1100px; margin: 0 auto; padding: 1.5rem; }

.artist-list,
.stage-list {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(240px, 1fr));
  gap: 1rem;
}

.artist-card,
.stage-card {
  background: var(--card);
  border-radius: 10px;
  padding: 1rem 1.25rem;
}

.artist-card h3,
.stage-card h3 { margin-top: 0; color: var(--accent); }

.artist-card p,
.stage-card p { color: var(--muted); margin: 0.35rem 0; }

.schedule-table { width: 100%; border-collapse: collapse; margin-bottom: 2rem; }
.schedule-table th,
.schedule-table td { border: 1px solid var(--card); padding: 0.5rem; text-align: left; }
.schedule-table th { background: var(--card); }

.stage-echo { background: var(--echo); color: #fff; }
.stage-sunset { background: var(--sunset); color: #111; }
.stage-skyline { background: var(--skyline); color: #111; }
.stage-bassline { background: var(--bassline); color: #fff; }

@media (min-width: 800px) {
  .nav-menu { width: auto; }
  .nav-menu ul { flex-direction: row; }
}
`

// jsContent toggles the navigation menu without a page reload.
const jsContent = `document.addEventListener('DOMContentLoaded', () => {
  const toggle = document.getElementById('hamburger-menu');
  const menu = document.getElementById('nav-menu');
  if (!toggle || !menu) {
    return;
  }

  toggle.addEventListener('click', (event) => {
    event.preventDefault();
    const open = menu.style.display !== 'flex';
    menu.style.display = open ? 'flex' : 'none';
    toggle.setAttribute('aria-expanded', String(open));
  });

  menu.querySelectorAll('ul li a').forEach((link) => {
    if (link.hash) {
      link.setAttribute('href', link.hash);
    }
    link.addEventListener('click', () => {
      menu.style.display = 'none';
      toggle.setAttribute('aria-expanded', 'false');
    });
  });
});
`

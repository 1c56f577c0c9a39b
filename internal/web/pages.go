package web

import (
	"strconv"

	"github.com/a-h/templ"
)

// Landing offers sign in, registration and password reset.
func Landing() templ.Component {
	return page("Welcome", `
    <main class="shell narrow">
      <header class="hero">
        <h1>Prompt Museum</h1>
        <p>Collect, share and discover prompts for your favourite AI agents.</p>
      </header>
      <div class="tabs">
        <button data-mode="login" class="tab active">Sign in</button>
        <button data-mode="register" class="tab">Register</button>
        <button data-mode="forgot" class="tab">Forgot password</button>
      </div>
      <form id="authForm" class="panel">
        <input name="name" placeholder="Name" autocomplete="name" hidden/>
        <input name="email" type="email" placeholder="Email" autocomplete="email" required/>
        <input name="password" type="password" placeholder="Password" autocomplete="current-password" required/>
        <button type="submit" class="button primary">Sign in</button>
        <div id="authResult" class="result"></div>
      </form>
    </main>`, `
      if (auth.token()) location.href = "/dashboard";
      const form = document.getElementById("authForm");
      const result = document.getElementById("authResult");
      let mode = "login";
      const labels = { login: "Sign in", register: "Create account", forgot: "Send reset link" };
      document.querySelectorAll(".tab").forEach((tab) => tab.addEventListener("click", () => {
        mode = tab.dataset.mode;
        document.querySelectorAll(".tab").forEach((t) => t.classList.toggle("active", t === tab));
        form.elements.name.hidden = mode !== "register";
        form.elements.name.required = mode === "register";
        form.elements.password.hidden = mode === "forgot";
        form.elements.password.required = mode !== "forgot";
        form.querySelector("button[type=submit]").textContent = labels[mode];
        result.textContent = "";
      }));
      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const body = { email: form.elements.email.value.trim() };
        if (mode !== "forgot") body.password = form.elements.password.value;
        if (mode === "register") body.name = form.elements.name.value.trim();
        const path = { login: "/auth/login", register: "/auth/register", forgot: "/auth/forgot-password" }[mode];
        const res = await auth.fetch(path, { method: "POST", body: JSON.stringify(body) });
        const data = await res.json();
        result.textContent = data.message || "Request failed.";
        if (data.success && data.access_token) {
          auth.set(data);
          location.href = "/dashboard";
        }
      });
`)
}

// Dashboard lists public prompts with agent, category and search filters,
// plus the signed-in user's own prompts.
func Dashboard() templ.Component {
	return page("Dashboard", header+`
    <div class="layout">
      <aside class="sidebar">
        <h2>Agents</h2>
        <ul id="agents" class="agents"><li><button data-agent="all" class="agent active">All agents</button></li></ul>
      </aside>
      <main class="content">
        <div class="filters">
          <input id="search" type="search" placeholder="Search prompts"/>
          <select id="category"><option value="all">All categories</option></select>
        </div>
        <section>
          <h2>Public prompts</h2>
          <div id="prompts" class="grid"></div>
        </section>
        <section>
          <h2>My prompts</h2>
          <div id="mine" class="grid"></div>
        </section>
      </main>
    </div>`, headerScript+`
      if (!auth.token()) location.href = "/";
      const state = { agent: "all", category: "all", search: "" };
      const card = (p) => '<article class="card">' +
        '<a href="/prompt/' + p.id + '"><h3>' + esc(p.title) + '</h3></a>' +
        '<p>' + esc(p.description) + '</p>' +
        '<div class="meta"><span class="badge">' + esc(p.agent) + '</span><span class="badge">' + esc(p.category) + '</span>' +
        (p.is_public ? '' : '<span class="badge muted">private</span>') + '</div>' +
        '<div class="tags">' + (p.tags || []).map((t) => '<span>#' + esc(t) + '</span>').join(" ") + '</div>' +
        '<button class="like" data-id="' + p.id + '">&#9829; <span>' + p.likes_count + '</span></button>' +
        '</article>';
      const render = (el, prompts) => {
        el.innerHTML = prompts.length ? prompts.map(card).join("") : '<p class="empty">No prompts yet.</p>';
      };
      async function loadPrompts() {
        const params = new URLSearchParams(state);
        const res = await fetch("/prompts?" + params);
        render(document.getElementById("prompts"), res.ok ? await res.json() : []);
      }
      async function loadMine() {
        const res = await auth.fetch("/prompts/my-prompts");
        if (res.status === 401) { auth.clear(); location.href = "/"; return; }
        render(document.getElementById("mine"), res.ok ? await res.json() : []);
      }
      async function loadFacets() {
        const [agents, categories] = await Promise.all([
          fetch("/prompts/agents").then((r) => r.json()),
          fetch("/prompts/categories").then((r) => r.json()),
        ]);
        const list = document.getElementById("agents");
        agents.forEach((a) => list.insertAdjacentHTML("beforeend",
          '<li><button data-agent="' + esc(a) + '" class="agent">' + esc(a) + '</button></li>'));
        const select = document.getElementById("category");
        categories.forEach((c) => select.insertAdjacentHTML("beforeend",
          '<option value="' + esc(c) + '">' + esc(c) + '</option>'));
      }
      document.getElementById("agents").addEventListener("click", (event) => {
        const btn = event.target.closest(".agent");
        if (!btn) return;
        state.agent = btn.dataset.agent;
        document.querySelectorAll(".agent").forEach((b) => b.classList.toggle("active", b === btn));
        loadPrompts();
      });
      document.getElementById("category").addEventListener("change", (event) => {
        state.category = event.target.value;
        loadPrompts();
      });
      let timer;
      document.getElementById("search").addEventListener("input", (event) => {
        clearTimeout(timer);
        timer = setTimeout(() => { state.search = event.target.value.trim(); loadPrompts(); }, 250);
      });
      document.addEventListener("click", async (event) => {
        const btn = event.target.closest(".like");
        if (!btn) return;
        const res = await fetch("/prompts/" + btn.dataset.id + "/like", { method: "POST" });
        if (res.ok) btn.querySelector("span").textContent = (await res.json()).likes_count;
      });
      loadFacets();
      loadPrompts();
      loadMine();
`)
}

// NewPrompt is the create form. Tags are entered comma separated.
func NewPrompt() templ.Component {
	return page("New prompt", header+`
    <main class="shell narrow">
      <h1>New prompt</h1>
      <form id="promptForm" class="panel">
        <input name="title" placeholder="Title" required maxlength="255"/>
        <input name="description" placeholder="Short description"/>
        <textarea name="content" placeholder="Prompt content" rows="10" required></textarea>
        <div class="row">
          <input name="category" placeholder="Category (e.g. Writing)" required maxlength="100"/>
          <input name="agent" placeholder="Agent (e.g. ChatGPT)" required maxlength="100"/>
        </div>
        <input name="tags" placeholder="Tags, comma separated"/>
        <label class="check"><input name="is_public" type="checkbox" checked/> Public</label>
        <button type="submit" class="button primary">Publish</button>
        <div id="promptResult" class="result"></div>
      </form>
    </main>`, headerScript+`
      if (!auth.token()) location.href = "/";
      const form = document.getElementById("promptForm");
      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const el = form.elements;
        const body = {
          title: el.title.value.trim(),
          description: el.description.value.trim(),
          content: el.content.value,
          category: el.category.value.trim(),
          agent: el.agent.value.trim(),
          tags: el.tags.value.split(",").map((t) => t.trim()).filter(Boolean),
          is_public: el.is_public.checked,
        };
        const res = await auth.fetch("/prompts", { method: "POST", body: JSON.stringify(body) });
        const data = await res.json();
        if (res.ok) { location.href = "/prompt/" + data.id; return; }
        document.getElementById("promptResult").textContent = data.message || "Failed to create prompt.";
      });
`)
}

// PromptDetail shows one prompt with copy, like and owner-only delete.
func PromptDetail(id uint) templ.Component {
	idText := strconv.FormatUint(uint64(id), 10)
	return page("Prompt "+idText, header+`
    <main class="shell narrow">
      <article id="prompt" class="panel" data-id="`+idText+`"><p class="empty">Loading...</p></article>
    </main>`, headerScript+`
      const el = document.getElementById("prompt");
      const id = el.dataset.id;
      async function load() {
        const res = await fetch("/prompts/" + id);
        const p = await res.json();
        if (!res.ok) { el.innerHTML = '<p class="empty">' + esc(p.message) + '</p>'; return; }
        const me = auth.user();
        el.innerHTML = '<h1>' + esc(p.title) + '</h1>' +
          '<p>' + esc(p.description) + '</p>' +
          '<div class="meta"><span class="badge">' + esc(p.agent) + '</span><span class="badge">' + esc(p.category) + '</span>' +
          '<span>by ' + esc(p.user ? p.user.name : "unknown") + '</span></div>' +
          '<pre id="content">' + esc(p.content) + '</pre>' +
          '<div class="tags">' + (p.tags || []).map((t) => '<span>#' + esc(t) + '</span>').join(" ") + '</div>' +
          '<div class="actions">' +
          '<button id="copy" class="button">Copy</button>' +
          '<button id="like" class="button">&#9829; <span>' + p.likes_count + '</span></button>' +
          (me && me.id === p.user_id ? '<button id="delete" class="button danger">Delete</button>' : '') +
          '</div>';
        document.getElementById("copy").onclick = () => navigator.clipboard.writeText(p.content);
        document.getElementById("like").onclick = async () => {
          const r = await fetch("/prompts/" + id + "/like", { method: "POST" });
          if (r.ok) document.querySelector("#like span").textContent = (await r.json()).likes_count;
        };
        const del = document.getElementById("delete");
        if (del) del.onclick = async () => {
          if (!confirm("Delete this prompt?")) return;
          const r = await auth.fetch("/prompts/" + id, { method: "DELETE" });
          if (r.status === 204) location.href = "/dashboard";
        };
      }
      load();
`)
}

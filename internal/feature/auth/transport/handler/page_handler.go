package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const loginPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<form id="login">
<input name="email" type="email" placeholder="Email" required>
<input name="password" type="password" placeholder="Password" required>
<button type="submit">Sign in</button>
</form>
<p id="error"></p>
<div id="federated"></div>
<p><a href="/register">Create an account</a></p>
<script>
async function post(url, body) {
  const res = await fetch(url, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)});
  if (res.ok) { location.href = "/dashboard"; return; }
  document.getElementById("error").textContent = (await res.json()).error;
}
document.getElementById("login").addEventListener("submit", e => {
  e.preventDefault();
  const f = new FormData(e.target);
  post("/api/auth/login", {email: f.get("email"), password: f.get("password")});
});
fetch("/api/auth/identity-provider-client-id").then(r => r.json()).then(({clientId}) => {
  if (!clientId) return;
  const s = document.createElement("script");
  s.src = "https://accounts.google.com/gsi/client";
  s.onload = () => {
    google.accounts.id.initialize({client_id: clientId, callback: r => post("/api/auth/federated-login", {credential: r.credential})});
    google.accounts.id.renderButton(document.getElementById("federated"), {theme: "outline"});
  };
  document.head.appendChild(s);
});
</script>
</body></html>`

const registerPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>Register</title></head>
<body>
<h1>Register</h1>
<form id="register">
<input name="name" placeholder="Name" required>
<input name="email" type="email" placeholder="Email" required>
<input name="password" type="password" placeholder="Password" minlength="6" required>
<button type="submit">Register</button>
</form>
<p id="error"></p>
<script>
document.getElementById("register").addEventListener("submit", async e => {
  e.preventDefault();
  const f = new FormData(e.target);
  const res = await fetch("/api/auth/register", {method: "POST", headers: {"Content-Type": "application/json"},
    body: JSON.stringify({name: f.get("name"), email: f.get("email"), password: f.get("password")})});
  if (res.ok) { location.href = "/login"; return; }
  document.getElementById("error").textContent = (await res.json()).error;
});
</script>
</body></html>`

const dashboardPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>Dashboard</title></head>
<body>
<h1>Dashboard</h1>
<pre id="me"></pre>
<button id="logout">Log out</button>
<script>
fetch("/api/auth/me").then(r => r.json()).then(u => { document.getElementById("me").textContent = JSON.stringify(u, null, 2); });
document.getElementById("logout").addEventListener("click", async () => {
  await fetch("/api/auth/logout", {method: "POST"});
  location.href = "/login";
});
</script>
</body></html>`

// LoginPage serves the sign-in page.
func LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}

// RegisterPage serves the registration page.
func RegisterPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(registerPage))
}

// DashboardPage serves the dashboard. It expects middleware.RequireAuthPage in front.
func DashboardPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardPage))
}

package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"clock": display.Format,
	"held": func(b logic.Buttons, btn logic.Button) bool {
		return b.Held(btn)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Kitchen Timer</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
#clock { font-size: 4em; text-align: center; margin: 0.3em 0; }
.alarm { color: red; font-weight: bold; }
.held { color: green; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
.pad button { font-family: monospace; font-size: 1.1em; padding: 0.6em 1em; margin: 0 0.2em; }
</style>
</head>
<body>
<h1>Kitchen Timer</h1>

<div id="clock" class="{{if .Alarm}}alarm{{end}}">{{clock .Counter}}</div>

<div class="pad">
{{range .Buttons}}<button data-button="{{.}}">{{.}}</button>{{end}}
</div>

<h2>State</h2>
<table>
<tr><th>Mode</th><td id="mode">{{.Mode}}</td></tr>
<tr><th>Counter</th><td id="counter">{{.Counter}}s</td></tr>
<tr><th>Alarm</th><td id="alarm" class="{{if .Alarm}}alarm{{end}}">{{if .Alarm}}ringing{{else}}off{{end}}</td></tr>
{{$levels := .Levels}}{{range .Buttons}}<tr><th>{{.}}</th><td class="{{if held $levels .}}held{{end}}">{{if held $levels .}}held{{else}}up{{end}}</td></tr>
{{end}}</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Ticks</th><td>{{.Counts.Ticks}}</td></tr>
<tr><th>Transitions</th><td>{{.Counts.Transitions}}</td></tr>
<tr><th>Alarms</th><td>{{.Counts.Alarms}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
{{if .Instance}}<tr><th>Instance</th><td>{{.Instance}}</td></tr>{{end}}
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Bell</th><td>{{.Config.Bell}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> <a href="/metrics">Metrics</a></p>
<script>
(function() {
  var clock = document.getElementById("clock");
  var mode = document.getElementById("mode");
  var counter = document.getElementById("counter");
  var alarm = document.getElementById("alarm");

  function send(button, action) {
    fetch("/buttons/" + button + "/" + action, { method: "POST" });
  }

  document.querySelectorAll(".pad button").forEach(function(el) {
    var b = el.dataset.button;
    el.addEventListener("pointerdown", function() { send(b, "press"); });
    el.addEventListener("pointerup", function() { send(b, "release"); });
    el.addEventListener("pointerleave", function() { send(b, "release"); });
  });

  setInterval(function() {
    fetch("/index.json").then(function(r) { return r.json(); }).then(function(j) {
      var s = j.status;
      clock.textContent = s.display;
      clock.className = s.alarm ? "alarm" : "";
      mode.textContent = s.mode;
      counter.textContent = s.counter + "s";
      alarm.textContent = s.alarm ? "ringing" : "off";
      alarm.className = s.alarm ? "alarm" : "";
    }).catch(function() {});
  }, 500);
})();
</script>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	// Snapshot has Uptime() method but template needs a Duration field.
	// Buttons is shadowed by the list of buttons to render.
	data := struct {
		status.Snapshot
		Uptime  time.Duration
		Levels  logic.Buttons
		Buttons []logic.Button
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Levels:   snap.Buttons,
		Buttons:  logic.AllButtons,
	}
	return indexTmpl.Execute(w, data)
}

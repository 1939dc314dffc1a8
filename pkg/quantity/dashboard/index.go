package dashboard

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Quantity Calculator</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .header { background: #2c3e50; color: white; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
        .grid { display: grid; grid-template-columns: 2fr 1fr; gap: 20px; }
        .card { background: white; padding: 20px; border-radius: 5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .result-value { font-size: 1.6em; font-weight: bold; color: #3498db; min-height: 1.4em; }
        .result-error { color: #e74c3c; }
        .history-list { max-height: 400px; overflow-y: auto; }
        .entry { padding: 10px; margin: 5px 0; border-left: 4px solid #3498db; background: #ecf0f1; font-family: monospace; }
        .entry.error { border-left-color: #e74c3c; }
        .timestamp { font-size: 0.8em; color: #7f8c8d; font-family: sans-serif; }
        input[type=text] { width: 100%; padding: 10px; font-size: 1.1em; font-family: monospace; box-sizing: border-box; }
        button { background: #3498db; color: white; border: none; padding: 10px 20px; border-radius: 3px; margin-top: 10px; cursor: pointer; }
        code { background: #f8f9fa; padding: 2px 4px; border-radius: 3px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Quantity Calculator</h1>
        <p>Dimension-checked arithmetic on SI quantities</p>
    </div>

    <div class="grid">
        <div class="card">
            <h3>Expression</h3>
            <input type="text" id="expression" placeholder='8.314 J/mol/K * 298.15 K' autofocus />
            <button onclick="evaluate()">Evaluate</button>
            <div class="result-value" id="result"></div>

            <h4>Examples</h4>
            <ul>
                <li><code>25 °C</code> &mdash; affine conversion to kelvin</li>
                <li><code>RGAS * 298.15 K / (25 l / NAV / 1e23)</code></li>
                <li><code>sqrt(2 * 9.81 m/s^2 * 10 m)</code></li>
                <li><code>(3 m)^2 + 1.5 m²</code></li>
            </ul>
        </div>

        <div class="card">
            <h3>History</h3>
            <div class="history-list" id="history">
                <div class="entry">
                    <div>Waiting for evaluations...</div>
                    <div class="timestamp">--</div>
                </div>
            </div>
        </div>
    </div>

    <script>
        const ws = new WebSocket('ws://' + location.host + '/ws');

        ws.onmessage = function(event) {
            addEntry(JSON.parse(event.data));
        };

        function evaluate() {
            const expression = document.getElementById('expression').value;
            if (!expression) return;

            fetch('/api/eval', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ expression: expression })
            })
            .then(response => response.json())
            .then(data => {
                const result = document.getElementById('result');
                if (data.error) {
                    result.textContent = data.error;
                    result.classList.add('result-error');
                } else {
                    result.textContent = '= ' + data.result;
                    result.classList.remove('result-error');
                }
            });
        }

        function addEntry(ev) {
            const history = document.getElementById('history');
            const div = document.createElement('div');
            div.className = 'entry' + (ev.error ? ' error' : '');
            const outcome = ev.error ? ev.error : '= ' + ev.result;
            div.innerHTML =
                '<div>' + escapeHtml(ev.expression) + '</div>' +
                '<div>' + escapeHtml(outcome) + '</div>' +
                '<div class="timestamp">' + new Date(ev.timestamp).toLocaleString() + '</div>';
            history.insertBefore(div, history.firstChild);

            while (history.children.length > 20) {
                history.removeChild(history.lastChild);
            }
        }

        function escapeHtml(s) {
            const div = document.createElement('div');
            div.textContent = s;
            return div.innerHTML;
        }

        document.getElementById('expression').addEventListener('keydown', function(e) {
            if (e.key === 'Enter') evaluate();
        });
    </script>
</body>
</html>
`

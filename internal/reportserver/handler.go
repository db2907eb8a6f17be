package reportserver

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>URS Benchmark Report</title>
  </head>
  <body>
    <h1>URS Benchmark Report</h1>
    <p>Data endpoints:</p>
    <ul>
      <li><a href="/api/runs">/api/runs</a></li>
      <li><a href="/api/reports">/api/reports</a></li>
      <li><a href="/data/db.duckdb">/data/db.duckdb</a></li>
    </ul>
  </body>
</html>`

// NewHandler builds the HTTP handler for the report shell and data
// endpoints.
func NewHandler(dbPath string, db *sql.DB) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.Handle("/data/db.duckdb", serveDatabase(dbPath))
	mux.Handle("/api/runs", serveRuns(db))
	mux.Handle("/api/reports", serveReports(db))
	return mux
}

// serveIndex writes the base HTML shell.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// serveDatabase serves the DuckDB file from disk for browser-side
// processing.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}

// runRow is a run summary served over the API.
type runRow struct {
	RunID      string    `json:"run_id"`
	CorpusKey  string    `json:"corpus_key"`
	Command    string    `json:"command"`
	Workers    int       `json:"workers"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// serveRuns lists persisted runs, newest first.
func serveRuns(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rows, err := db.QueryContext(r.Context(),
			`SELECT run_id, corpus_key, command, workers, started_at, finished_at
			 FROM runs ORDER BY started_at DESC`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		runs := []runRow{}
		for rows.Next() {
			var run runRow
			if err := rows.Scan(&run.RunID, &run.CorpusKey, &run.Command, &run.Workers, &run.StartedAt, &run.FinishedAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			runs = append(runs, run)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, runs)
	})
}

// reportRow is a persisted aggregate report served over the API.
type reportRow struct {
	ReportKey string          `json:"report_key"`
	RunID     string          `json:"run_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// serveReports lists persisted aggregate reports, newest first.
func serveReports(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rows, err := db.QueryContext(r.Context(),
			`SELECT report_key, coalesce(run_id, ''), payload, created_at
			 FROM reports ORDER BY created_at DESC`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		reports := []reportRow{}
		for rows.Next() {
			var report reportRow
			var payload string
			if err := rows.Scan(&report.ReportKey, &report.RunID, &payload, &report.CreatedAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			report.Payload = json.RawMessage(payload)
			reports = append(reports, report)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, reports)
	})
}

// writeJSON serializes an API response.
func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(value)
}
